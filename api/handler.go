package api

import (
	"context"
	"net/http"
	"time"

	"ai-blog/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleReader ist der lesende Teil des Stores.
type ArticleReader interface {
	ListAll(ctx context.Context) ([]models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, bool, error)
}

// ArticleGenerator erzeugt auf Abruf einen neuen Artikel und speichert ihn.
type ArticleGenerator interface {
	GenerateNow(ctx context.Context) (*models.Article, error)
}

// ArticleHandler stellt die Artikel-Endpunkte bereit.
type ArticleHandler struct {
	store     ArticleReader
	generator ArticleGenerator
	log       *zap.Logger
}

func NewArticleHandler(store ArticleReader, generator ArticleGenerator, log *zap.Logger) *ArticleHandler {
	return &ArticleHandler{store: store, generator: generator, log: log}
}

func (h *ArticleHandler) ListArticles(c *gin.Context) {
	articles, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("Error fetching articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch articles", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Success: true, Count: len(articles), Data: articles})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	article, found, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Error fetching article", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch article", Error: err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Article not found"})
		return
	}
	c.JSON(http.StatusOK, ArticleResponse{Success: true, Data: article})
}

// GenerateArticle blockiert, bis der Artikel erzeugt und gespeichert ist.
func (h *ArticleHandler) GenerateArticle(c *gin.Context) {
	article, err := h.generator.GenerateNow(c.Request.Context())
	if err != nil {
		h.log.Error("Error generating article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to generate article", Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ArticleResponse{Success: true, Message: "Article generated successfully", Data: article})
}

// Health beantwortet Liveness-Checks, ohne die Datenbank zu berühren.
func Health(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: now().UTC().Format(time.RFC3339),
			Service:   "blog-backend",
		})
	}
}
