package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"ai-blog/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

const loadError = "Failed to load articles. Please make sure the backend server is running."

// ArticleSource liefert die Artikel für die Seiten.
type ArticleSource interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
}

// Server rendert die Blog-Seiten serverseitig.
type Server struct {
	Source  ArticleSource
	SiteURL string
	Logger  *zap.Logger
}

// NewServer erstellt einen Server.
func NewServer(source ArticleSource, siteURL string, logger *zap.Logger) *Server {
	return &Server{Source: source, SiteURL: siteURL, Logger: logger}
}

// Templates parst die eingebetteten Seitenvorlagen.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatDate":  FormatDate,
		"readingTime": ReadingTime,
		"countLabel":  CountLabel,
	}).ParseFS(templatesFS, "templates/*.html")
}

// Router baut die gin-Engine des Frontends. Panics enden immer in einer HTML-Fehlerseite.
func (s *Server) Router(middleware ...gin.HandlerFunc) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(s.recovery())
	router.Use(middleware...)
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.index)
	router.GET("/article/:id", s.article)
	router.GET("/feed.xml", s.feed)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "blog-frontend",
		})
	})
	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "notfound.html", nil)
	})
	return router, nil
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.Logger.Error("Page rendering panicked", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.HTML(http.StatusInternalServerError, "error.html", nil)
		c.Abort()
	})
}

func (s *Server) index(c *gin.Context) {
	articles, err := s.Source.ListArticles(c.Request.Context())
	if err != nil {
		s.Logger.Error("Error fetching articles", zap.Error(err))
		c.HTML(http.StatusOK, "index.html", gin.H{"Error": loadError})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Articles": articles})
}

func (s *Server) article(c *gin.Context) {
	id := c.Param("id")
	article, err := s.Source.GetArticle(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.Logger.Error("Error fetching article", zap.String("id", id), zap.Error(err))
		}
		c.HTML(http.StatusNotFound, "notfound.html", nil)
		return
	}
	c.HTML(http.StatusOK, "article.html", gin.H{
		"Article": article,
		"Blocks":  ParseContent(article.Content),
	})
}

func (s *Server) feed(c *gin.Context) {
	articles, err := s.Source.ListArticles(c.Request.Context())
	if err != nil {
		s.Logger.Error("Error fetching articles for feed", zap.Error(err))
		c.String(http.StatusBadGateway, "feed unavailable")
		return
	}
	body, err := BuildFeed(s.SiteURL, articles)
	if err != nil {
		s.Logger.Error("Error building feed", zap.Error(err))
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}
