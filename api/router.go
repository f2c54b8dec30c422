package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig bündelt die Abhängigkeiten des HTTP-Routers.
type RouterConfig struct {
	Store       ArticleReader
	Generator   ArticleGenerator
	CORSOrigin  string
	Development bool
	Logger      *zap.Logger
}

// NewRouter baut die gin-Engine: /health und /metrics an der Wurzel, Artikel unter /api.
func NewRouter(rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(rc.Logger, rc.Development))
	router.Use(RequestLogger(rc.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{rc.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", Health(time.Now))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewArticleHandler(rc.Store, rc.Generator, rc.Logger)
	articles := router.Group("/api/articles")
	{
		articles.GET("", h.ListArticles)
		articles.POST("/generate", h.GenerateArticle)
		articles.GET("/:id", h.GetArticle)
	}

	router.NoRoute(notFound)
	return router
}
