package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger protokolliert jede Anfrage strukturiert über zap.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Recovery fängt Panics ab und antwortet mit 500. Details nur im Entwicklungsmodus.
func Recovery(log *zap.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Server error", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		resp := ErrorResponse{Message: "Internal server error"}
		if development {
			resp.Error = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: "Route not found"})
}
