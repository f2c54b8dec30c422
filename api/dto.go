package api

import "ai-blog/models"

type ListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []models.Article `json:"data"`
}

type ArticleResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *models.Article `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
