package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ai-blog/models"

	"go.uber.org/zap"
)

// ErrNotFound meldet, dass die API einen Artikel nicht kennt.
var ErrNotFound = errors.New("article not found")

type listEnvelope struct {
	Success bool             `json:"success"`
	Data    []models.Article `json:"data"`
}

type articleEnvelope struct {
	Success bool            `json:"success"`
	Data    *models.Article `json:"data"`
}

// APIClient liest Artikel über die REST-API des Backends. Jeder Aufruf ist eine neue Anfrage.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewAPIClient erstellt einen APIClient. baseURL enthält das Präfix /api.
func NewAPIClient(baseURL string, timeout time.Duration, logger *zap.Logger) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// ListArticles holt alle Artikel, neueste zuerst.
func (c *APIClient) ListArticles(ctx context.Context) ([]models.Article, error) {
	var env listEnvelope
	if err := c.get(ctx, "/articles", &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = []models.Article{}
	}
	return env.Data, nil
}

// GetArticle holt einen einzelnen Artikel. Bei HTTP 404 wird ErrNotFound geliefert.
func (c *APIClient) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	var env articleEnvelope
	if err := c.get(ctx, "/articles/"+url.PathEscape(id), &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, ErrNotFound
	}
	return env.Data, nil
}

func (c *APIClient) get(ctx context.Context, path string, out any) error {
	endpoint := c.BaseURL + path
	log := c.Logger.With(zap.String("url", endpoint))
	log.Debug("Calling blog API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blog api request failed with status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode blog api response: %w", err)
	}
	return nil
}
