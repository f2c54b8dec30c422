package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"ai-blog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArticleStore kapselt den Zugriff auf die Tabelle articles.
type ArticleStore struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewArticleStore erstellt einen neuen ArticleStore.
func NewArticleStore(db *gorm.DB, logger *zap.Logger) *ArticleStore {
	return &ArticleStore{DB: db, Logger: logger}
}

// ListAll liefert alle Artikel, neueste zuerst.
func (s *ArticleStore) ListAll(ctx context.Context) ([]models.Article, error) {
	articles := []models.Article{}
	if err := s.DB.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&articles).Error; err != nil {
		return nil, &StoreError{Op: "list articles", Err: err}
	}
	return articles, nil
}

// GetByID sucht einen Artikel. found ist false, wenn keine Zeile passt oder die ID
// kein gültiger Schlüssel ist; das ist kein Fehler.
func (s *ArticleStore) GetByID(ctx context.Context, id string) (*models.Article, bool, error) {
	key, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || key <= 0 {
		return nil, false, nil
	}

	var article models.Article
	if err := s.DB.WithContext(ctx).First(&article, key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, &StoreError{Op: "get article " + id, Err: err}
	}
	return &article, true, nil
}

// Create speichert einen neuen Artikel. Alle Felder sind Pflicht.
func (s *ArticleStore) Create(ctx context.Context, title, content, author, excerpt string) (*models.Article, error) {
	fields := []struct{ name, value string }{
		{"title", title},
		{"content", content},
		{"author", author},
		{"excerpt", excerpt},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, &ValidationError{Field: f.name}
		}
	}

	// Postgres speichert Mikrosekunden; so bleibt der Rückgabewert identisch mit der gelesenen Zeile.
	now := time.Now().UTC().Truncate(time.Microsecond)
	article := models.Article{
		Title:     title,
		Content:   content,
		Author:    author,
		Excerpt:   excerpt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DB.WithContext(ctx).Create(&article).Error; err != nil {
		return nil, &StoreError{Op: "create article", Err: err}
	}
	s.Logger.Debug("Article stored", zap.Uint("id", article.ID), zap.String("title", article.Title))
	return &article, nil
}

// Count liefert die Anzahl aller Artikel.
func (s *ArticleStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Article{}).Count(&n).Error; err != nil {
		return 0, &StoreError{Op: "count articles", Err: err}
	}
	return n, nil
}
