package services

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"ai-blog/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SeedTarget ist die Mindestanzahl an Artikeln, die der Seeder herstellt.
const SeedTarget = 3

//go:embed samples.yaml
var samplesYAML []byte

// SeedStore ist der Teil des Stores, den der Seeder braucht.
type SeedStore interface {
	ArticleCreator
	Count(ctx context.Context) (int64, error)
}

// Seeder füllt eine leere Datenbank mit Beispiel- oder generierten Artikeln.
type Seeder struct {
	Store     SeedStore
	Generator ArticleGenerator
	Pause     time.Duration
	Logger    *zap.Logger
}

// NewSeeder erstellt einen Seeder mit 2s Pause zwischen zwei Generierungen.
func NewSeeder(store SeedStore, gen ArticleGenerator, logger *zap.Logger) *Seeder {
	return &Seeder{Store: store, Generator: gen, Pause: 2 * time.Second, Logger: logger}
}

// SampleArticles liefert die eingebetteten Beispielartikel.
func SampleArticles() ([]ArticleDraft, error) {
	var file struct {
		Articles []struct {
			Title   string `yaml:"title"`
			Author  string `yaml:"author"`
			Excerpt string `yaml:"excerpt"`
			Content string `yaml:"content"`
		} `yaml:"articles"`
	}
	if err := yaml.Unmarshal(samplesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse sample articles: %w", err)
	}
	drafts := make([]ArticleDraft, 0, len(file.Articles))
	for _, a := range file.Articles {
		drafts = append(drafts, ArticleDraft{Title: a.Title, Content: a.Content, Author: a.Author, Excerpt: a.Excerpt})
	}
	return drafts, nil
}

// missing gibt zurück, wie viele Artikel bis SeedTarget fehlen.
func (s *Seeder) missing(ctx context.Context) (int, error) {
	count, err := s.Store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count >= SeedTarget {
		s.Logger.Info("Database already has enough articles, skipping seed", zap.Int64("count", count))
		return 0, nil
	}
	return SeedTarget - int(count), nil
}

// SeedSamples speichert Beispielartikel, bis SeedTarget erreicht ist.
func (s *Seeder) SeedSamples(ctx context.Context) ([]*models.Article, error) {
	needed, err := s.missing(ctx)
	if err != nil || needed == 0 {
		return nil, err
	}
	samples, err := SampleArticles()
	if err != nil {
		return nil, err
	}
	if needed > len(samples) {
		needed = len(samples)
	}

	s.Logger.Info("Adding sample articles", zap.Int("count", needed))
	var created []*models.Article
	for _, d := range samples[:needed] {
		a, err := s.Store.Create(ctx, d.Title, d.Content, d.Author, d.Excerpt)
		if err != nil {
			return created, err
		}
		s.Logger.Info("Created article", zap.Uint("id", a.ID), zap.String("title", a.Title))
		created = append(created, a)
	}
	return created, nil
}

// SeedGenerated erzeugt Artikel über den Generator, bis SeedTarget erreicht ist.
// Zwischen zwei Aufrufen wird Pause gewartet.
func (s *Seeder) SeedGenerated(ctx context.Context) ([]*models.Article, error) {
	needed, err := s.missing(ctx)
	if err != nil || needed == 0 {
		return nil, err
	}

	s.Logger.Info("Generating articles", zap.Int("count", needed))
	var created []*models.Article
	for i := 0; i < needed; i++ {
		if i > 0 && s.Pause > 0 {
			select {
			case <-time.After(s.Pause):
			case <-ctx.Done():
				return created, ctx.Err()
			}
		}

		s.Logger.Info("Generating article", zap.Int("n", i+1), zap.Int("of", needed))
		draft, err := s.Generator.Generate(ctx)
		if err != nil {
			return created, err
		}
		a, err := s.Store.Create(ctx, draft.Title, draft.Content, draft.Author, draft.Excerpt)
		if err != nil {
			return created, err
		}
		s.Logger.Info("Created article", zap.Uint("id", a.ID), zap.String("title", a.Title))
		created = append(created, a)
	}
	return created, nil
}
