package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-blog/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ArticleGenerator erzeugt einen Artikelentwurf.
type ArticleGenerator interface {
	Generate(ctx context.Context) (*ArticleDraft, error)
}

// ArticleCreator speichert einen neuen Artikel.
type ArticleCreator interface {
	Create(ctx context.Context, title, content, author, excerpt string) (*models.Article, error)
}

// Archiver legt gespeicherte Artikel zusätzlich extern ab (optional).
type Archiver interface {
	Store(ctx context.Context, article *models.Article) (string, error)
}

const (
	triggerScheduled = "scheduled"
	triggerManual    = "manual"
)

// ArticleJob verbindet Generator und Store: einmal pro Cron-Termin und auf Abruf.
type ArticleJob struct {
	Generator ArticleGenerator
	Store     ArticleCreator
	Archive   Archiver
	Logger    *zap.Logger

	schedule string
	location *time.Location

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// NewArticleJob erstellt den Job. location nil bedeutet lokale Zeit.
func NewArticleJob(gen ArticleGenerator, store ArticleCreator, schedule string, location *time.Location, logger *zap.Logger) *ArticleJob {
	if location == nil {
		location = time.Local
	}
	return &ArticleJob{
		Generator: gen,
		Store:     store,
		Logger:    logger,
		schedule:  schedule,
		location:  location,
	}
}

// Start registriert den wiederkehrenden Auftrag und startet den Cron-Runner.
func (j *ArticleJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron != nil {
		return fmt.Errorf("article job already started")
	}

	c := cron.New(
		cron.WithLocation(j.location),
		cron.WithChain(cron.Recover(cron.PrintfLogger(zap.NewStdLog(j.Logger)))),
	)
	id, err := c.AddFunc(j.schedule, j.runScheduled)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", j.schedule, err)
	}
	c.Start()
	j.cron = c
	j.entryID = id

	j.Logger.Info("Article generation scheduled",
		zap.String("schedule", j.schedule),
		zap.String("location", j.location.String()),
		zap.Time("next_run", c.Entry(id).Next))
	return nil
}

// Stop hält den Runner an. Der zurückgegebene Context endet, wenn laufende Aufträge fertig sind.
func (j *ArticleJob) Stop() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	ctx := j.cron.Stop()
	j.cron = nil
	return ctx
}

// NextRun liefert den nächsten geplanten Termin oder die Nullzeit, wenn der Job nicht läuft.
func (j *ArticleJob) NextRun() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron == nil {
		return time.Time{}
	}
	return j.cron.Entry(j.entryID).Next
}

// GenerateNow erzeugt und speichert sofort einen Artikel und gibt Fehler an den Aufrufer weiter.
func (j *ArticleJob) GenerateNow(ctx context.Context) (*models.Article, error) {
	j.Logger.Info("Manual article generation triggered")
	article, err := j.run(ctx, triggerManual)
	if err != nil {
		j.Logger.Error("Failed to generate article", zap.Error(err))
		return nil, err
	}
	return article, nil
}

func (j *ArticleJob) runScheduled() {
	j.Logger.Info("Running scheduled article generation...")
	article, err := j.run(context.Background(), triggerScheduled)
	if err != nil {
		j.Logger.Error("Failed to generate scheduled article", zap.Error(err))
		return
	}
	j.Logger.Info("Auto-generated article", zap.Uint("id", article.ID), zap.String("title", article.Title))
}

func (j *ArticleJob) run(ctx context.Context, trigger string) (*models.Article, error) {
	draft, err := j.Generator.Generate(ctx)
	if err != nil {
		generationFailuresCounter.WithLabelValues(trigger).Inc()
		return nil, err
	}

	article, err := j.Store.Create(ctx, draft.Title, draft.Content, draft.Author, draft.Excerpt)
	if err != nil {
		generationFailuresCounter.WithLabelValues(trigger).Inc()
		return nil, err
	}
	articlesGeneratedCounter.Inc()

	if j.Archive != nil {
		if _, err := j.Archive.Store(ctx, article); err != nil {
			j.Logger.Warn("Failed to archive article", zap.Uint("id", article.ID), zap.Error(err))
		}
	}
	return article, nil
}
