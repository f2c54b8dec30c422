package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ai-blog/config"
	"ai-blog/models"
	"ai-blog/storage"

	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"
)

type fakeArchive struct {
	stored []uint
	err    error
}

func (f *fakeArchive) Store(ctx context.Context, a *models.Article) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.stored = append(f.stored, a.ID)
	return "s3://blog/x.md", nil
}

func newJobStore(t *testing.T) *storage.ArticleStore {
	t.Helper()
	log := zaptest.NewLogger(t)
	db, err := storage.OpenDatabase(&config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "job.db")}, log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return storage.NewArticleStore(db, log)
}

func TestGenerateNow_StoresArticle(t *testing.T) {
	store := newJobStore(t)
	archive := &fakeArchive{}
	gen := newTestGenerator(t, &fakeCompleter{text: "## Heading\nBody"}, []string{"Virtual Reality in Education"})
	job := NewArticleJob(gen, store, "0 10 * * *", nil, zaptest.NewLogger(t))
	job.Archive = archive
	before := testutil.ToFloat64(articlesGeneratedCounter)

	article, err := job.GenerateNow(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "Virtual Reality in Education", article.Title)
	assert.Equal(t, DefaultAuthor, article.Author)
	assert.Equal(t, []uint{article.ID}, archive.stored)
	assert.Equal(t, before+1, testutil.ToFloat64(articlesGeneratedCounter))

	n, _ := store.Count(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestGenerateNow_FailureDoesNotInsert(t *testing.T) {
	store := newJobStore(t)
	cause := errors.New("provider down")
	gen := newTestGenerator(t, &fakeCompleter{err: cause}, nil)
	job := NewArticleJob(gen, store, "0 10 * * *", nil, zaptest.NewLogger(t))
	before := testutil.ToFloat64(generationFailuresCounter.WithLabelValues(triggerManual))

	article, err := job.GenerateNow(context.Background())

	assert.Equal(t, true, article == nil)
	assert.Equal(t, true, errors.Is(err, cause))
	assert.Equal(t, before+1, testutil.ToFloat64(generationFailuresCounter.WithLabelValues(triggerManual)))
	n, _ := store.Count(context.Background())
	assert.Equal(t, int64(0), n)
}

func TestGenerateNow_ArchiveFailureIsNotFatal(t *testing.T) {
	store := newJobStore(t)
	gen := newTestGenerator(t, &fakeCompleter{text: "content"}, nil)
	job := NewArticleJob(gen, store, "0 10 * * *", nil, zaptest.NewLogger(t))
	job.Archive = &fakeArchive{err: errors.New("bucket missing")}

	article, err := job.GenerateNow(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, true, article != nil)
}

func TestRunScheduled_FailureIsSwallowed(t *testing.T) {
	store := newJobStore(t)
	c := &fakeCompleter{err: errors.New("timeout")}
	job := NewArticleJob(newTestGenerator(t, c, nil), store, "0 10 * * *", nil, zaptest.NewLogger(t))

	job.runScheduled()
	c.err, c.text = nil, "recovered"
	job.runScheduled()

	assert.Equal(t, 2, c.calls)
	n, _ := store.Count(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestStart_InvalidSchedule(t *testing.T) {
	job := NewArticleJob(nil, nil, "every tuesday", nil, zaptest.NewLogger(t))
	assert.NotEqual(t, nil, job.Start())
	assert.Equal(t, true, job.NextRun().IsZero())
}

func TestStartStop(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")
	job := NewArticleJob(nil, nil, "0 10 * * *", loc, zaptest.NewLogger(t))

	assert.Equal(t, nil, job.Start())
	assert.NotEqual(t, nil, job.Start())

	next := job.NextRun()
	assert.Equal(t, 10, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.Equal(t, true, next.After(time.Now()))

	select {
	case <-job.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("stop did not finish")
	}
	assert.Equal(t, true, job.NextRun().IsZero())
	<-job.Stop().Done()
}
