package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap/zaptest"
)

func TestSampleArticles(t *testing.T) {
	samples, err := SampleArticles()
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(samples))
	assert.Equal(t, "The Future of Artificial Intelligence in Healthcare", samples[0].Title)
	assert.Equal(t, "The Rise of Remote Work Culture", samples[2].Title)
	for _, s := range samples {
		assert.Equal(t, DefaultAuthor, s.Author)
		assert.Equal(t, true, strings.Contains(s.Content, "\n## "))
		assert.Equal(t, true, strings.HasSuffix(s.Excerpt, "..."))
	}
}

func TestSeedSamples(t *testing.T) {
	store := newJobStore(t)
	seeder := NewSeeder(store, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := seeder.SeedSamples(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(created))

	created, err = seeder.SeedSamples(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(created))

	n, _ := store.Count(ctx)
	assert.Equal(t, int64(3), n)
}

func TestSeedGenerated_FillsUpToTarget(t *testing.T) {
	store := newJobStore(t)
	ctx := context.Background()
	store.Create(ctx, "Existing", "body", "me", "body...")

	c := &fakeCompleter{text: "generated body"}
	seeder := NewSeeder(store, newTestGenerator(t, c, nil), zaptest.NewLogger(t))
	seeder.Pause = 0

	created, err := seeder.SeedGenerated(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(created))
	assert.Equal(t, 2, c.calls)

	n, _ := store.Count(ctx)
	assert.Equal(t, int64(3), n)
}

func TestSeedGenerated_StopsOnError(t *testing.T) {
	store := newJobStore(t)
	cause := errors.New("no credits")
	seeder := NewSeeder(store, newTestGenerator(t, &fakeCompleter{err: cause}, nil), zaptest.NewLogger(t))

	created, err := seeder.SeedGenerated(context.Background())
	assert.Equal(t, true, errors.Is(err, cause))
	assert.Equal(t, 0, len(created))
}
