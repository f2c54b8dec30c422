package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"ai-blog/models"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/assert/v2"
	"go.uber.org/zap/zaptest"
)

type fakePutter struct {
	key  string
	body string
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = *in.Key
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"The Future of AI in Healthcare":      "the-future-of-ai-in-healthcare",
		"  Blockchain -- Beyond Crypto!  ":    "blockchain-beyond-crypto",
		"???":                                 "article",
		strings.Repeat("abc ", 40):            strings.TrimRight(strings.Repeat("abc-", 20), "-"),
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in))
	}
}

func TestArchive_Store(t *testing.T) {
	putter := &fakePutter{}
	archive := NewArchive(putter, S3Settings{URL: "https://s3.example.com/", Bucket: "blog"}, zaptest.NewLogger(t))
	article := &models.Article{
		ID:        42,
		Title:     "Quantum Computing Breakthroughs",
		Content:   "## Intro\nText",
		Author:    "AI Blog Writer",
		CreatedAt: time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC),
	}

	link, err := archive.Store(context.Background(), article)
	assert.Equal(t, nil, err)
	assert.Equal(t, "articles/2025/03/000042-quantum-computing-breakthroughs.md", putter.key)
	assert.Equal(t, "https://s3.example.com/blog/articles/2025/03/000042-quantum-computing-breakthroughs.md", link)
	assert.Equal(t, "# Quantum Computing Breakthroughs\n\n_AI Blog Writer, 2025-03-09_\n\n## Intro\nText\n", putter.body)
}

func TestArchive_StoreError(t *testing.T) {
	archive := NewArchive(&fakePutter{err: errors.New("denied")}, S3Settings{Bucket: "blog"}, zaptest.NewLogger(t))
	_, err := archive.Store(context.Background(), &models.Article{ID: 1, Title: "x"})
	assert.NotEqual(t, nil, err)
}
