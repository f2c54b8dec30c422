package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"ai-blog/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Settings beschreibt einen S3-kompatiblen Endpunkt.
type S3Settings struct {
	URL    string
	Key    string
	Secret string
	Region string
	Bucket string
}

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Endpunkt.
func NewS3Client(ctx context.Context, s S3Settings) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               s.URL,
				SigningRegion:     s.Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.Key, s.Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) { o.UsePathStyle = true }), nil
}

// ObjectPutter ist der Teil des S3-Clients, den das Archiv benötigt.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// UploadFile lädt eine Datei ins S3 hoch und gibt den Link zurück.
func UploadFile(ctx context.Context, client ObjectPutter, s S3Settings, key, contentType string, data []byte) (string, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.URL, "/"), s.Bucket, key), nil
}

// Archive legt jeden neuen Artikel zusätzlich als Markdown-Datei im Bucket ab.
type Archive struct {
	Client   ObjectPutter
	Settings S3Settings
	Logger   *zap.Logger
}

// NewArchive erstellt ein Archiv auf Basis eines bestehenden Clients.
func NewArchive(client ObjectPutter, s S3Settings, logger *zap.Logger) *Archive {
	return &Archive{Client: client, Settings: s, Logger: logger}
}

// Store lädt den Artikel hoch und gibt den Link zurück.
func (a *Archive) Store(ctx context.Context, article *models.Article) (string, error) {
	key := ArticleKey(article)
	link, err := UploadFile(ctx, a.Client, a.Settings, key, "text/markdown; charset=utf-8", ArticleMarkdown(article))
	if err != nil {
		return "", fmt.Errorf("archive article %d: %w", article.ID, err)
	}
	a.Logger.Info("Article archived", zap.Uint("id", article.ID), zap.String("key", key))
	return link, nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug bildet einen Titel auf einen URL-tauglichen Bezeichner ab.
func Slug(title string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > 80 {
		s = strings.TrimRight(s[:80], "-")
	}
	if s == "" {
		return "article"
	}
	return s
}

// ArticleKey liefert den Objektschlüssel, z.B. articles/2025/03/000042-quantum-computing.md.
func ArticleKey(article *models.Article) string {
	return fmt.Sprintf("articles/%s/%06d-%s.md",
		article.CreatedAt.UTC().Format("2006/01"), article.ID, Slug(article.Title))
}

// ArticleMarkdown erzeugt den Dateiinhalt mit Titelzeile und Metadaten.
func ArticleMarkdown(article *models.Article) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	fmt.Fprintf(&b, "_%s, %s_\n\n", article.Author, article.CreatedAt.UTC().Format("2006-01-02"))
	b.WriteString(article.Content)
	if !strings.HasSuffix(article.Content, "\n") {
		b.WriteString("\n")
	}
	return []byte(b.String())
}
