package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"ai-blog/config"
	"ai-blog/models"
	"ai-blog/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const backupPrefix = "backup-"

type BackupConfig struct {
	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

// articleLister ist der Teil des Stores, den der Export braucht.
type articleLister interface {
	ListAll(ctx context.Context) ([]models.Article, error)
}

// backupBucket bündelt die S3-Operationen der Rotation.
type backupBucket interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()
	logging.Info("Starting backup...")

	var bcfg BackupConfig
	if err := envconfig.Process("", &bcfg); err != nil {
		logging.Fatal("Backup config load error", zap.Error(err))
	}
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	if err := cfg.ValidateDatabase(); err != nil {
		logging.Fatal("Invalid database configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// 1. Artikel exportieren
	db, err := storage.OpenDatabase(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	dump, count, err := exportArticles(ctx, storage.NewArticleStore(db, logging))
	if err != nil {
		logging.Fatal("Failed to export articles", zap.Error(err))
	}

	// 2. S3-Client erstellen
	settings := storage.S3Settings{
		URL:    bcfg.BackupEndpoint,
		Key:    bcfg.BackupAccessKey,
		Secret: bcfg.BackupSecretKey,
		Region: bcfg.BackupRegion,
		Bucket: bcfg.BackupBucket,
	}
	client, err := storage.NewS3Client(ctx, settings)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}

	// 3. Backup hochladen
	key := backupKey(time.Now())
	link, err := storage.UploadFile(ctx, client, settings, key, "application/gzip", dump)
	if err != nil {
		logging.Fatal("Failed to upload backup", zap.Error(err))
	}
	logging.Info("Backup uploaded", zap.String("location", link), zap.Int("articles", count))

	// 4. Alte Backups rotieren
	deleted, err := rotateBackups(ctx, client, bcfg.BackupBucket, bcfg.KeepBackups, logging)
	if err != nil {
		logging.Fatal("Failed to rotate backups", zap.Error(err))
	}
	logging.Info("Backup finished", zap.Int("deleted", deleted))
}

func backupKey(now time.Time) string {
	return fmt.Sprintf("%s%s.json.gz", backupPrefix, now.UTC().Format("2006-01-02T15-04-05Z"))
}

// exportArticles schreibt alle Artikel als gzip-komprimiertes JSON-Array.
func exportArticles(ctx context.Context, store articleLister) ([]byte, int, error) {
	articles, err := store.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gzipWriter).Encode(articles); err != nil {
		return nil, 0, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(articles), nil
}

// rotateBackups behält die keep neuesten Backups und löscht den Rest.
// Fehler beim Löschen einzelner Objekte werden nur protokolliert.
func rotateBackups(ctx context.Context, client backupBucket, bucket string, keep int, logging *zap.Logger) (int, error) {
	output, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(backupPrefix),
	})
	if err != nil {
		return 0, err
	}

	objects := output.Contents
	if len(objects) <= keep {
		logging.Info("No rotation needed", zap.Int("backups", len(objects)), zap.Int("keep", keep))
		return 0, nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(*objects[j].LastModified)
	})

	deleted := 0
	for _, obj := range objects[keep:] {
		key := aws.ToString(obj.Key)
		if !strings.HasPrefix(key, backupPrefix) {
			continue
		}
		logging.Info("Deleting old backup", zap.String("key", key))
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    obj.Key,
		}); err != nil {
			logging.Error("Failed to delete backup", zap.String("key", key), zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}
