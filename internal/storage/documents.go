package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nagarsetu-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DocumentStore writes uploaded service-request documents to local disk with
// a millisecond-timestamp filename prefix, and optionally archives a copy to
// S3-compatible storage in the background.
type DocumentStore struct {
	dir      string
	archive  *s3.Client
	bucket   string
	archived bool
}

func NewDocumentStore(cfg *config.Config) (*DocumentStore, error) {
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	store := &DocumentStore{dir: cfg.Uploads.Dir}

	if cfg.Archive.Enabled {
		client, err := newArchiveClient(cfg)
		if err != nil {
			log.Printf("[Storage] Archive disabled: %v", err)
		} else {
			store.archive = client
			store.bucket = cfg.Archive.Bucket
			store.archived = true
			log.Printf("[Storage] Archiving documents to bucket %s", cfg.Archive.Bucket)
		}
	}

	return store, nil
}

func newArchiveClient(cfg *config.Config) (*s3.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure archive client: %w", err)
	}

	endpoint := cfg.Archive.Endpoint
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	}), nil
}

// Save writes the document to disk and returns its serving path. Collisions
// are possible if two uploads of the same filename land on the same
// millisecond; the write fails rather than silently overwriting.
func (s *DocumentStore) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(originalName))
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	if s.archived {
		go s.archiveCopy(path, name)
	}

	return path, nil
}

// archiveCopy uploads the stored file to the archive bucket, best-effort.
func (s *DocumentStore) archiveCopy(path, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		log.Printf("[Storage] Archive read failed for %s: %v", key, err)
		return
	}
	defer f.Close()

	_, err = s.archive.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("documents/" + key),
		Body:   f,
	})
	if err != nil {
		log.Printf("[Storage] Archive upload failed for %s: %v", key, err)
	}
}

// sanitizeFilename strips path separators and other characters that would
// let a client-supplied name escape the uploads directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "document.pdf"
	}
	return b.String()
}
