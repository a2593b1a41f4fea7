// Package publish uploads the artifact bundle to S3-compatible storage.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cobrasuicida/srf2025-scraper/internal/config"
)

// contentTypes maps artifact extensions to their MIME types; anything else
// is uploaded as octet-stream.
var contentTypes = map[string]string{
	".json":   "application/json",
	".csv":    "text/csv",
	".txt":    "text/plain; charset=utf-8",
	".html":   "text/html; charset=utf-8",
	".xlsx":   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".sqlite": "application/vnd.sqlite3",
}

// NewS3Client creates an S3 client for the configured storage. A custom
// endpoint URL switches the client to an S3-compatible host.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3Key != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		}
	}), nil
}

// UploadFile uploads one object and returns its link.
func UploadFile(ctx context.Context, client *s3.Client, cfg *config.Config, key string, data []byte) (string, error) {
	contentType := contentTypes[strings.ToLower(filepath.Ext(key))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", cfg.S3URL, cfg.S3Bucket, key), nil
}

// UploadBundle uploads every file in dir under the configured key prefix
// and returns the object links in upload order.
func UploadBundle(ctx context.Context, client *s3.Client, cfg *config.Config, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading bundle dir: %w", err)
	}

	var links []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		key := entry.Name()
		if cfg.S3Prefix != "" {
			key = strings.TrimSuffix(cfg.S3Prefix, "/") + "/" + key
		}

		link, err := UploadFile(ctx, client, cfg, key, data)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", entry.Name(), err)
		}
		links = append(links, link)
	}
	return links, nil
}
