package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vodomont/backend/internal/domain/providers"
	s3client "github.com/vodomont/backend/internal/infrastructure/clients/s3"
	"github.com/vodomont/backend/pkg/config"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// S3Adapter implements the ObjectStorage interface on the gallery bucket.
type S3Adapter struct {
	client *s3client.Client
	cfg    *config.StorageConfig
}

// NewS3Adapter creates a new S3 storage adapter.
func NewS3Adapter(client *s3client.Client, cfg *config.StorageConfig) providers.ObjectStorage {
	return &S3Adapter{
		client: client,
		cfg:    cfg,
	}
}

// Upload stores the object and returns its public URL. Payloads over
// providers.MaxUploadBytes are rejected before any bytes hit the wire.
func (a *S3Adapter) Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	if size > providers.MaxUploadBytes {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("file size %d exceeds limit of %d bytes", size, providers.MaxUploadBytes))
	}

	// Guards against callers that understate the declared size
	limited := io.LimitReader(body, providers.MaxUploadBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", apperrors.NewInternalError("failed to read upload body", err)
	}
	if int64(len(data)) > providers.MaxUploadBytes {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("file exceeds limit of %d bytes", providers.MaxUploadBytes))
	}

	_, err = a.client.S3().PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.client.Bucket()),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", apperrors.NewExternalError("failed to upload object", err)
	}

	return a.PublicURL(key), nil
}

// Delete removes the object. Deleting a missing key succeeds; S3 treats it
// as a no-op and so do we.
func (a *S3Adapter) Delete(ctx context.Context, key string) error {
	_, err := a.client.S3().DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.client.Bucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.NewExternalError("failed to delete object", err)
	}
	return nil
}

// List returns every object under the prefix, following pagination.
func (a *S3Adapter) List(ctx context.Context, prefix string) ([]providers.StoredObject, error) {
	paginator := s3.NewListObjectsV2Paginator(a.client.S3(), &s3.ListObjectsV2Input{
		Bucket: aws.String(a.client.Bucket()),
		Prefix: aws.String(prefix),
	})

	var objects []providers.StoredObject
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewExternalError("failed to list objects", err)
		}
		for _, obj := range page.Contents {
			stored := providers.StoredObject{
				Key: aws.ToString(obj.Key),
			}
			if obj.Size != nil {
				stored.Size = *obj.Size
			}
			if obj.LastModified != nil {
				stored.LastModified = *obj.LastModified
			}
			objects = append(objects, stored)
		}
	}

	return objects, nil
}

// PublicURL returns the public URL for a key without touching the bucket.
func (a *S3Adapter) PublicURL(key string) string {
	return a.cfg.PublicURL(key)
}

// KeyFromURL maps a public URL back to its object key. Returns ok=false for
// URLs outside the managed bucket, such as demo placeholders or external
// images, which reconciliation must leave alone.
func (a *S3Adapter) KeyFromURL(url string) (string, bool) {
	base := a.cfg.PublicURL("")
	if base == "" || !strings.HasPrefix(url, base) {
		return "", false
	}
	key := strings.TrimPrefix(url, base)
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", false
	}
	return key, true
}
