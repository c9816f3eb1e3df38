package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

type GCPStorage struct {
	client *gcs.Client
	bucket string
}

func NewGCPStorage(ctx context.Context, bucket string) (*GCPStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCPStorage{
		client: client,
		bucket: bucket,
	}, nil
}

func (g *GCPStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	obj := g.client.Bucket(g.bucket).Object(request.Key)

	w := obj.NewWriter(ctx)
	w.ContentType = request.ContentType
	if len(request.Metadata) > 0 {
		w.Metadata = request.Metadata
	}

	size, err := io.Copy(w, request.Reader)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write to GCS: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize GCS upload: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, request.Key),
		Size: size,
	}, nil
}

func (g *GCPStorage) Delete(ctx context.Context, key string) error {
	if err := g.client.Bucket(g.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete from GCS: %w", err)
	}
	return nil
}

func (g *GCPStorage) Close() error {
	return g.client.Close()
}
