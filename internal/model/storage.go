package model

import (
	"context"
	"io"
)

// Storage is the object store holding pronunciation audio clips.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
