package storage

import (
	"context"
	"errors"
	"io"
	"path"
)

// ErrArtifactStorageUnavailable indicates no artifact store has been configured.
var ErrArtifactStorageUnavailable = errors.New("artifact storage unavailable")

// ArtifactStore persists rendered artifacts and reads them back by location.
type ArtifactStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
