package handlers

import (
	"context"
	"io"

	"github.com/emotube/backend/internal/models"
)

// ReportService answers analysis requests for a video reference.
type ReportService interface {
	GetReport(ctx context.Context, ref string) (models.Report, error)
}

// ArtifactReader opens stored keyword-cloud images.
type ArtifactReader interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
