package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/emotube/backend/internal/logging"
	"github.com/emotube/backend/internal/models"
	"github.com/emotube/backend/internal/videos"
)

// ReportBuilder computes a fresh report for a video.
type ReportBuilder interface {
	Build(ctx context.Context, videoID string) (models.Video, models.Report, error)
}

// Service answers report requests from the cache, building on a miss or when
// the cached entry is stale.
type Service struct {
	Cache   *Cache
	Builder ReportBuilder
	NowFunc func() time.Time
}

// NewService wires a Service with the wall clock.
func NewService(cache *Cache, builder ReportBuilder) *Service {
	return &Service{Cache: cache, Builder: builder, NowFunc: time.Now}
}

// GetReport resolves ref, a watch URL or bare identifier, and returns its report.
// A fresh cache hit never reaches the builder.
func (s *Service) GetReport(ctx context.Context, ref string) (models.Report, error) {
	videoID, err := videos.ResolveReference(ref)
	if err != nil {
		return models.Report{}, err
	}
	if s.Builder == nil {
		return models.Report{}, ErrBuilderUnavailable
	}

	logger := logging.FromContext(ctx).With(slog.String("video_id", videoID))

	entry, found := s.Cache.Lookup(ctx, videoID)
	if found && !s.Cache.IsStale(entry, s.now()) {
		logger.Debug("report served from cache", slog.Time("last_computed", entry.LastComputed))
		return entry.Report, nil
	}
	if found {
		logger.Info("cached report is stale, rebuilding", slog.Time("last_computed", entry.LastComputed))
	}

	video, report, err := s.Builder.Build(ctx, videoID)
	if err != nil {
		return models.Report{}, err
	}

	if err := s.Cache.Upsert(ctx, videoID, video, report, s.now()); err != nil {
		logger.Warn("store report in cache", slog.Any("error", err))
	}
	return report, nil
}

func (s *Service) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now()
}
