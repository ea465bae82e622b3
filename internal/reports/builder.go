package reports

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/emotube/backend/internal/logging"
	"github.com/emotube/backend/internal/models"
	"github.com/emotube/backend/internal/nlp"
	"github.com/emotube/backend/internal/videos"
)

// Stage names a step of a report build.
type Stage string

const (
	StageFetchMetadata     Stage = "fetch_metadata"
	StageFetchComments     Stage = "fetch_comments"
	StageDetectLanguage    Stage = "detect_language"
	StageExtractKeywords   Stage = "extract_keywords"
	StageClassifySentiment Stage = "classify_sentiment"
	StageRenderArtifact    Stage = "render_artifact"
)

// VideoFetcher retrieves the raw inputs of a report.
type VideoFetcher interface {
	Metadata(ctx context.Context, videoID string) (videos.Metadata, error)
	Comments(ctx context.Context, videoID string) ([]string, error)
}

// ArtifactRenderer turns keyword text into a stored image and returns its location.
type ArtifactRenderer interface {
	Render(ctx context.Context, name, text, lang string) (string, error)
}

// Builder runs the analysis pipeline for a single video.
type Builder struct {
	Fetcher   VideoFetcher
	Sentiment nlp.SentimentAnalyzer
	Syntax    nlp.SyntaxAnalyzer
	Renderer  ArtifactRenderer
	// DetectLanguage defaults to nlp.DetectLanguage.
	DetectLanguage func(text string) (string, error)
}

// Build produces the video snapshot and report for videoID. It either returns
// a complete report or a *BuildError naming the failed stage.
func (b *Builder) Build(ctx context.Context, videoID string) (models.Video, models.Report, error) {
	if b == nil || b.Fetcher == nil || b.Renderer == nil {
		return models.Video{}, models.Report{}, ErrBuilderUnavailable
	}

	ctx, span := logging.StartSpan(ctx, "reports.build")
	defer span.End()
	logger := logging.FromContext(ctx).With(slog.String("video_id", videoID))

	video := models.Video{ID: videoID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stageCtx, stageSpan := logging.StartSpan(gctx, string(StageFetchMetadata))
		defer stageSpan.End()

		meta, err := b.Fetcher.Metadata(stageCtx, videoID)
		if err != nil {
			stageSpan.Fail(err)
			return &BuildError{Stage: StageFetchMetadata, Err: err}
		}
		video.Title = meta.Title
		video.ChannelID = meta.ChannelID
		video.ChannelTitle = meta.ChannelTitle
		video.Tags = meta.Tags
		return nil
	})
	g.Go(func() error {
		stageCtx, stageSpan := logging.StartSpan(gctx, string(StageFetchComments))
		defer stageSpan.End()

		comments, err := b.Fetcher.Comments(stageCtx, videoID)
		if err != nil {
			stageSpan.Fail(err)
			return &BuildError{Stage: StageFetchComments, Err: err}
		}
		video.Comments = comments
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("report build failed", slog.Any("error", err))
		return models.Video{}, models.Report{}, err
	}

	detect := b.DetectLanguage
	if detect == nil {
		detect = nlp.DetectLanguage
	}
	lang, err := detect(strings.Join(video.Comments, ""))
	if err != nil {
		err = &BuildError{Stage: StageDetectLanguage, Err: err}
		logger.Error("report build failed", slog.Any("error", err))
		return models.Video{}, models.Report{}, err
	}
	video.Language = lang

	text := strings.Join(video.Comments, " ")

	var (
		keywords string
		attitude nlp.Attitude
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		stageCtx, stageSpan := logging.StartSpan(gctx, string(StageExtractKeywords))
		defer stageSpan.End()

		kw, err := nlp.ExtractKeywords(stageCtx, b.Syntax, text)
		if err != nil {
			stageSpan.Fail(err)
			return &BuildError{Stage: StageExtractKeywords, Err: err}
		}
		keywords = kw
		return nil
	})
	g.Go(func() error {
		stageCtx, stageSpan := logging.StartSpan(gctx, string(StageClassifySentiment))
		defer stageSpan.End()

		att, err := nlp.ClassifySentiment(stageCtx, b.Sentiment, text)
		if err != nil {
			stageSpan.Fail(err)
			return &BuildError{Stage: StageClassifySentiment, Err: err}
		}
		if att == (nlp.Attitude{}) {
			logging.FromContext(stageCtx).Warn("sentiment unavailable, report carries no attitude")
		}
		attitude = att
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("report build failed", slog.Any("error", err))
		return models.Video{}, models.Report{}, err
	}

	renderCtx, renderSpan := logging.StartSpan(ctx, string(StageRenderArtifact))
	location, err := b.Renderer.Render(renderCtx, videoID, keywords, lang)
	renderSpan.Fail(err)
	renderSpan.End()
	if err != nil {
		err = &BuildError{Stage: StageRenderArtifact, Err: err}
		logger.Error("report build failed", slog.Any("error", err))
		return models.Video{}, models.Report{}, err
	}

	report := models.Report{
		VideoID:      video.ID,
		VideoTitle:   video.Title,
		Attitude:     attitude.Label,
		Emoji:        attitude.Emoji,
		KeywordCloud: location,
		Tags:         video.Tags,
	}

	logger.Info("report built",
		slog.Int("comments", len(video.Comments)),
		slog.String("language", lang),
		slog.String("attitude", report.Attitude),
	)
	return video.Clone(), report.Clone(), nil
}
