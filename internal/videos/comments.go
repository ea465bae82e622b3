package videos

import (
	"context"
	"log/slog"

	"github.com/emotube/backend/internal/logging"
)

const (
	commentOrder      = "relevance"
	commentTextFormat = "plainText"
)

// Comments pages through the video's comment threads in relevance order until
// the configured bound is reached or the provider reports no further page.
//
// A provider error on any page ends pagination and the comments gathered so far
// are returned without error. An empty first page means the video has nothing
// to analyse and yields a DataFetchingError.
func (f *Fetcher) Comments(ctx context.Context, videoID string) ([]string, error) {
	if f == nil || f.provider == nil {
		return nil, ErrProviderUnavailable
	}

	logger := logging.FromContext(ctx)

	order := commentOrder
	textFormat := commentTextFormat
	query := CommentQuery{
		VideoID:    videoID,
		Part:       []string{"snippet"},
		Order:      &order,
		TextFormat: &textFormat,
	}

	comments := make([]string, 0, f.maxComments)
	for pages := 0; len(comments) < f.maxComments; pages++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		size := int64(min(f.pageSize, f.maxComments-len(comments)))
		query.MaxResults = &size

		page, err := f.provider.ListCommentThreads(ctx, query)
		if err != nil {
			logger.Warn("comment page failed, keeping partial result",
				slog.String("video_id", videoID),
				slog.Int("page", pages),
				slog.Int("comments", len(comments)),
				slog.Any("error", err),
			)
			break
		}

		if len(page.Comments) == 0 {
			if pages == 0 {
				return nil, &DataFetchingError{VideoID: videoID}
			}
			break
		}

		comments = append(comments, page.Comments...)

		if page.NextPageToken == "" {
			break
		}
		token := page.NextPageToken
		query.PageToken = &token
	}

	if len(comments) > f.maxComments {
		comments = comments[:f.maxComments]
	}
	return comments, nil
}
