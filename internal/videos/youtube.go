package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeProvider implements Provider on top of the YouTube Data API v3.
type YouTubeProvider struct {
	service *youtube.Service
	Timeout time.Duration
}

// NewYouTubeProvider constructs a provider authenticated with apiKey. Extra
// client options are applied after the key.
func NewYouTubeProvider(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*YouTubeProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("youtube provider: api key is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &YouTubeProvider{service: service, Timeout: timeout}, nil
}

// ListCommentThreads issues one commentThreads.list call.
func (p *YouTubeProvider) ListCommentThreads(ctx context.Context, query CommentQuery) (CommentPage, error) {
	if p == nil || p.service == nil {
		return CommentPage{}, ErrProviderUnavailable
	}

	call := p.service.CommentThreads.List(partOrSnippet(query.Part)).VideoId(query.VideoID)
	if query.MaxResults != nil {
		call = call.MaxResults(*query.MaxResults)
	}
	if query.PageToken != nil {
		call = call.PageToken(*query.PageToken)
	}
	if query.Order != nil {
		call = call.Order(*query.Order)
	}
	if query.TextFormat != nil {
		call = call.TextFormat(*query.TextFormat)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	resp, err := call.Context(callCtx).Do()
	if err != nil {
		return CommentPage{}, &TransportError{Op: "commentThreads.list", Err: err}
	}

	page := CommentPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		page.Comments = append(page.Comments, item.Snippet.TopLevelComment.Snippet.TextDisplay)
	}
	return page, nil
}

// ListVideos issues one videos.list call.
func (p *YouTubeProvider) ListVideos(ctx context.Context, query VideoQuery) ([]Metadata, error) {
	if p == nil || p.service == nil {
		return nil, ErrProviderUnavailable
	}

	call := p.service.Videos.List(partOrSnippet(query.Part)).Id(query.ID)
	if query.Hl != nil {
		call = call.Hl(*query.Hl)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	resp, err := call.Context(callCtx).Do()
	if err != nil {
		return nil, &TransportError{Op: "videos.list", Err: err}
	}

	items := make([]Metadata, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil {
			continue
		}
		items = append(items, Metadata{
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelId,
			ChannelTitle: item.Snippet.ChannelTitle,
			Tags:         item.Snippet.Tags,
		})
	}
	return items, nil
}

func partOrSnippet(part []string) []string {
	if len(part) == 0 {
		return []string{"snippet"}
	}
	return part
}

var _ Provider = (*YouTubeProvider)(nil)
