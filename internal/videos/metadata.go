package videos

import (
	"context"
	"fmt"
)

// Metadata captures the video attributes a report needs.
type Metadata struct {
	Title        string
	ChannelID    string
	ChannelTitle string
	Tags         []string
}

// CommentQuery mirrors the commentThreads.list request. Nil fields are not sent.
type CommentQuery struct {
	VideoID    string
	Part       []string
	MaxResults *int64
	PageToken  *string
	Order      *string
	TextFormat *string
}

// CommentPage is one page of comment text. An empty NextPageToken marks the end of the stream.
type CommentPage struct {
	Comments      []string
	NextPageToken string
}

// VideoQuery mirrors the videos.list request. Nil fields are not sent.
type VideoQuery struct {
	ID   string
	Part []string
	Hl   *string
}

// Provider is the remote comment and metadata service.
type Provider interface {
	ListCommentThreads(ctx context.Context, query CommentQuery) (CommentPage, error)
	ListVideos(ctx context.Context, query VideoQuery) ([]Metadata, error)
}

// Fetcher retrieves comments and metadata for a video through a Provider.
type Fetcher struct {
	provider    Provider
	maxComments int
	pageSize    int
}

const (
	DefaultMaxComments = 100
	DefaultPageSize    = 5
)

// NewFetcher constructs a Fetcher bounded to maxComments, requested pageSize at a time.
func NewFetcher(provider Provider, maxComments, pageSize int) *Fetcher {
	if maxComments <= 0 {
		maxComments = DefaultMaxComments
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Fetcher{provider: provider, maxComments: maxComments, pageSize: pageSize}
}

// Metadata performs a single videos.list call for videoID.
func (f *Fetcher) Metadata(ctx context.Context, videoID string) (Metadata, error) {
	if f == nil || f.provider == nil {
		return Metadata{}, ErrProviderUnavailable
	}

	items, err := f.provider.ListVideos(ctx, VideoQuery{ID: videoID, Part: []string{"snippet"}})
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch metadata for %s: %w", videoID, err)
	}
	if len(items) == 0 {
		return Metadata{}, &DataFetchingError{VideoID: videoID}
	}

	meta := items[0]
	if meta.Tags != nil {
		meta.Tags = append([]string(nil), meta.Tags...)
	}
	return meta, nil
}
