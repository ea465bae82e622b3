package reports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/emotube/backend/internal/models"
	"github.com/emotube/backend/internal/nlp"
	"github.com/emotube/backend/internal/videos"
)

type scriptedProvider struct {
	mu          sync.Mutex
	meta        []videos.Metadata
	metaErr     error
	pages       map[string]videos.CommentPage
	commentErr  error
	videoCalls  int
	threadCalls int
}

func (p *scriptedProvider) ListCommentThreads(_ context.Context, q videos.CommentQuery) (videos.CommentPage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.threadCalls++
	if p.commentErr != nil {
		return videos.CommentPage{}, p.commentErr
	}
	token := ""
	if q.PageToken != nil {
		token = *q.PageToken
	}
	return p.pages[token], nil
}

func (p *scriptedProvider) ListVideos(context.Context, videos.VideoQuery) ([]videos.Metadata, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.videoCalls++
	return p.meta, p.metaErr
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videoCalls + p.threadCalls
}

func twoPageProvider() *scriptedProvider {
	page := func(prefix string) []string {
		out := make([]string, 5)
		for i := range out {
			out[i] = fmt.Sprintf("%s comment %d is really great and funny", prefix, i)
		}
		return out
	}
	return &scriptedProvider{
		meta: []videos.Metadata{{Title: "T", ChannelID: "UC1", ChannelTitle: "C"}},
		pages: map[string]videos.CommentPage{
			"":   {Comments: page("first"), NextPageToken: "p2"},
			"p2": {Comments: page("second")},
		},
	}
}

type nlpStub struct {
	mu        sync.Mutex
	sentiment *nlp.Sentiment
	err       error
	calls     int
}

func (s *nlpStub) AnalyzeSentiment(context.Context, string) (*nlp.Sentiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.sentiment, s.err
}

func (s *nlpStub) AnalyzeSyntax(_ context.Context, text string) ([]nlp.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []nlp.Token{{Text: "really"}, {Text: "great", Adjective: true}, {Text: "funny", Adjective: true}}, nil
}

type rendererStub struct {
	mu    sync.Mutex
	texts []string
	langs []string
	err   error
}

func (r *rendererStub) Render(_ context.Context, name, text, lang string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	r.langs = append(r.langs, lang)
	if r.err != nil {
		return "", r.err
	}
	return "artifacts/" + name + ".png", nil
}

func englishDetector(string) (string, error) { return "en", nil }

func newTestService(provider *scriptedProvider, analyzer *nlpStub, renderer *rendererStub, store Store, now func() time.Time) *Service {
	builder := &Builder{
		Fetcher:        videos.NewFetcher(provider, 10, 5),
		Sentiment:      analyzer,
		Syntax:         analyzer,
		Renderer:       renderer,
		DetectLanguage: englishDetector,
	}
	return &Service{Cache: NewCache(store, 10*24*time.Hour), Builder: builder, NowFunc: now}
}

func TestServiceBuildsThenServesFromCache(t *testing.T) {
	provider := twoPageProvider()
	analyzer := &nlpStub{sentiment: &nlp.Sentiment{Score: 0.6, Magnitude: 4}}
	renderer := &rendererStub{}
	store := NewMemoryStore()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(provider, analyzer, renderer, store, func() time.Time { return now })

	report, err := svc.GetReport(context.Background(), "https://www.youtube.com/watch?v=abc123XYZ")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report.VideoID != "abc123XYZ" || report.VideoTitle != "T" {
		t.Fatalf("unexpected report identity %+v", report)
	}
	if report.Attitude == "" || report.Emoji == "" || report.KeywordCloud == "" {
		t.Fatalf("expected complete report got %+v", report)
	}
	if provider.threadCalls != 2 || provider.videoCalls != 1 {
		t.Fatalf("expected 2 comment pages and 1 metadata call, got %d and %d", provider.threadCalls, provider.videoCalls)
	}
	if renderer.texts[0] != "great funny" || renderer.langs[0] != "en" {
		t.Fatalf("unexpected render input %q %q", renderer.texts[0], renderer.langs[0])
	}

	entry, ok, _ := store.Get(context.Background(), "abc123XYZ")
	if !ok || entry.Report.VideoID != "abc123XYZ" || len(entry.Video.Comments) != 10 {
		t.Fatalf("expected cached entry with 10 comments, got %+v", entry)
	}

	providerCalls, nlpCalls := provider.calls(), analyzer.calls
	now = now.Add(9 * 24 * time.Hour)
	again, err := svc.GetReport(context.Background(), "abc123XYZ")
	if err != nil {
		t.Fatalf("cached get report: %v", err)
	}
	if provider.calls() != providerCalls || analyzer.calls != nlpCalls || len(renderer.texts) != 1 {
		t.Fatal("cache hit must not reach any collaborator")
	}
	if again.Attitude != report.Attitude || again.KeywordCloud != report.KeywordCloud {
		t.Fatalf("cached report differs: %+v vs %+v", again, report)
	}
}

func TestServiceRebuildsStaleEntry(t *testing.T) {
	provider := twoPageProvider()
	analyzer := &nlpStub{sentiment: &nlp.Sentiment{Score: -0.9, Magnitude: 4}}
	store := NewMemoryStore()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(provider, analyzer, &rendererStub{}, store, func() time.Time { return now })

	stale := models.CacheEntry{
		VideoID:      "abc123XYZ",
		Report:       models.Report{VideoID: "abc123XYZ", Attitude: models.AttitudeComplimenting},
		LastComputed: now.Add(-11 * 24 * time.Hour),
	}
	if err := store.Put(context.Background(), stale); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := svc.GetReport(context.Background(), "abc123XYZ")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report.Attitude != models.AttitudeApparentlyNegative {
		t.Fatalf("expected rebuilt report, got %+v", report)
	}
	entry, _, _ := store.Get(context.Background(), "abc123XYZ")
	if !entry.LastComputed.Equal(now) {
		t.Fatalf("expected refreshed timestamp got %v", entry.LastComputed)
	}
}

func TestServiceMetadataMissingDoesNotWriteCache(t *testing.T) {
	provider := twoPageProvider()
	provider.meta = nil
	store := NewMemoryStore()
	svc := newTestService(provider, &nlpStub{sentiment: &nlp.Sentiment{}}, &rendererStub{}, store, time.Now)

	_, err := svc.GetReport(context.Background(), "abc123XYZ")
	var fetchErr *videos.DataFetchingError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected DataFetchingError got %v", err)
	}
	var buildErr *BuildError
	if !errors.As(err, &buildErr) || buildErr.Stage != StageFetchMetadata {
		t.Fatalf("expected failure at metadata stage got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("cache must not be written on failure, got %d entries", store.Len())
	}
}

func TestServiceMalformedReference(t *testing.T) {
	provider := twoPageProvider()
	svc := newTestService(provider, &nlpStub{}, &rendererStub{}, NewMemoryStore(), time.Now)

	_, err := svc.GetReport(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	var malformed *videos.MalformedURLError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedURLError got %v", err)
	}
	if provider.calls() != 0 {
		t.Fatal("malformed reference must not reach the provider")
	}
}

func TestServiceDegradedSentimentStillReports(t *testing.T) {
	provider := twoPageProvider()
	store := NewMemoryStore()
	svc := newTestService(provider, &nlpStub{}, &rendererStub{}, store, time.Now)

	report, err := svc.GetReport(context.Background(), "abc123XYZ")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report.Attitude != "" || report.Emoji != "" {
		t.Fatalf("expected empty attitude got %+v", report)
	}
	if store.Len() != 1 {
		t.Fatal("degraded report should still be cached")
	}
}

func TestServiceCacheWriteFailureStillServes(t *testing.T) {
	provider := twoPageProvider()
	builder := &Builder{
		Fetcher:        videos.NewFetcher(provider, 10, 5),
		Sentiment:      &nlpStub{sentiment: &nlp.Sentiment{Score: 0.2}},
		Syntax:         &nlpStub{},
		Renderer:       &rendererStub{},
		DetectLanguage: englishDetector,
	}
	svc := NewService(NewCache(failingStore{}, time.Hour), builder)

	report, err := svc.GetReport(context.Background(), "abc123XYZ")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if report.Attitude != models.AttitudePrettyPositive {
		t.Fatalf("unexpected attitude %q", report.Attitude)
	}
}

func TestServiceConcurrentRequestsForSameVideo(t *testing.T) {
	provider := twoPageProvider()
	store := NewMemoryStore()
	svc := newTestService(provider, &nlpStub{sentiment: &nlp.Sentiment{Score: 0.2}}, &rendererStub{}, store, time.Now)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetReport(context.Background(), "abc123XYZ"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent get report: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("expected a single entry got %d", store.Len())
	}
	entry, ok, _ := store.Get(context.Background(), "abc123XYZ")
	if !ok || entry.Report.VideoID != entry.Video.ID || entry.Report.VideoTitle != "T" {
		t.Fatalf("inconsistent entry %+v", entry)
	}
}
