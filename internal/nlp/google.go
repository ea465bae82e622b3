package nlp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
	"google.golang.org/api/option"

	"github.com/emotube/backend/internal/videos"
)

// GoogleAnalyzer implements SentimentAnalyzer and SyntaxAnalyzer with the
// Cloud Natural Language API.
type GoogleAnalyzer struct {
	client  *language.Client
	Timeout time.Duration
}

// NewGoogleAnalyzer dials the Natural Language API. When credentialsFile is
// empty the client falls back to application default credentials.
func NewGoogleAnalyzer(ctx context.Context, credentialsFile string, timeout time.Duration, opts ...option.ClientOption) (*GoogleAnalyzer, error) {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var clientOpts []option.ClientOption
	if path := strings.TrimSpace(credentialsFile); path != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(path))
	}
	clientOpts = append(clientOpts, opts...)

	client, err := language.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create language client: %w", err)
	}
	return &GoogleAnalyzer{client: client, Timeout: timeout}, nil
}

// Close releases the underlying connection.
func (a *GoogleAnalyzer) Close() error {
	if a == nil || a.client == nil {
		return nil
	}
	return a.client.Close()
}

// AnalyzeSentiment returns the document sentiment, or nil when the API omitted it.
func (a *GoogleAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*Sentiment, error) {
	if a == nil || a.client == nil {
		return nil, ErrAnalyzerUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	resp, err := a.client.AnalyzeSentiment(callCtx, &languagepb.AnalyzeSentimentRequest{
		Document:     plainText(text),
		EncodingType: languagepb.EncodingType_UTF8,
	})
	if err != nil {
		return nil, &videos.TransportError{Op: "analyzeSentiment", Err: err}
	}

	doc := resp.GetDocumentSentiment()
	if doc == nil {
		return nil, nil
	}
	return &Sentiment{Score: widen(doc.GetScore()), Magnitude: widen(doc.GetMagnitude())}, nil
}

// widen converts an API float32 through its shortest decimal form, so a score
// sent as 0.3 compares as 0.3 against the bucket edges rather than as
// 0.30000001192092896.
func widen(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}

// AnalyzeSyntax returns the tokens of text with adjectives flagged.
func (a *GoogleAnalyzer) AnalyzeSyntax(ctx context.Context, text string) ([]Token, error) {
	if a == nil || a.client == nil {
		return nil, ErrAnalyzerUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	resp, err := a.client.AnalyzeSyntax(callCtx, &languagepb.AnalyzeSyntaxRequest{
		Document:     plainText(text),
		EncodingType: languagepb.EncodingType_UTF8,
	})
	if err != nil {
		return nil, &videos.TransportError{Op: "analyzeSyntax", Err: err}
	}

	tokens := make([]Token, 0, len(resp.GetTokens()))
	for _, tok := range resp.GetTokens() {
		tokens = append(tokens, Token{
			Text:      tok.GetText().GetContent(),
			Adjective: tok.GetPartOfSpeech().GetTag() == languagepb.PartOfSpeech_ADJ,
		})
	}
	return tokens, nil
}

func plainText(text string) *languagepb.Document {
	return &languagepb.Document{
		Source: &languagepb.Document_Content{Content: text},
		Type:   languagepb.Document_PLAIN_TEXT,
	}
}

var (
	_ SentimentAnalyzer = (*GoogleAnalyzer)(nil)
	_ SyntaxAnalyzer    = (*GoogleAnalyzer)(nil)
)
