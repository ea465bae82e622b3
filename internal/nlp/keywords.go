package nlp

import (
	"context"
	"strings"
)

// Token is one unit of a syntax breakdown.
type Token struct {
	Text      string
	Adjective bool
}

// SyntaxAnalyzer breaks plain text into part-of-speech tagged tokens.
type SyntaxAnalyzer interface {
	AnalyzeSyntax(ctx context.Context, text string) ([]Token, error)
}

// ExtractKeywords keeps the adjectives of text in the order the analyzer
// returned them, space-joined.
func ExtractKeywords(ctx context.Context, analyzer SyntaxAnalyzer, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if analyzer == nil {
		return "", ErrAnalyzerUnavailable
	}

	tokens, err := analyzer.AnalyzeSyntax(ctx, text)
	if err != nil {
		return "", err
	}

	adjectives := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token.Adjective {
			adjectives = append(adjectives, token.Text)
		}
	}
	return strings.Join(adjectives, " "), nil
}
