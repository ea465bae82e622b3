package nlp

import (
	"context"
	"strings"

	"github.com/emotube/backend/internal/models"
)

// Sentiment is the document-level result of the NLP collaborator.
type Sentiment struct {
	Score     float64
	Magnitude float64
}

// SentimentAnalyzer scores text. A nil Sentiment with a nil error means the
// collaborator produced no result.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (*Sentiment, error)
}

// Score scale bucket boundaries.
var scoreScale = [6]float64{-0.5, -0.3, -0.1, 0.1, 0.3, 0.5}

const saturationThreshold = 0.1

// Attitude is a classified audience reaction.
type Attitude struct {
	Label string
	Emoji string
}

// Classify maps a sentiment of text onto one of the fixed attitude buckets. A
// nil sentiment yields the zero Attitude.
func Classify(text string, sentiment *Sentiment) Attitude {
	if sentiment == nil {
		return Attitude{}
	}

	length := len(strings.Fields(text))
	if length < 1 {
		length = 1
	}
	saturated := sentiment.Magnitude/float64(length) > saturationThreshold

	score := sentiment.Score
	switch {
	case score <= scoreScale[0]:
		return Attitude{Label: models.AttitudeApparentlyNegative, Emoji: "\U0001F620"}
	case score <= scoreScale[1]:
		return Attitude{Label: models.AttitudeSomewhatNegative, Emoji: "☹"}
	case score < scoreScale[2]:
		return Attitude{Label: models.AttitudeSlightlyNegative, Emoji: "\U0001F641"}
	case score <= scoreScale[3]:
		if saturated {
			return Attitude{Label: models.AttitudeMixed, Emoji: "\U0001F928"}
		}
		return Attitude{Label: models.AttitudeNeutral, Emoji: "\U0001F636"}
	case score <= scoreScale[4]:
		return Attitude{Label: models.AttitudePrettyPositive, Emoji: "\U0001F642"}
	default:
		return Attitude{Label: models.AttitudeComplimenting, Emoji: "\U0001F604"}
	}
}

// ClassifySentiment asks analyzer for the sentiment of text and classifies it.
func ClassifySentiment(ctx context.Context, analyzer SentimentAnalyzer, text string) (Attitude, error) {
	if analyzer == nil {
		return Attitude{}, ErrAnalyzerUnavailable
	}
	sentiment, err := analyzer.AnalyzeSentiment(ctx, text)
	if err != nil {
		return Attitude{}, err
	}
	return Classify(text, sentiment), nil
}
