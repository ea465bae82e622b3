package nlp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
)

var (
	// ErrAnalyzerUnavailable indicates no NLP client has been configured.
	ErrAnalyzerUnavailable = errors.New("nlp analyzer unavailable")
)

// LanguageDetectionError reports text whose dominant language could not be determined.
type LanguageDetectionError struct {
	Sample string
}

func (e *LanguageDetectionError) Error() string {
	if e.Sample == "" {
		return "detect language: empty text"
	}
	return fmt.Sprintf("detect language: undetermined for %q", e.Sample)
}

const sampleLength = 40

// DetectLanguage guesses the dominant language of text and returns its ISO 639-1
// code, or the ISO 639-3 code for languages without a two-letter code.
func DetectLanguage(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &LanguageDetectionError{}
	}

	info := whatlanggo.Detect(text)
	if info.Lang < 0 {
		return "", &LanguageDetectionError{Sample: sample(text)}
	}

	if code := info.Lang.Iso6391(); code != "" {
		return code, nil
	}
	if code := whatlanggo.LangToStringShort(info.Lang); code != "" {
		return code, nil
	}
	return "", &LanguageDetectionError{Sample: sample(text)}
}

func sample(text string) string {
	runes := []rune(text)
	if len(runes) <= sampleLength {
		return text
	}
	return string(runes[:sampleLength])
}
