package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/emotube/backend/internal/nlp"
	"github.com/emotube/backend/internal/videos"
)

// AnalysisHandler serves sentiment reports for videos.
type AnalysisHandler struct {
	Reports   ReportService
	Artifacts ArtifactReader
	Limiter   RateLimiter
}

type analysisResponse struct {
	Attitude   string `json:"attitude"`
	VideoTitle string `json:"video_title"`
	Emoji      string `json:"emoji"`
	WCloud     string `json:"wcloud"`
}

// Get handles GET /api/v1/analysis/{ref}, GET /api/v1/analysis?url= and the
// legacy GET /analysis/{ref}.
func (h AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	ref := strings.TrimSpace(r.PathValue("ref"))
	if ref == "" {
		ref = strings.TrimSpace(r.URL.Query().Get("url"))
	}
	if ref == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "video reference is required"})
		return
	}

	if !allowRequest(h.Limiter, r, "analysis") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many analysis requests"})
		return
	}

	if h.Reports == nil {
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "analysis unavailable"})
		return
	}

	report, err := h.Reports.GetReport(ctx, ref)
	if err != nil {
		status, message := analysisError(err)
		respondError(ctx, w, status, message, err)
		return
	}

	cloud, err := h.readArtifact(r, report.KeywordCloud)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "keyword cloud unavailable", fmt.Errorf("read keyword cloud %s: %w", report.KeywordCloud, err))
		return
	}

	respondJSON(ctx, w, http.StatusOK, analysisResponse{
		Attitude:   report.Attitude,
		VideoTitle: report.VideoTitle,
		Emoji:      report.Emoji,
		WCloud:     cloud,
	})
}

func (h AnalysisHandler) readArtifact(r *http.Request, location string) (string, error) {
	if h.Artifacts == nil {
		return "", errors.New("artifact reader not configured")
	}
	rc, err := h.Artifacts.Open(r.Context(), location)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func analysisError(err error) (int, string) {
	var (
		malformed *videos.MalformedURLError
		noData    *videos.DataFetchingError
		language  *nlp.LanguageDetectionError
		transport *videos.TransportError
	)
	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest, "could not find a video id in the reference"
	case errors.As(err, &noData):
		return http.StatusNotFound, "video not found or has no comments"
	case errors.As(err, &language):
		return http.StatusUnprocessableEntity, "could not determine the language of the comments"
	case errors.As(err, &transport):
		return http.StatusBadGateway, "upstream service failed"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}
