package models

import "time"

// Video is the snapshot of a video assembled for a single analysis run.
type Video struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ChannelID    string   `json:"channelId"`
	ChannelTitle string   `json:"channelTitle"`
	Tags         []string `json:"tags,omitempty"`
	Comments     []string `json:"comments"`
	Language     string   `json:"language"`
}

// Clone returns a copy of the video that shares no slices with v.
func (v Video) Clone() Video {
	out := v
	out.Tags = cloneStrings(v.Tags)
	out.Comments = cloneStrings(v.Comments)
	return out
}

// Report is the analysis outcome served to clients.
type Report struct {
	VideoID      string   `json:"videoId"`
	VideoTitle   string   `json:"videoTitle"`
	Attitude     string   `json:"attitude"`
	Emoji        string   `json:"emoji"`
	KeywordCloud string   `json:"keywordCloud"`
	Tags         []string `json:"tags,omitempty"`
}

// Clone returns a copy of the report that shares no slices with r.
func (r Report) Clone() Report {
	out := r
	out.Tags = cloneStrings(r.Tags)
	return out
}

// CacheEntry is the persisted unit of the report cache.
type CacheEntry struct {
	VideoID      string
	Video        Video
	Report       Report
	LastComputed time.Time
}

// Clone returns a deep copy of the entry.
func (e CacheEntry) Clone() CacheEntry {
	return CacheEntry{
		VideoID:      e.VideoID,
		Video:        e.Video.Clone(),
		Report:       e.Report.Clone(),
		LastComputed: e.LastComputed,
	}
}

// Attitude labels produced by sentiment classification.
const (
	AttitudeApparentlyNegative = "apparently negative"
	AttitudeSomewhatNegative   = "somewhat negative"
	AttitudeSlightlyNegative   = "slightly negative"
	AttitudeMixed              = "mixed reviews"
	AttitudeNeutral            = "neutral"
	AttitudePrettyPositive     = "pretty positive"
	AttitudeComplimenting      = "complimenting"
)

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
