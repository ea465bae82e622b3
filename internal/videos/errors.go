package videos

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable indicates the video provider is not configured.
	ErrProviderUnavailable = errors.New("video provider unavailable")
)

// MalformedURLError reports a reference that carries no video identifier.
type MalformedURLError struct {
	URL string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed video url %q", e.URL)
}

// DataFetchingError reports that the provider returned nothing usable for a video.
type DataFetchingError struct {
	VideoID string
}

func (e *DataFetchingError) Error() string {
	return fmt.Sprintf("no data returned for video %s", e.VideoID)
}

// TransportError wraps a failed call to the remote provider.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
