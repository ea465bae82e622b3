package reports

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheUnavailable indicates no report store has been configured.
	ErrCacheUnavailable = errors.New("report cache unavailable")
	// ErrBuilderUnavailable indicates the report builder has not been configured.
	ErrBuilderUnavailable = errors.New("report builder unavailable")
)

// BuildError carries the stage at which a report build failed.
type BuildError struct {
	Stage Stage
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build report: %s: %v", e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
