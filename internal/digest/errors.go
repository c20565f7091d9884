package digest

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned when the caller supplied neither daily nor
// weekly. It is a client error: the runner does not notify the admin
// channel for it.
var ErrInvalidMode = errors.New("invalid digest mode (use daily or weekly)")

// Stage names the pipeline step a failure originated from.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageDeliver Stage = "deliver"
)

// StageError wraps a gateway failure with the pipeline stage it came from.
// The underlying error's content is preserved unmodified.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StageFetch:
		return fmt.Sprintf("failed to fetch calendar events: %v", e.Err)
	case StageDeliver:
		return fmt.Sprintf("failed to post digest: %v", e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error { return e.Err }
