package engine

import (
	"fmt"

	"github.com/propline/prop-engine/internal/models"
)

// ValidationError reports a declared starter missing from the depth
// chart under the strict policy, or structurally malformed input.
type ValidationError struct {
	Player   string
	Position models.Position
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Player != "" {
		return fmt.Sprintf("validation failed: %s not listed at %s", e.Player, e.Position)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// OutOfRangeError reports a lenient fallback-fill lookup past the end
// of the depth chart at a position.
type OutOfRangeError struct {
	Position models.Position
	Index    int
	Have     int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("depth chart at %s has %d entries, need index %d", e.Position, e.Have, e.Index)
}

// UpstreamDataError wraps a data-provider failure. It aborts the
// orchestration call for the affected team only.
type UpstreamDataError struct {
	Source string
	Err    error
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("upstream %s fetch failed: %v", e.Source, e.Err)
}

func (e *UpstreamDataError) Unwrap() error {
	return e.Err
}
