// Package inprogress enforces the cap on how many of a user's tasks may be in
// progress at the same time.
//
// The check runs before a transition is applied: the task being moved into
// in_progress is not yet counted, and when it is already one of the active
// tasks (an edit that keeps the status) its own ID is excluded.
package inprogress

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/i18n"
	"golang.org/x/text/language"
)

// DefaultLimit is the number of tasks a user may have in progress at once.
const DefaultLimit = 2

// ErrLimitReached is the sentinel wrapped by every LimitError.
var ErrLimitReached = errors.New("in-progress task limit reached")

// LimitError reports a rejected transition into in_progress.
type LimitError struct {
	Limit int
	Count int
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d of %d tasks already in progress", ErrLimitReached, e.Count, e.Limit)
}

// Unwrap returns ErrLimitReached.
func (e *LimitError) Unwrap() error {
	return ErrLimitReached
}

// Message is the localized explanation shown to the user.
func (e *LimitError) Message(tag language.Tag) string {
	return i18n.Sprintf(tag, i18n.KeyInProgressLimit, e.Limit)
}

// Limiter checks transitions against a fixed cap.
type Limiter struct {
	max int
}

// NewLimiter returns a Limiter with the given cap. A non-positive limit uses
// DefaultLimit.
func NewLimiter(limit int) Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Limiter{max: limit}
}

// Max returns the configured cap.
func (l Limiter) Max() int {
	return l.max
}

// CanStart reports whether one more task may move into in_progress.
func (l Limiter) CanStart(tasks []*domain.Task, exclude uuid.UUID) bool {
	return Count(tasks, exclude) < l.max
}

// Check returns nil when one more task may move into in_progress, and a
// *LimitError otherwise.
func (l Limiter) Check(tasks []*domain.Task, exclude uuid.UUID) error {
	n := Count(tasks, exclude)
	if n < l.max {
		return nil
	}
	return &LimitError{Limit: l.max, Count: n}
}

// Count returns the number of in-progress tasks whose ID is not exclude.
// uuid.Nil excludes nothing.
func Count(tasks []*domain.Task, exclude uuid.UUID) int {
	n := 0
	for _, t := range tasks {
		if t == nil || !t.InProgress() {
			continue
		}
		if exclude != uuid.Nil && t.ID == exclude {
			continue
		}
		n++
	}
	return n
}

var defaultLimiter = NewLimiter(DefaultLimit)

// CanStart reports whether one more task may move into in_progress under
// DefaultLimit.
func CanStart(tasks []*domain.Task, exclude uuid.UUID) bool {
	return defaultLimiter.CanStart(tasks, exclude)
}

// Check applies DefaultLimit. See Limiter.Check.
func Check(tasks []*domain.Task, exclude uuid.UUID) error {
	return defaultLimiter.Check(tasks, exclude)
}
