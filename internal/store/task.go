package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every method except PurgeDeletedBefore is scoped to one owner.
// List methods return tasks ordered by deadline, then creation time, and an
// empty slice when nothing matches.
type TaskStore interface {
	// Create saves a new task.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the referenced project does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task, deleted or not, owned by userID.
	// Returns ErrTaskNotFound if there is no such task.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// Update saves every editable field of a non-deleted task.
	// Returns ErrTaskNotFound if the task does not exist or is in the trash.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus changes only the status of a non-deleted task.
	// Returns ErrTaskNotFound if the task does not exist or is in the trash.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TaskStatus) error

	// SoftDelete moves a task to the trash.
	// Returns ErrTaskNotFound if the task does not exist or is already deleted.
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error

	// Restore takes a task out of the trash.
	// Returns ErrTaskNotFound if the task is not in the trash.
	Restore(ctx context.Context, userID, id uuid.UUID) error

	// HardDelete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	HardDelete(ctx context.Context, userID, id uuid.UUID) error

	// ListActive returns every non-deleted task, optionally filtered by status.
	// An empty status matches all.
	ListActive(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)

	// ListOpen returns non-deleted tasks whose status is not done.
	ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListCompletedBetween returns non-deleted done tasks with a deadline in
	// the inclusive range [from, to].
	ListCompletedBetween(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Task, error)

	// ListDeleted returns the trash, most recently deleted first.
	ListDeleted(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByProject returns non-deleted tasks of a project; onlyOpen drops
	// done tasks.
	ListByProject(ctx context.Context, userID, projectID uuid.UUID, onlyOpen bool) ([]*domain.Task, error)

	// ListBetween returns non-deleted tasks with a deadline in the inclusive
	// range [from, to]; includeDone keeps done tasks.
	ListBetween(ctx context.Context, userID uuid.UUID, from, to string, includeDone bool) ([]*domain.Task, error)

	// ListInProgress returns non-deleted tasks whose status is in_progress.
	ListInProgress(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// LockUser takes a row lock on the owner until the surrounding transaction
	// ends, serializing concurrent status changes of the same user.
	// Only meaningful on a store returned by WithTx.
	// Returns ErrUserNotFound if the user does not exist.
	LockUser(ctx context.Context, userID uuid.UUID) error

	// PurgeDeletedBefore permanently removes tasks of every user that were
	// moved to the trash before cutoff, returning how many were removed.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
