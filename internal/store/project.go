package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
// All methods are scoped to one owner.
type ProjectStore interface {
	// Create saves a new project.
	// Returns validation errors from the domain Project if data is invalid.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project owned by userID.
	// Returns ErrProjectNotFound if there is no such project.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error)

	// Update saves every editable field of a project.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// UpdateStatus changes only the status of a project.
	// Returns ErrProjectNotFound if the project does not exist.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.ProjectStatus) error

	// Delete removes a project. Its tasks remain with the project link cleared.
	// Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// ListOpen returns projects whose status is not done, by deadline.
	ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)

	// ListAll returns every project, by deadline.
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)

	// WithTx returns a new ProjectStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProjectStore
}
