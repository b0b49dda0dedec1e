package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/store"
)

// TaskRepository defines the task persistence the services rely on.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TaskStatus) error
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error
	Restore(ctx context.Context, userID, id uuid.UUID) error
	HardDelete(ctx context.Context, userID, id uuid.UUID) error
	ListActive(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)
	ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListCompletedBetween(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Task, error)
	ListDeleted(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListByProject(ctx context.Context, userID, projectID uuid.UUID, onlyOpen bool) ([]*domain.Task, error)
	ListBetween(ctx context.Context, userID uuid.UUID, from, to string, includeDone bool) ([]*domain.Task, error)
	ListInProgress(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	LockUser(ctx context.Context, userID uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the connection pool transactions are started on.
	DB() *sql.DB
}

// ProjectRepository defines the project persistence the services rely on.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.ProjectStatus) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) ProjectRepository
}

// NewTaskRepositoryAdapter adapts a store.TaskStore to TaskRepository.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{TaskStore: taskStore, db: db}
}

type taskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// WithTx implements TaskRepository.WithTx
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{TaskStore: a.TaskStore.WithTx(tx), db: a.db}
}

// DB implements TaskRepository.DB
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewProjectRepositoryAdapter adapts a store.ProjectStore to ProjectRepository.
func NewProjectRepositoryAdapter(projectStore store.ProjectStore) ProjectRepository {
	return &projectRepositoryAdapter{ProjectStore: projectStore}
}

type projectRepositoryAdapter struct {
	store.ProjectStore
}

// WithTx implements ProjectRepository.WithTx
func (a *projectRepositoryAdapter) WithTx(tx *sql.Tx) ProjectRepository {
	return &projectRepositoryAdapter{ProjectStore: a.ProjectStore.WithTx(tx)}
}
