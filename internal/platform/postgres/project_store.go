package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/platform/logger"
	"github.com/phrazzld/taskal/internal/store"
)

const projectColumns = `id, user_id, name, goal, to_char(deadline, 'YYYY-MM-DD'), status, created_at, updated_at`

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the ProjectStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{db: tx, logger: s.logger}
}

// Create implements store.ProjectStore.Create
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, name, goal, deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8)
	`,
		project.ID,
		project.UserID,
		project.Name,
		project.Goal,
		project.Deadline,
		string(project.Status),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	log.Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("user_id", project.UserID.String()))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
func (s *PostgresProjectStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`, id, userID)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, MapError(err)
	}

	return project, nil
}

// Update implements store.ProjectStore.Update
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	return s.exec(ctx, project.ID, `
		UPDATE projects
		SET name = $1, goal = $2, deadline = $3::date, status = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`,
		project.Name,
		project.Goal,
		project.Deadline,
		string(project.Status),
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)
}

// UpdateStatus implements store.ProjectStore.UpdateStatus
func (s *PostgresProjectStore) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.ProjectStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidProjectStatus
	}

	return s.exec(ctx, id, `
		UPDATE projects SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, string(status), time.Now().UTC(), id, userID)
}

// Delete implements store.ProjectStore.Delete
func (s *PostgresProjectStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.exec(ctx, id, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
}

// ListOpen implements store.ProjectStore.ListOpen
func (s *PostgresProjectStore) ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	return s.list(ctx, `WHERE user_id = $1 AND status <> 'done'`, userID)
}

// ListAll implements store.ProjectStore.ListAll
func (s *PostgresProjectStore) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	return s.list(ctx, `WHERE user_id = $1`, userID)
}

func (s *PostgresProjectStore) exec(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("project statement failed",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProjectNotFound)
}

func (s *PostgresProjectStore) list(ctx context.Context, where string, args ...any) ([]*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects `+where+` ORDER BY deadline, created_at, id`, args...)
	if err != nil {
		log.Error("failed to query projects", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, MapError(err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return projects, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		project domain.Project
		status  string
	)

	if err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Goal,
		&project.Deadline,
		&status,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}

	project.Status = domain.ProjectStatus(status)
	return &project, nil
}
