package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/platform/logger"
	"github.com/phrazzld/taskal/internal/store"
)

const taskColumns = `id, user_id, project_id, title, to_char(deadline, 'YYYY-MM-DD'), effort,
	completion_condition, status, task_type, priority, deleted, deleted_at, created_at, updated_at`

const taskOrder = ` ORDER BY deadline, created_at, id`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, project_id, title, deadline, effort, completion_condition,
			status, task_type, priority, deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, FALSE, NULL, $11, $12)
	`,
		task.ID,
		task.UserID,
		nullUUID(task.ProjectID),
		task.Title,
		task.Deadline,
		float64(task.Effort),
		task.Condition,
		string(task.Status),
		string(task.Type),
		string(task.Priority),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: unknown user or project", store.ErrInvalidEntity)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET project_id = $1, title = $2, deadline = $3::date, effort = $4,
			completion_condition = $5, status = $6, task_type = $7, priority = $8, updated_at = $9
		WHERE id = $10 AND user_id = $11 AND NOT deleted
	`,
		nullUUID(task.ProjectID),
		task.Title,
		task.Deadline,
		float64(task.Effort),
		task.Condition,
		string(task.Status),
		string(task.Type),
		string(task.Priority),
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown project", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TaskStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidTaskStatus
	}

	return s.exec(ctx, "update task status", id, `
		UPDATE tasks SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4 AND NOT deleted
	`, string(status), time.Now().UTC(), id, userID)
}

// SoftDelete implements store.TaskStore.SoftDelete
func (s *PostgresTaskStore) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	now := time.Now().UTC()
	return s.exec(ctx, "move task to trash", id, `
		UPDATE tasks SET deleted = TRUE, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND NOT deleted
	`, now, id, userID)
}

// Restore implements store.TaskStore.Restore
func (s *PostgresTaskStore) Restore(ctx context.Context, userID, id uuid.UUID) error {
	return s.exec(ctx, "restore task", id, `
		UPDATE tasks SET deleted = FALSE, deleted_at = NULL, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted
	`, time.Now().UTC(), id, userID)
}

// HardDelete implements store.TaskStore.HardDelete
func (s *PostgresTaskStore) HardDelete(ctx context.Context, userID, id uuid.UUID) error {
	return s.exec(ctx, "delete task", id,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
}

func (s *PostgresTaskStore) exec(ctx context.Context, op string, id uuid.UUID, query string, args ...any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to "+op,
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found", slog.String("op", op), slog.String("task_id", id.String()))
		return err
	}

	log.Debug("task "+op+" done", slog.String("task_id", id.String()))
	return nil
}

// ListActive implements store.TaskStore.ListActive
func (s *PostgresTaskStore) ListActive(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error) {
	if status == "" {
		return s.list(ctx, `WHERE user_id = $1 AND NOT deleted`, userID)
	}
	return s.list(ctx, `WHERE user_id = $1 AND NOT deleted AND status = $2`, userID, string(status))
}

// ListOpen implements store.TaskStore.ListOpen
func (s *PostgresTaskStore) ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.list(ctx, `WHERE user_id = $1 AND NOT deleted AND status <> 'done'`, userID)
}

// ListCompletedBetween implements store.TaskStore.ListCompletedBetween
func (s *PostgresTaskStore) ListCompletedBetween(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Task, error) {
	return s.list(ctx, `WHERE user_id = $1 AND NOT deleted AND status = 'done'
		AND deadline BETWEEN $2::date AND $3::date`, userID, from, to)
}

// ListDeleted implements store.TaskStore.ListDeleted
func (s *PostgresTaskStore) ListDeleted(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND deleted ORDER BY deleted_at DESC, id`, userID)
}

// ListByProject implements store.TaskStore.ListByProject
func (s *PostgresTaskStore) ListByProject(ctx context.Context, userID, projectID uuid.UUID, onlyOpen bool) ([]*domain.Task, error) {
	if onlyOpen {
		return s.list(ctx, `WHERE user_id = $1 AND project_id = $2 AND NOT deleted AND status <> 'done'`,
			userID, projectID)
	}
	return s.list(ctx, `WHERE user_id = $1 AND project_id = $2 AND NOT deleted`, userID, projectID)
}

// ListBetween implements store.TaskStore.ListBetween
func (s *PostgresTaskStore) ListBetween(ctx context.Context, userID uuid.UUID, from, to string, includeDone bool) ([]*domain.Task, error) {
	where := `WHERE user_id = $1 AND NOT deleted AND deadline BETWEEN $2::date AND $3::date`
	if !includeDone {
		where += ` AND status <> 'done'`
	}
	return s.list(ctx, where, userID, from, to)
}

// ListInProgress implements store.TaskStore.ListInProgress
func (s *PostgresTaskStore) ListInProgress(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.list(ctx, `WHERE user_id = $1 AND NOT deleted AND status = 'in_progress'`, userID)
}

// LockUser implements store.TaskStore.LockUser
func (s *PostgresTaskStore) LockUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrUserNotFound
		}
		log.Error("failed to lock user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	return nil
}

// PurgeDeletedBefore implements store.TaskStore.PurgeDeletedBefore
func (s *PostgresTaskStore) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE deleted AND deleted_at < $1`, cutoff)
	if err != nil {
		log.Error("failed to purge trash", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return n, nil
}

func (s *PostgresTaskStore) list(ctx context.Context, where string, args ...any) ([]*domain.Task, error) {
	return s.query(ctx, `SELECT `+taskColumns+` FROM tasks `+where+taskOrder, args...)
}

func (s *PostgresTaskStore) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task      domain.Task
		projectID uuid.NullUUID
		deletedAt sql.NullTime
		effort    float64
		status    string
		taskType  string
		priority  string
	)

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&projectID,
		&task.Title,
		&task.Deadline,
		&effort,
		&task.Condition,
		&status,
		&taskType,
		&priority,
		&task.Deleted,
		&deletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Effort = domain.Effort(effort)
	task.Status = domain.TaskStatus(status)
	task.Type = domain.TaskType(taskType)
	task.Priority = domain.Priority(priority)
	if projectID.Valid {
		id := projectID.UUID
		task.ProjectID = &id
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		task.DeletedAt = &t
	}

	return &task, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
