package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/domain/inprogress"
	"github.com/phrazzld/taskal/internal/platform/logger"
	"github.com/phrazzld/taskal/internal/store"
	"golang.org/x/text/language"
)

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask validates and stores a new task for userID.
	CreateTask(ctx context.Context, userID uuid.UUID, f domain.TaskFields) (*domain.Task, error)

	// UpdateTask replaces the editable fields of a task.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, f domain.TaskFields) (*domain.Task, error)

	// ChangeStatus moves a task to status. Any status may follow any other;
	// only the in-progress cap can reject the move.
	ChangeStatus(ctx context.Context, userID, taskID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask moves a task to the trash.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// RestoreTask brings a task back from the trash.
	RestoreTask(ctx context.Context, userID, taskID uuid.UUID) error

	// PurgeTask permanently removes a task.
	PurgeTask(ctx context.Context, userID, taskID uuid.UUID) error

	// GetTask returns a task that is not in the trash.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks returns the user's tasks outside the trash, optionally
	// filtered by status, ordered by deadline and then by priority and type.
	ListTasks(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)

	// Agenda groups tasks by deadline date. An empty status shows every task
	// that is not done.
	Agenda(ctx context.Context, userID uuid.UUID, status domain.TaskStatus, tag language.Tag) ([]agenda.DayGroup, error)

	// Completed groups done tasks whose deadline falls in [from, to].
	Completed(ctx context.Context, userID uuid.UUID, from, to string, tag language.Tag) ([]agenda.DayGroup, error)

	// Trash lists soft-deleted tasks, most recently deleted first.
	Trash(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Calendar returns the Monday-first month grid with tasks attached.
	Calendar(ctx context.Context, userID uuid.UUID, year int, month time.Month, includeCompleted bool) ([]agenda.CalendarDay, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo    TaskRepository
	projectRepo ProjectRepository
	limiter     inprogress.Limiter
	logger      *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskRepo TaskRepository,
	projectRepo ProjectRepository,
	limiter inprogress.Limiter,
	logger *slog.Logger,
) (TaskService, error) {
	if taskRepo == nil {
		return nil, errors.New("taskRepo cannot be nil")
	}
	if projectRepo == nil {
		return nil, errors.New("projectRepo cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		limiter:     limiter,
		logger:      logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, f domain.TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, f)
	if err != nil {
		log.Debug("task validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, tasks TaskRepository, projects ProjectRepository) error {
		if err := s.checkProject(ctx, projects, userID, task.ProjectID); err != nil {
			return err
		}
		if task.InProgress() {
			if err := s.guardInProgress(ctx, tasks, userID, uuid.Nil); err != nil {
				return err
			}
		}
		return tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, s.wrap(ctx, "create_task", "failed to create task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	f domain.TaskFields,
) (*domain.Task, error) {
	var task *domain.Task

	err := s.inTx(ctx, func(ctx context.Context, tasks TaskRepository, projects ProjectRepository) error {
		current, err := s.activeTask(ctx, tasks, userID, taskID)
		if err != nil {
			return err
		}
		if err := current.Update(f); err != nil {
			return err
		}
		if err := s.checkProject(ctx, projects, userID, current.ProjectID); err != nil {
			return err
		}
		if current.InProgress() {
			if err := s.guardInProgress(ctx, tasks, userID, current.ID); err != nil {
				return err
			}
		}
		if err := tasks.Update(ctx, current); err != nil {
			return err
		}
		task = current
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "update_task", "failed to update task", err)
	}

	return task, nil
}

// ChangeStatus implements TaskService.ChangeStatus
func (s *taskServiceImpl) ChangeStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	var task *domain.Task
	err := s.inTx(ctx, func(ctx context.Context, tasks TaskRepository, _ ProjectRepository) error {
		current, err := s.activeTask(ctx, tasks, userID, taskID)
		if err != nil {
			return err
		}
		if status == domain.TaskStatusInProgress {
			if err := s.guardInProgress(ctx, tasks, userID, current.ID); err != nil {
				return err
			}
		}
		if err := current.UpdateStatus(status); err != nil {
			return err
		}
		if err := tasks.UpdateStatus(ctx, userID, taskID, status); err != nil {
			return err
		}
		task = current
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "change_status", "failed to change task status", err)
	}

	log.Debug("task status changed",
		slog.String("task_id", taskID.String()),
		slog.String("status", string(status)))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskRepo.SoftDelete(ctx, userID, taskID); err != nil {
		return s.wrap(ctx, "delete_task", "failed to move task to trash", err)
	}
	return nil
}

// RestoreTask implements TaskService.RestoreTask
// A task restored in progress counts against the cap like any other.
func (s *taskServiceImpl) RestoreTask(ctx context.Context, userID, taskID uuid.UUID) error {
	err := s.inTx(ctx, func(ctx context.Context, tasks TaskRepository, _ ProjectRepository) error {
		task, err := tasks.GetByID(ctx, userID, taskID)
		if err != nil {
			return err
		}
		if !task.Deleted {
			return store.ErrTaskNotFound
		}
		if task.InProgress() {
			if err := s.guardInProgress(ctx, tasks, userID, task.ID); err != nil {
				return err
			}
		}
		return tasks.Restore(ctx, userID, taskID)
	})
	if err != nil {
		return s.wrap(ctx, "restore_task", "failed to restore task", err)
	}
	return nil
}

// PurgeTask implements TaskService.PurgeTask
func (s *taskServiceImpl) PurgeTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskRepo.HardDelete(ctx, userID, taskID); err != nil {
		return s.wrap(ctx, "purge_task", "failed to purge task", err)
	}
	return nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.activeTask(ctx, s.taskRepo, userID, taskID)
	if err != nil {
		return nil, s.wrap(ctx, "get_task", "failed to get task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	tasks, err := s.taskRepo.ListActive(ctx, userID, status)
	if err != nil {
		return nil, s.wrap(ctx, "list_tasks", "failed to list tasks", err)
	}
	return agenda.SortByDeadline(tasks), nil
}

// Agenda implements TaskService.Agenda
func (s *taskServiceImpl) Agenda(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
	tag language.Tag,
) ([]agenda.DayGroup, error) {
	var (
		tasks []*domain.Task
		err   error
	)

	switch {
	case status == "":
		tasks, err = s.taskRepo.ListOpen(ctx, userID)
	case status.Valid():
		tasks, err = s.taskRepo.ListActive(ctx, userID, status)
	default:
		return nil, domain.ErrInvalidTaskStatus
	}
	if err != nil {
		return nil, s.wrap(ctx, "agenda", "failed to list tasks", err)
	}

	return agenda.GroupByDate(tasks, tag), nil
}

// Completed implements TaskService.Completed
func (s *taskServiceImpl) Completed(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
	tag language.Tag,
) ([]agenda.DayGroup, error) {
	if !domain.ValidDate(from) || !domain.ValidDate(to) {
		return nil, domain.ErrInvalidDeadline
	}

	tasks, err := s.taskRepo.ListCompletedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, s.wrap(ctx, "completed", "failed to list completed tasks", err)
	}

	return agenda.GroupByDate(tasks, tag), nil
}

// Trash implements TaskService.Trash
func (s *taskServiceImpl) Trash(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListDeleted(ctx, userID)
	if err != nil {
		return nil, s.wrap(ctx, "trash", "failed to list deleted tasks", err)
	}
	return tasks, nil
}

const (
	minCalendarYear = 1
	maxCalendarYear = 9999
)

// Calendar implements TaskService.Calendar
// The grid is padded with days of the neighbouring months, and tasks due on
// those days are shown too.
func (s *taskServiceImpl) Calendar(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	month time.Month,
	includeCompleted bool,
) ([]agenda.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, domain.NewValidationError("month", "must be between 1 and 12", domain.ErrValidation)
	}

	if year < minCalendarYear || year > maxCalendarYear {
		return nil, domain.NewValidationError("year", "must be between 1 and 9999", domain.ErrValidation)
	}

	grid := agenda.MonthGrid(year, month)
	from, to := grid[0].Date, grid[len(grid)-1].Date
	// December 9999 pads into year 10000.
	if !domain.ValidDate(from) || !domain.ValidDate(to) {
		return nil, domain.NewValidationError("year", "must be between 1 and 9999", domain.ErrValidation)
	}

	tasks, err := s.taskRepo.ListBetween(ctx, userID, from, to, includeCompleted)
	if err != nil {
		return nil, s.wrap(ctx, "calendar", "failed to list tasks", err)
	}

	return agenda.Calendar(year, month, tasks), nil
}

// guardInProgress rejects a transition into in_progress when the user already
// has the maximum number of tasks in progress. exclude is the ID of the task
// being changed, uuid.Nil for a task that does not exist yet. It must run
// inside a transaction: the owner row lock serializes concurrent transitions.
func (s *taskServiceImpl) guardInProgress(
	ctx context.Context,
	tasks TaskRepository,
	userID, exclude uuid.UUID,
) error {
	if err := tasks.LockUser(ctx, userID); err != nil {
		return err
	}

	active, err := tasks.ListInProgress(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.limiter.Check(active, exclude); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("in-progress limit reached",
			slog.String("user_id", userID.String()),
			slog.Int("limit", s.limiter.Max()))
		return err
	}
	return nil
}

// checkProject verifies a task's project link points at one of the user's
// projects.
func (s *taskServiceImpl) checkProject(
	ctx context.Context,
	projects ProjectRepository,
	userID uuid.UUID,
	projectID *uuid.UUID,
) error {
	if projectID == nil {
		return nil
	}

	_, err := projects.GetByID(ctx, userID, *projectID)
	if errors.Is(err, store.ErrProjectNotFound) {
		return ErrNotOwned
	}
	return err
}

// activeTask loads a task and hides it when it is in the trash.
func (s *taskServiceImpl) activeTask(
	ctx context.Context,
	tasks TaskRepository,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Deleted {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskServiceImpl) inTx(
	ctx context.Context,
	fn func(ctx context.Context, tasks TaskRepository, projects ProjectRepository) error,
) error {
	return store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.taskRepo.WithTx(tx), s.projectRepo.WithTx(tx))
	})
}

// wrap passes expected errors through unchanged so callers can match them,
// and wraps everything else in a ServiceError.
func (s *taskServiceImpl) wrap(ctx context.Context, operation, message string, err error) error {
	if isExpected(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error(message,
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return NewTaskServiceError(operation, message, err)
}

// isExpected reports whether err is a condition the API reports to clients
// rather than an internal failure.
func isExpected(err error) bool {
	return errors.Is(err, inprogress.ErrLimitReached) ||
		errors.Is(err, ErrProjectHasOpenTasks) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrDuplicate) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, ErrNotOwned) ||
		errors.Is(err, ErrInvalidCredentials)
}
