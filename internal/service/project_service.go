package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/platform/logger"
	"github.com/phrazzld/taskal/internal/store"
	"golang.org/x/text/language"
)

// ProjectDetail is a project together with its tasks.
type ProjectDetail struct {
	Project     *domain.Project   `json:"project"`
	Days        []agenda.DayGroup `json:"days"`
	TotalEffort float64           `json:"total_effort"`
}

// ProjectService provides project-related operations.
type ProjectService interface {
	// CreateProject validates and stores a new project.
	CreateProject(ctx context.Context, userID uuid.UUID, f domain.ProjectFields) (*domain.Project, error)

	// GetProject returns a project with its tasks grouped by deadline date.
	GetProject(ctx context.Context, userID, projectID uuid.UUID, tag language.Tag) (*ProjectDetail, error)

	// ListProjects returns the user's projects. Done projects are included
	// only when all is true.
	ListProjects(ctx context.Context, userID uuid.UUID, all bool) ([]*domain.Project, error)

	// UpdateProject replaces the editable fields of a project.
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, f domain.ProjectFields) (*domain.Project, error)

	// ChangeProjectStatus moves a project to status. A project with tasks that
	// are not done cannot be completed.
	ChangeProjectStatus(ctx context.Context, userID, projectID uuid.UUID, status domain.ProjectStatus) (*domain.Project, error)

	// DeleteProject removes a project. Its tasks stay, unlinked.
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error
}

type projectServiceImpl struct {
	projectRepo ProjectRepository
	taskRepo    TaskRepository
	logger      *slog.Logger
}

// NewProjectService creates a new ProjectService.
// It returns an error if any of the required dependencies are nil.
func NewProjectService(
	projectRepo ProjectRepository,
	taskRepo TaskRepository,
	logger *slog.Logger,
) (ProjectService, error) {
	if projectRepo == nil {
		return nil, errors.New("projectRepo cannot be nil")
	}
	if taskRepo == nil {
		return nil, errors.New("taskRepo cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &projectServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger.With(slog.String("component", "project_service")),
	}, nil
}

// CreateProject implements ProjectService.CreateProject
func (s *projectServiceImpl) CreateProject(
	ctx context.Context,
	userID uuid.UUID,
	f domain.ProjectFields,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	project, err := domain.NewProject(userID, f)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, s.wrap(ctx, "create_project", "failed to create project", err)
	}

	log.Info("project created", slog.String("project_id", project.ID.String()))
	return project, nil
}

// GetProject implements ProjectService.GetProject
func (s *projectServiceImpl) GetProject(
	ctx context.Context,
	userID, projectID uuid.UUID,
	tag language.Tag,
) (*ProjectDetail, error) {
	project, err := s.projectRepo.GetByID(ctx, userID, projectID)
	if err != nil {
		return nil, s.wrap(ctx, "get_project", "failed to get project", err)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, userID, projectID, false)
	if err != nil {
		return nil, s.wrap(ctx, "get_project", "failed to list project tasks", err)
	}

	return &ProjectDetail{
		Project:     project,
		Days:        agenda.GroupByDate(tasks, tag),
		TotalEffort: agenda.TotalEffort(tasks),
	}, nil
}

// ListProjects implements ProjectService.ListProjects
func (s *projectServiceImpl) ListProjects(ctx context.Context, userID uuid.UUID, all bool) ([]*domain.Project, error) {
	var (
		projects []*domain.Project
		err      error
	)
	if all {
		projects, err = s.projectRepo.ListAll(ctx, userID)
	} else {
		projects, err = s.projectRepo.ListOpen(ctx, userID)
	}
	if err != nil {
		return nil, s.wrap(ctx, "list_projects", "failed to list projects", err)
	}
	return projects, nil
}

// UpdateProject implements ProjectService.UpdateProject
func (s *projectServiceImpl) UpdateProject(
	ctx context.Context,
	userID, projectID uuid.UUID,
	f domain.ProjectFields,
) (*domain.Project, error) {
	var project *domain.Project

	err := s.inTx(ctx, func(ctx context.Context, projects ProjectRepository, tasks TaskRepository) error {
		current, err := projects.GetByID(ctx, userID, projectID)
		if err != nil {
			return err
		}
		completing := current.Status != domain.ProjectStatusDone && f.Status == domain.ProjectStatusDone
		if err := current.Update(f); err != nil {
			return err
		}
		if completing {
			if err := s.guardCompletion(ctx, tasks, userID, projectID); err != nil {
				return err
			}
		}
		if err := projects.Update(ctx, current); err != nil {
			return err
		}
		project = current
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "update_project", "failed to update project", err)
	}

	return project, nil
}

// ChangeProjectStatus implements ProjectService.ChangeProjectStatus
func (s *projectServiceImpl) ChangeProjectStatus(
	ctx context.Context,
	userID, projectID uuid.UUID,
	status domain.ProjectStatus,
) (*domain.Project, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidProjectStatus
	}

	var project *domain.Project
	err := s.inTx(ctx, func(ctx context.Context, projects ProjectRepository, tasks TaskRepository) error {
		current, err := projects.GetByID(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if status == domain.ProjectStatusDone {
			if err := s.guardCompletion(ctx, tasks, userID, projectID); err != nil {
				return err
			}
		}
		if err := current.UpdateStatus(status); err != nil {
			return err
		}
		if err := projects.UpdateStatus(ctx, userID, projectID, status); err != nil {
			return err
		}
		project = current
		return nil
	})
	if err != nil {
		return nil, s.wrap(ctx, "change_project_status", "failed to change project status", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("project status changed",
		slog.String("project_id", projectID.String()),
		slog.String("status", string(status)))
	return project, nil
}

// DeleteProject implements ProjectService.DeleteProject
func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if err := s.projectRepo.Delete(ctx, userID, projectID); err != nil {
		return s.wrap(ctx, "delete_project", "failed to delete project", err)
	}
	return nil
}

// guardCompletion returns an OpenTasksError when the project still has
// tasks outside the trash that are not done.
func (s *projectServiceImpl) guardCompletion(
	ctx context.Context,
	tasks TaskRepository,
	userID, projectID uuid.UUID,
) error {
	if err := tasks.LockUser(ctx, userID); err != nil {
		return err
	}

	open, err := tasks.ListByProject(ctx, userID, projectID, true)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return &OpenTasksError{Tasks: agenda.SortTasks(open)}
	}
	return nil
}

func (s *projectServiceImpl) inTx(
	ctx context.Context,
	fn func(ctx context.Context, projects ProjectRepository, tasks TaskRepository) error,
) error {
	return store.RunInTransaction(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.projectRepo.WithTx(tx), s.taskRepo.WithTx(tx))
	})
}

func (s *projectServiceImpl) wrap(ctx context.Context, operation, message string, err error) error {
	if isExpected(err) {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Error(message,
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return NewProjectServiceError(operation, message, err)
}
