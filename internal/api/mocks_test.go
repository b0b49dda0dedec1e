package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/phrazzld/taskal/internal/service/auth"
	"github.com/stretchr/testify/mock"
	"golang.org/x/text/language"
)

type mockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*mockTaskService)(nil)

func taskOrNil(args mock.Arguments) *domain.Task {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Task)
}

func (m *mockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, f domain.TaskFields) (*domain.Task, error) {
	args := m.Called(ctx, userID, f)
	return taskOrNil(args), args.Error(1)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, f domain.TaskFields) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID, f)
	return taskOrNil(args), args.Error(1)
}

func (m *mockTaskService) ChangeStatus(ctx context.Context, userID, taskID uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID, status)
	return taskOrNil(args), args.Error(1)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *mockTaskService) RestoreTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *mockTaskService) PurgeTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, taskID).Error(0)
}

func (m *mockTaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return taskOrNil(args), args.Error(1)
}

func (m *mockTaskService) ListTasks(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskService) Agenda(ctx context.Context, userID uuid.UUID, status domain.TaskStatus, tag language.Tag) ([]agenda.DayGroup, error) {
	args := m.Called(ctx, userID, status, tag)
	return args.Get(0).([]agenda.DayGroup), args.Error(1)
}

func (m *mockTaskService) Completed(ctx context.Context, userID uuid.UUID, from, to string, tag language.Tag) ([]agenda.DayGroup, error) {
	args := m.Called(ctx, userID, from, to, tag)
	return args.Get(0).([]agenda.DayGroup), args.Error(1)
}

func (m *mockTaskService) Trash(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskService) Calendar(ctx context.Context, userID uuid.UUID, year int, month time.Month, includeCompleted bool) ([]agenda.CalendarDay, error) {
	args := m.Called(ctx, userID, year, month, includeCompleted)
	return args.Get(0).([]agenda.CalendarDay), args.Error(1)
}

type mockProjectService struct {
	mock.Mock
}

var _ service.ProjectService = (*mockProjectService)(nil)

func projectOrNil(args mock.Arguments) *domain.Project {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Project)
}

func (m *mockProjectService) CreateProject(ctx context.Context, userID uuid.UUID, f domain.ProjectFields) (*domain.Project, error) {
	args := m.Called(ctx, userID, f)
	return projectOrNil(args), args.Error(1)
}

func (m *mockProjectService) GetProject(ctx context.Context, userID, projectID uuid.UUID, tag language.Tag) (*service.ProjectDetail, error) {
	args := m.Called(ctx, userID, projectID, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectDetail), args.Error(1)
}

func (m *mockProjectService) ListProjects(ctx context.Context, userID uuid.UUID, all bool) ([]*domain.Project, error) {
	args := m.Called(ctx, userID, all)
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, f domain.ProjectFields) (*domain.Project, error) {
	args := m.Called(ctx, userID, projectID, f)
	return projectOrNil(args), args.Error(1)
}

func (m *mockProjectService) ChangeProjectStatus(ctx context.Context, userID, projectID uuid.UUID, status domain.ProjectStatus) (*domain.Project, error) {
	args := m.Called(ctx, userID, projectID, status)
	return projectOrNil(args), args.Error(1)
}

func (m *mockProjectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	return m.Called(ctx, userID, projectID).Error(0)
}

type mockUserService struct {
	mock.Mock
}

var _ service.UserService = (*mockUserService)(nil)

func userOrNil(args mock.Arguments) *domain.User {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.User)
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	return userOrNil(args), args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	return userOrNil(args), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return userOrNil(args), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockJWTService struct {
	mock.Mock
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}
