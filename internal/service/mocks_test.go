package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/phrazzld/taskal/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository mocks the TaskRepository interface. WithTx returns the
// same mock so expectations hold inside transactions.
type MockTaskRepository struct {
	mock.Mock
	db *sql.DB
}

func tasksOrNil(args mock.Arguments) []*domain.Task {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*domain.Task)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TaskStatus) error {
	return m.Called(ctx, userID, id, status).Error(0)
}

func (m *MockTaskRepository) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskRepository) Restore(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskRepository) HardDelete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTaskRepository) ListActive(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, status)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) ListCompletedBetween(ctx context.Context, userID uuid.UUID, from, to string) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, from, to)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) ListDeleted(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, userID, projectID uuid.UUID, onlyOpen bool) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, projectID, onlyOpen)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) ListBetween(ctx context.Context, userID uuid.UUID, from, to string, includeDone bool) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, from, to, includeDone)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) ListInProgress(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	return tasksOrNil(args), args.Error(1)
}

func (m *MockTaskRepository) LockUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockTaskRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) WithTx(*sql.Tx) service.TaskRepository {
	return m
}

func (m *MockTaskRepository) DB() *sql.DB {
	return m.db
}

// MockProjectRepository mocks the ProjectRepository interface.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.ProjectStatus) error {
	return m.Called(ctx, userID, id, status).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProjectRepository) ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) WithTx(*sql.Tx) service.ProjectRepository {
	return m
}

// MockUserStore mocks store.UserStore.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	return m
}

// MockPasswordVerifier mocks auth.PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}
