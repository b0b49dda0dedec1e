package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/i18n"
	"golang.org/x/text/language"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNotOwned indicates a referenced resource is not visible to the
	// requesting user, such as linking a task to another user's project.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates a login with an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrProjectHasOpenTasks is wrapped by OpenTasksError.
	ErrProjectHasOpenTasks = errors.New("project has incomplete tasks")
)

// openTasksListed is how many titles an OpenTasksError message lists.
const openTasksListed = 5

// ServiceError is the error type returned for unexpected failures inside a
// service operation.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a ServiceError for the task service.
func NewTaskServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "task", Operation: operation, Message: message, Err: err}
}

// NewProjectServiceError creates a ServiceError for the project service.
func NewProjectServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "project", Operation: operation, Message: message, Err: err}
}

// NewUserServiceError creates a ServiceError for the user service.
func NewUserServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "user", Operation: operation, Message: message, Err: err}
}

// OpenTasksError rejects completing a project that still has tasks which are
// not done.
type OpenTasksError struct {
	Tasks []*domain.Task
}

// Error implements the error interface.
func (e *OpenTasksError) Error() string {
	return fmt.Sprintf("%s: %d open", ErrProjectHasOpenTasks, len(e.Tasks))
}

// Unwrap returns ErrProjectHasOpenTasks.
func (e *OpenTasksError) Unwrap() error {
	return ErrProjectHasOpenTasks
}

// Count is the number of open tasks.
func (e *OpenTasksError) Count() int {
	return len(e.Tasks)
}

// Message is the localized explanation shown to the user. It lists the first
// five open tasks with their status and summarizes the rest.
func (e *OpenTasksError) Message(tag language.Tag) string {
	var b strings.Builder
	b.WriteString(i18n.Sprintf(tag, i18n.KeyOpenTasks, len(e.Tasks)))
	b.WriteString("\n\n")
	b.WriteString(i18n.Sprintf(tag, i18n.KeyOpenTasksHeader))

	for i, t := range e.Tasks {
		if i == openTasksListed {
			break
		}
		fmt.Fprintf(&b, "\n・%s (%s)", t.Title, i18n.TaskStatus(tag, string(t.Status)))
	}

	if rest := len(e.Tasks) - openTasksListed; rest > 0 {
		b.WriteString("\n")
		b.WriteString(i18n.Sprintf(tag, i18n.KeyOpenTasksMore, rest))
	}

	return b.String()
}
