package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

// Possible project status values
const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusDone       ProjectStatus = "done"
)

// Validation errors for Project. Each wraps ErrValidation.
var (
	ErrEmptyProjectID       = invalid("project ID cannot be empty")
	ErrEmptyProjectUserID   = invalid("project user ID cannot be empty")
	ErrEmptyProjectName     = invalid("project name cannot be empty")
	ErrInvalidProjectStatus = invalid("invalid project status")
)

// Project groups related tasks under a goal and a deadline.
type Project struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Name      string        `json:"name"`
	Goal      string        `json:"goal"`
	Deadline  string        `json:"deadline"`
	Status    ProjectStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProjectFields holds the user-editable fields of a project.
type ProjectFields struct {
	Name     string
	Goal     string
	Deadline string
	Status   ProjectStatus
}

// NewProject creates a new Project owned by userID.
// An empty status defaults to planning.
func NewProject(userID uuid.UUID, f ProjectFields) (*Project, error) {
	if f.Status == "" {
		f.Status = ProjectStatusPlanning
	}

	now := time.Now().UTC()
	project := &Project{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	project.apply(f)

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProjectID
	}

	if p.UserID == uuid.Nil {
		return ErrEmptyProjectUserID
	}

	if p.Name == "" {
		return ErrEmptyProjectName
	}

	if !ValidDate(p.Deadline) {
		return ErrInvalidDeadline
	}

	if !p.Status.Valid() {
		return ErrInvalidProjectStatus
	}

	return nil
}

// Update replaces the editable fields and bumps UpdatedAt.
// The project is left unchanged when the new fields are invalid.
func (p *Project) Update(f ProjectFields) error {
	if f.Status == "" {
		f.Status = p.Status
	}

	next := *p
	next.apply(f)
	if err := next.Validate(); err != nil {
		return err
	}

	*p = next
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus sets the project status and bumps UpdatedAt.
func (p *Project) UpdateStatus(status ProjectStatus) error {
	if !status.Valid() {
		return ErrInvalidProjectStatus
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Project) apply(f ProjectFields) {
	p.Name = strings.TrimSpace(f.Name)
	p.Goal = strings.TrimSpace(f.Goal)
	p.Deadline = f.Deadline
	p.Status = f.Status
}

// Valid reports whether s is a known ProjectStatus.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusDone:
		return true
	default:
		return false
	}
}
