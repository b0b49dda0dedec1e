package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage form of deadlines.
const DateLayout = "2006-01-02"

// TaskStatus represents where a task is in its lifecycle.
// Any status may move to any other; done is not terminal.
type TaskStatus string

// Possible task status values
const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusPaused     TaskStatus = "paused"
	TaskStatusDone       TaskStatus = "done"
)

// TaskType classifies the kind of work a task represents.
type TaskType string

// Possible task type values
const (
	TaskTypeGeneral     TaskType = "general"
	TaskTypeRequestPrep TaskType = "request_prep"
	TaskTypeQuarterHour TaskType = "quarter_hour"
	TaskTypeEstimation  TaskType = "estimation"
)

// Priority tells whether a task should be worked on now or later.
type Priority string

// Possible priority values
const (
	PriorityNow   Priority = "now"
	PriorityLater Priority = "later"
)

// Effort is the estimated number of hours for a task.
type Effort float64

// Efforts lists the allowed effort values in ascending order.
var Efforts = []Effort{0.2, 0.5, 1, 2, 3, 5, 8}

// Valid reports whether e is one of Efforts.
func (e Effort) Valid() bool {
	for _, v := range Efforts {
		if e == v {
			return true
		}
	}
	return false
}

// Validation errors for Task. Each wraps ErrValidation.
var (
	ErrEmptyTaskID        = invalid("task ID cannot be empty")
	ErrEmptyTaskUserID    = invalid("task user ID cannot be empty")
	ErrEmptyTaskTitle     = invalid("task title cannot be empty")
	ErrEmptyTaskCondition = invalid("task completion condition cannot be empty")
	ErrInvalidDeadline    = invalid("deadline must be a date in YYYY-MM-DD form")
	ErrInvalidEffort      = invalid("effort must be one of 0.2, 0.5, 1, 2, 3, 5, 8")
	ErrInvalidTaskStatus  = invalid("invalid task status")
	ErrInvalidTaskType    = invalid("invalid task type")
	ErrInvalidPriority    = invalid("invalid task priority")
)

// Task is a unit of work owned by a user, due on a deadline date and
// optionally attached to a project.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Deadline  string     `json:"deadline"`
	Effort    Effort     `json:"effort"`
	Condition string     `json:"condition"`
	Status    TaskStatus `json:"status"`
	Type      TaskType   `json:"type"`
	Priority  Priority   `json:"priority"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TaskFields holds the user-editable fields of a task.
type TaskFields struct {
	Title     string
	Deadline  string
	Effort    Effort
	Condition string
	Status    TaskStatus
	Type      TaskType
	Priority  Priority
	ProjectID *uuid.UUID
}

// NewTask creates a new Task for userID from the given fields.
// It generates a new UUID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, f TaskFields) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	task.apply(f)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if !ValidDate(t.Deadline) {
		return ErrInvalidDeadline
	}

	if !t.Effort.Valid() {
		return ErrInvalidEffort
	}

	if strings.TrimSpace(t.Condition) == "" {
		return ErrEmptyTaskCondition
	}

	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	if !t.Type.Valid() {
		return ErrInvalidTaskType
	}

	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}

	return nil
}

// Update replaces the editable fields and bumps UpdatedAt.
// The task is left unchanged when the new fields are invalid.
func (t *Task) Update(f TaskFields) error {
	next := *t
	next.apply(f)
	if err := next.Validate(); err != nil {
		return err
	}

	*t = next
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus sets the task status and bumps UpdatedAt.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// InProgress reports whether the task counts against the in-progress cap.
func (t *Task) InProgress() bool {
	return t.Status == TaskStatusInProgress
}

func (t *Task) apply(f TaskFields) {
	t.Title = strings.TrimSpace(f.Title)
	t.Deadline = f.Deadline
	t.Effort = f.Effort
	t.Condition = strings.TrimSpace(f.Condition)
	t.Status = f.Status
	t.Type = f.Type
	t.Priority = f.Priority
	t.ProjectID = f.ProjectID
}

// Valid reports whether s is a known TaskStatus.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusPaused, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Valid reports whether tt is a known TaskType.
func (tt TaskType) Valid() bool {
	switch tt {
	case TaskTypeGeneral, TaskTypeRequestPrep, TaskTypeQuarterHour, TaskTypeEstimation:
		return true
	default:
		return false
	}
}

// Valid reports whether p is a known Priority.
func (p Priority) Valid() bool {
	return p == PriorityNow || p == PriorityLater
}

// ValidDate reports whether s is a calendar date in DateLayout form.
// Year 0000 is rejected: PostgreSQL dates have no year zero.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	d, err := time.Parse(DateLayout, s)
	return err == nil && d.Year() >= 1
}
