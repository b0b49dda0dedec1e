package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/i18n"
	"github.com/phrazzld/taskal/internal/service"
	"golang.org/x/text/language"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	// ExpiresAt is the RFC 3339 expiry of the access token.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskRequest is the body of task create and update requests.
type TaskRequest struct {
	Title     string     `json:"title"      validate:"required,max=200"`
	Deadline  string     `json:"deadline"   validate:"required,datetime=2006-01-02"`
	Effort    float64    `json:"effort"     validate:"effort"`
	Condition string     `json:"condition"  validate:"required,max=2000"`
	Status    string     `json:"status"     validate:"required,oneof=not_started in_progress paused done"`
	Type      string     `json:"type"       validate:"required,oneof=general request_prep quarter_hour estimation"`
	Priority  string     `json:"priority"   validate:"required,oneof=now later"`
	ProjectID *uuid.UUID `json:"project_id"`
}

// Fields converts the request into domain fields.
func (req TaskRequest) Fields() domain.TaskFields {
	return domain.TaskFields{
		Title:     req.Title,
		Deadline:  req.Deadline,
		Effort:    domain.Effort(req.Effort),
		Condition: req.Condition,
		Status:    domain.TaskStatus(req.Status),
		Type:      domain.TaskType(req.Type),
		Priority:  domain.Priority(req.Priority),
		ProjectID: req.ProjectID,
	}
}

// TaskStatusRequest is the body of PATCH /api/tasks/{id}/status.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=not_started in_progress paused done"`
}

// ProjectRequest is the body of project create and update requests.
// An empty status keeps the current one, or planning for a new project.
type ProjectRequest struct {
	Name     string `json:"name"     validate:"required,max=200"`
	Goal     string `json:"goal"     validate:"max=2000"`
	Deadline string `json:"deadline" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status"   validate:"omitempty,oneof=planning in_progress done"`
}

// Fields converts the request into domain fields.
func (req ProjectRequest) Fields() domain.ProjectFields {
	return domain.ProjectFields{
		Name:     req.Name,
		Goal:     req.Goal,
		Deadline: req.Deadline,
		Status:   domain.ProjectStatus(req.Status),
	}
}

// ProjectStatusRequest is the body of PATCH /api/projects/{id}/status.
type ProjectStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planning in_progress done"`
}

// TaskResponse is the client view of a task. StatusLabel is localized.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Deadline    string     `json:"deadline"`
	Effort      float64    `json:"effort"`
	Condition   string     `json:"condition"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"status_label"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DayResponse is one date of an agenda or project view.
type DayResponse struct {
	Date        string         `json:"date"`
	Weekday     string         `json:"weekday"`
	Tasks       []TaskResponse `json:"tasks"`
	TotalEffort float64        `json:"total_effort"`
}

// CalendarDayResponse is one cell of the month grid.
type CalendarDayResponse struct {
	Date        string         `json:"date"`
	Day         int            `json:"day"`
	InMonth     bool           `json:"in_month"`
	Tasks       []TaskResponse `json:"tasks"`
	TotalEffort float64        `json:"total_effort"`
	DoneEffort  float64        `json:"done_effort"`
	OpenEffort  float64        `json:"open_effort"`
}

// CalendarResponse is the month view.
type CalendarResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Days  []CalendarDayResponse `json:"days"`
}

// CompletedResponse is the completed-tasks view for a date window.
type CompletedResponse struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Days []DayResponse `json:"days"`
}

// ProjectResponse is the client view of a project.
type ProjectResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	Deadline  string    `json:"deadline"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectDetailResponse is a project with its tasks grouped by date.
type ProjectDetailResponse struct {
	ProjectResponse
	Days        []DayResponse `json:"days"`
	TotalEffort float64       `json:"total_effort"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func taskToResponse(task *domain.Task, tag language.Tag) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Deadline:    task.Deadline,
		Effort:      float64(task.Effort),
		Condition:   task.Condition,
		Status:      string(task.Status),
		StatusLabel: i18n.TaskStatus(tag, string(task.Status)),
		Type:        string(task.Type),
		Priority:    string(task.Priority),
		ProjectID:   task.ProjectID,
		DeletedAt:   task.DeletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task, tag language.Tag) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task, tag))
	}
	return out
}

func daysToResponse(days []agenda.DayGroup, tag language.Tag) []DayResponse {
	out := make([]DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DayResponse{
			Date:        d.Date,
			Weekday:     d.Weekday,
			Tasks:       tasksToResponse(d.Tasks, tag),
			TotalEffort: d.TotalEffort,
		})
	}
	return out
}

func calendarToResponse(year int, month time.Month, days []agenda.CalendarDay, tag language.Tag) CalendarResponse {
	out := make([]CalendarDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, CalendarDayResponse{
			Date:        d.Date,
			Day:         d.Day,
			InMonth:     d.InMonth,
			Tasks:       tasksToResponse(d.Tasks, tag),
			TotalEffort: d.TotalEffort,
			DoneEffort:  d.DoneEffort,
			OpenEffort:  d.OpenEffort,
		})
	}
	return CalendarResponse{Year: year, Month: int(month), Days: out}
}

func projectToResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        project.ID,
		Name:      project.Name,
		Goal:      project.Goal,
		Deadline:  project.Deadline,
		Status:    string(project.Status),
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

func projectsToResponse(projects []*domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectToResponse(p))
	}
	return out
}

func projectDetailToResponse(detail *service.ProjectDetail, tag language.Tag) ProjectDetailResponse {
	return ProjectDetailResponse{
		ProjectResponse: projectToResponse(detail.Project),
		Days:            daysToResponse(detail.Days, tag),
		TotalEffort:     detail.TotalEffort,
	}
}
