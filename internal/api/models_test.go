package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTaskRequestFields(t *testing.T) {
	projectID := uuid.New()
	req := TaskRequest{
		Title:     "draft",
		Deadline:  "2024-06-03",
		Effort:    0.5,
		Condition: "reviewed",
		Status:    "in_progress",
		Type:      "quarter_hour",
		Priority:  "later",
		ProjectID: &projectID,
	}

	assert.Equal(t, domain.TaskFields{
		Title:     "draft",
		Deadline:  "2024-06-03",
		Effort:    domain.Effort(0.5),
		Condition: "reviewed",
		Status:    domain.TaskStatusInProgress,
		Type:      domain.TaskTypeQuarterHour,
		Priority:  domain.PriorityLater,
		ProjectID: &projectID,
	}, req.Fields())
}

func TestTaskToResponseLocalizesStatus(t *testing.T) {
	task := &domain.Task{ID: uuid.New(), Title: "t", Status: domain.TaskStatusNotStarted, Effort: 2}

	assert.Equal(t, "未着手", taskToResponse(task, language.Japanese).StatusLabel)
	assert.Equal(t, "Not started", taskToResponse(task, language.English).StatusLabel)
	assert.Equal(t, 2.0, taskToResponse(task, language.English).Effort)
}

func TestDaysToResponseKeepsEmptyTaskLists(t *testing.T) {
	days := daysToResponse([]agenda.DayGroup{{Date: "2024-06-03", Weekday: "月"}}, language.Japanese)

	assert.Len(t, days, 1)
	assert.NotNil(t, days[0].Tasks)
	assert.Empty(t, days[0].Tasks)
}

func TestProjectDetailToResponse(t *testing.T) {
	project := &domain.Project{ID: uuid.New(), Name: "launch", Deadline: "2024-07-01", Status: domain.ProjectStatusPlanning}
	detail := &service.ProjectDetail{Project: project, TotalEffort: 3.5}

	resp := projectDetailToResponse(detail, language.English)
	assert.Equal(t, project.ID, resp.ID)
	assert.Equal(t, "launch", resp.Name)
	assert.Equal(t, 3.5, resp.TotalEffort)
	assert.NotNil(t, resp.Days)
}

func TestCalendarToResponse(t *testing.T) {
	grid := agenda.MonthGrid(2024, time.June)
	resp := calendarToResponse(2024, time.June, grid, language.Japanese)

	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 6, resp.Month)
	assert.Len(t, resp.Days, 35)
}
