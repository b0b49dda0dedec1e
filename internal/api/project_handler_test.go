package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/service"
	"github.com/phrazzld/taskal/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/text/language"
)

func newProjectHandler(t *testing.T) (*ProjectHandler, *mockProjectService) {
	t.Helper()
	svc := new(mockProjectService)
	t.Cleanup(func() { svc.AssertExpectations(t) })
	return NewProjectHandler(svc, discardLogger()), svc
}

func sampleProject(userID uuid.UUID) *domain.Project {
	return &domain.Project{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     "launch",
		Goal:     "ship v1",
		Deadline: "2024-07-01",
		Status:   domain.ProjectStatusPlanning,
	}
}

func TestCreateProject(t *testing.T) {
	userID := uuid.New()

	t.Run("created with default status", func(t *testing.T) {
		h, svc := newProjectHandler(t)
		project := sampleProject(userID)
		svc.On("CreateProject", mock.Anything, userID, domain.ProjectFields{
			Name: "launch", Goal: "ship v1", Deadline: "2024-07-01",
		}).Return(project, nil)

		body := map[string]string{"name": "launch", "goal": "ship v1", "deadline": "2024-07-01"}
		rec := httptest.NewRecorder()
		h.CreateProject(rec, newRequest(t, http.MethodPost, "/api/projects", body, userID, nil, language.English))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp ProjectResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "planning", resp.Status)
	})

	t.Run("missing name", func(t *testing.T) {
		h, _ := newProjectHandler(t)

		body := map[string]string{"deadline": "2024-07-01"}
		rec := httptest.NewRecorder()
		h.CreateProject(rec, newRequest(t, http.MethodPost, "/api/projects", body, userID, nil, language.English))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid name: required field", decodeError(t, rec).Error)
	})

	t.Run("unknown status", func(t *testing.T) {
		h, _ := newProjectHandler(t)

		body := map[string]string{"name": "x", "deadline": "2024-07-01", "status": "archived"}
		rec := httptest.NewRecorder()
		h.CreateProject(rec, newRequest(t, http.MethodPost, "/api/projects", body, userID, nil, language.English))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListProjects(t *testing.T) {
	userID := uuid.New()
	h, svc := newProjectHandler(t)
	svc.On("ListProjects", mock.Anything, userID, true).Return([]*domain.Project{sampleProject(userID)}, nil)
	svc.On("ListProjects", mock.Anything, userID, false).Return([]*domain.Project{}, nil)

	rec := httptest.NewRecorder()
	h.ListProjects(rec, newRequest(t, http.MethodGet, "/api/projects?all=true", nil, userID, nil, language.English))
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []ProjectResponse
	decodeBody(t, rec, &resp)
	assert.Len(t, resp, 1)

	rec = httptest.NewRecorder()
	h.ListProjects(rec, newRequest(t, http.MethodGet, "/api/projects", nil, userID, nil, language.English))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetProject(t *testing.T) {
	userID := uuid.New()
	project := sampleProject(userID)

	t.Run("detail", func(t *testing.T) {
		h, svc := newProjectHandler(t)
		task := &domain.Task{ID: uuid.New(), Title: "draft", Status: domain.TaskStatusPaused, Effort: 2}
		svc.On("GetProject", mock.Anything, userID, project.ID, language.Japanese).Return(&service.ProjectDetail{
			Project:     project,
			Days:        []agenda.DayGroup{{Date: "2024-06-03", Weekday: "月", Tasks: []*domain.Task{task}, TotalEffort: 2}},
			TotalEffort: 2,
		}, nil)

		rec := httptest.NewRecorder()
		h.GetProject(rec, newRequest(t, http.MethodGet, "/", nil, userID,
			map[string]string{"id": project.ID.String()}, language.Japanese))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp ProjectDetailResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "launch", resp.Name)
		assert.Equal(t, 2.0, resp.TotalEffort)
		assert.Equal(t, "休止中", resp.Days[0].Tasks[0].StatusLabel)
	})

	t.Run("other user's project", func(t *testing.T) {
		h, svc := newProjectHandler(t)
		svc.On("GetProject", mock.Anything, userID, project.ID, language.English).Return(nil, store.ErrProjectNotFound)

		rec := httptest.NewRecorder()
		h.GetProject(rec, newRequest(t, http.MethodGet, "/", nil, userID,
			map[string]string{"id": project.ID.String()}, language.English))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestChangeProjectStatusWithOpenTasks(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	h, svc := newProjectHandler(t)

	open := make([]*domain.Task, 6)
	for i := range open {
		open[i] = &domain.Task{ID: uuid.New(), Title: fmt.Sprintf("task %d", i), Status: domain.TaskStatusNotStarted}
	}
	svc.On("ChangeProjectStatus", mock.Anything, userID, projectID, domain.ProjectStatusDone).
		Return(nil, &service.OpenTasksError{Tasks: open})

	rec := httptest.NewRecorder()
	h.ChangeProjectStatus(rec, newRequest(t, http.MethodPatch, "/", map[string]string{"status": "done"}, userID,
		map[string]string{"id": projectID.String()}, language.Japanese))

	assert.Equal(t, http.StatusConflict, rec.Code)
	msg := decodeError(t, rec).Error
	assert.True(t, strings.HasPrefix(msg, "このプロジェクトには未完了のタスクが6件あります。"))
	assert.Contains(t, msg, "・task 4 (未着手)")
	assert.NotContains(t, msg, "task 5")
	assert.True(t, strings.HasSuffix(msg, "...他1件"))
}

func TestUpdateAndDeleteProject(t *testing.T) {
	userID := uuid.New()
	project := sampleProject(userID)
	params := map[string]string{"id": project.ID.String()}
	h, svc := newProjectHandler(t)

	svc.On("UpdateProject", mock.Anything, userID, project.ID, domain.ProjectFields{
		Name: "launch", Deadline: "2024-07-01", Status: domain.ProjectStatusInProgress,
	}).Return(project, nil)
	svc.On("DeleteProject", mock.Anything, userID, project.ID).Return(nil)

	body := map[string]string{"name": "launch", "deadline": "2024-07-01", "status": "in_progress"}
	rec := httptest.NewRecorder()
	h.UpdateProject(rec, newRequest(t, http.MethodPut, "/", body, userID, params, language.English))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.DeleteProject(rec, newRequest(t, http.MethodDelete, "/", nil, userID, params, language.English))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
