package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/taskal/internal/api/shared"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/domain/agenda"
	"github.com/phrazzld/taskal/internal/platform/logger"
	"github.com/phrazzld/taskal/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
	timeFunc    func() time.Time
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
		timeFunc:    time.Now,
	}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, req.Fields())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task, shared.GetLocale(r.Context())))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, shared.GetLocale(r.Context())))
}

// ListTasks handles GET /api/tasks?status=...
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	status, err := statusFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks, shared.GetLocale(r.Context())))
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, req.Fields())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, shared.GetLocale(r.Context())))
}

// ChangeStatus handles PATCH /api/tasks/{id}/status.
func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req TaskStatusRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	task, err := h.taskService.ChangeStatus(r.Context(), userID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change task status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task, shared.GetLocale(r.Context())))
}

// DeleteTask handles DELETE /api/tasks/{id}. The task moves to the trash.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreTask handles POST /api/tasks/{id}/restore.
func (h *TaskHandler) RestoreTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.RestoreTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to restore task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgeTask handles DELETE /api/tasks/{id}/purge.
func (h *TaskHandler) PurgeTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.PurgeTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to purge task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Trash handles GET /api/tasks/trash.
func (h *TaskHandler) Trash(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	tasks, err := h.taskService.Trash(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list trash")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks, shared.GetLocale(r.Context())))
}

// Agenda handles GET /api/tasks/agenda?status=...
func (h *TaskHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	status, err := statusFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tag := shared.GetLocale(r.Context())
	days, err := h.taskService.Agenda(r.Context(), userID, status, tag)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build agenda")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, daysToResponse(days, tag))
}

// Completed handles GET /api/tasks/completed. Either from and to select the
// window, or offset steps back from today in fixed-size windows.
func (h *TaskHandler) Completed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" && to == "" {
		offset := 0
		if raw := q.Get("offset"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				HandleAPIError(w, r, domain.NewValidationError("offset", "must be a number", domain.ErrInvalidFormat), "")
				return
			}
			offset = n
		}
		from, to = agenda.CompletedWindow(h.timeFunc(), offset)
	}

	tag := shared.GetLocale(r.Context())
	days, err := h.taskService.Completed(r.Context(), userID, from, to, tag)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list completed tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CompletedResponse{
		From: from,
		To:   to,
		Days: daysToResponse(days, tag),
	})
}

// Calendar handles GET /api/calendar/{year}/{month}.
func (h *TaskHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	year, err := getPathInt(r, "year")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	month, err := getPathInt(r, "month")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	includeCompleted, err := getQueryBool(r, "include_completed")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	days, err := h.taskService.Calendar(r.Context(), userID, year, time.Month(month), includeCompleted)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build calendar")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		calendarToResponse(year, time.Month(month), days, shared.GetLocale(r.Context())))
}

// statusFilter reads the optional status query parameter.
func statusFilter(r *http.Request) (domain.TaskStatus, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return "", nil
	}
	status := domain.TaskStatus(raw)
	if !status.Valid() {
		return "", domain.NewValidationError("status", "is not a known task status", domain.ErrValidation)
	}
	return status, nil
}
