package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskal/internal/api/shared"
	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/platform/logger"
	"github.com/phrazzld/taskal/internal/service"
)

// ProjectHandler handles project-related HTTP requests.
type ProjectHandler struct {
	projectService service.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService service.ProjectService, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProjectHandler")
	}

	return &ProjectHandler{
		projectService: projectService,
		logger:         logger.With(slog.String("component", "project_handler")),
	}
}

// CreateProject handles POST /api/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req ProjectRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), userID, req.Fields())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, projectToResponse(project))
}

// ListProjects handles GET /api/projects. Done projects are listed only
// with all=true.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	all, err := getQueryBool(r, "all")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), userID, all)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectsToResponse(projects))
}

// GetProject handles GET /api/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	tag := shared.GetLocale(r.Context())
	detail, err := h.projectService.GetProject(r.Context(), userID, projectID, tag)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectDetailToResponse(detail, tag))
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ProjectRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), userID, projectID, req.Fields())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update project")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectToResponse(project))
}

// ChangeProjectStatus handles PATCH /api/projects/{id}/status.
func (h *ProjectHandler) ChangeProjectStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ProjectStatusRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	project, err := h.projectService.ChangeProjectStatus(r.Context(), userID, projectID,
		domain.ProjectStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change project status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectToResponse(project))
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, projectID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), userID, projectID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
