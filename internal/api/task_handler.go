package api

import (
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/careboard/careboard-api/internal/api/shared"
	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/service"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

// sanitize escapes HTML metacharacters field by field. Escaping is explicit
// per field rather than reflective so a new field never ships unescaped by
// accident without showing up in review.
func (r *CreateTaskRequest) sanitize() {
	r.Name = html.EscapeString(r.Name)
	r.Description = html.EscapeString(r.Description)
}

// AssignTaskRequest represents the request body for assigning a task
type AssignTaskRequest struct {
	UserID string `json:"user_id" validate:"required,min=1"`
}

func (r *AssignTaskRequest) sanitize() {
	r.UserID = html.EscapeString(r.UserID)
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	AssignedUserID string     `json:"assigned_user_id,omitempty"`
	ReportStatus   string     `json:"report_status"`
	Done           bool       `json:"done"`
	DoneAt         *time.Time `json:"done_at,omitempty"`
}

// UserResponse represents the response data for a task assignee
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// TaskDetailsResponse pairs a task with its assignee
type TaskDetailsResponse struct {
	Task TaskResponse `json:"task"`
	User UserResponse `json:"user"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	req.sanitize()

	task, err := h.taskService.CreateTask(r.Context(), req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.FindAllTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetTaskDetails handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTaskDetails(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	details, err := h.taskService.FindTaskWithDetails(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskDetailsResponse{
		Task: taskToResponse(details.Task),
		User: UserResponse{
			ID:       details.User.ID,
			Name:     details.User.Name,
			LastName: details.User.LastName,
		},
	})
}

// AssignTask handles POST /api/tasks/{id}/assign requests
func (h *TaskHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	var req AssignTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	req.sanitize()

	task, err := h.taskService.AssignTask(r.Context(), taskID, req.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CompleteTask handles POST /api/tasks/{id}/complete requests
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "id")

	task, err := h.taskService.CompleteTask(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		Name:           task.Name,
		Description:    task.Description,
		AssignedUserID: task.AssignedUserID,
		ReportStatus:   string(task.ReportStatus),
		Done:           task.Done,
		DoneAt:         task.DoneAt,
	}
}
