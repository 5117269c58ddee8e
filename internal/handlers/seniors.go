package handlers

import (
	"net/http"
	"strings"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/utils"
)

// SeniorHandler serves support request intake and administration.
type SeniorHandler struct {
	intake   *services.IntakeService
	requests *services.SupportRequestService
	tasks    *services.AssignmentService
}

// NewSeniorHandler creates a new SeniorHandler instance
func NewSeniorHandler(intake *services.IntakeService, requests *services.SupportRequestService, tasks *services.AssignmentService) *SeniorHandler {
	return &SeniorHandler{intake: intake, requests: requests, tasks: tasks}
}

// SubmitSupportRequest registers a senior and opens their first request
// @Summary Submit a support request
// @Description Registers the senior and creates a PENDING support request atomically
// @Tags seniors
// @Accept json
// @Produce json
// @Param request body dto.SupportRequestIntake true "Senior and request details"
// @Success 201 {object} dto.SuccessResponse{data=dto.IntakeResult}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/seniors/support-requests [post]
func (h *SeniorHandler) SubmitSupportRequest(w http.ResponseWriter, r *http.Request) error {
	var req dto.SupportRequestIntake
	if err := bind(w, r, &req); err != nil {
		return err
	}

	result, err := h.intake.SubmitSupportRequest(r.Context(), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "Support request submitted successfully",
		Data:    result,
	})
	return nil
}

// ListSupportRequests lists support requests newest first
// @Summary List support requests
// @Tags seniors
// @Produce json
// @Param status query string false "Exact status" Enums(PENDING, ASSIGNED, IN_PROGRESS, COMPLETED, CANCELLED)
// @Param limit query int false "Page size (1-100)" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.SupportRequestListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/seniors/support-requests [get]
func (h *SeniorHandler) ListSupportRequests(w http.ResponseWriter, r *http.Request) error {
	page, err := h.requests.List(r.Context(), models.SupportRequestFilter{
		Status: models.RequestStatus(strings.TrimSpace(r.URL.Query().Get("status"))),
		Limit:  utils.QueryInt(r, "limit", services.DefaultPageSize),
		Offset: utils.QueryInt(r, "offset", 0),
	})
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SupportRequestListResponse{
		Success: true,
		Data:    page.Data,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	return nil
}

// GetSupportRequest returns one request with the senior's contact details
// @Summary Get a support request
// @Tags seniors
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} dto.SuccessResponse{data=models.SupportRequestDetail}
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/seniors/support-requests/{id} [get]
func (h *SeniorHandler) GetSupportRequest(w http.ResponseWriter, r *http.Request) error {
	detail, err := h.requests.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{Success: true, Data: detail})
	return nil
}

// UpdateStatus moves a request to a new status
// @Summary Update a support request status
// @Tags seniors
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param request body dto.StatusUpdateRequest true "New status"
// @Success 200 {object} dto.SuccessResponse{data=models.SupportRequest}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/seniors/support-requests/{id}/status [put]
// @Router /api/seniors/support-requests/{id}/status [patch]
func (h *SeniorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) error {
	var req dto.StatusUpdateRequest
	if err := bind(w, r, &req); err != nil {
		return err
	}

	updated, err := h.requests.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Status updated successfully",
		Data:    updated,
	})
	return nil
}

// ListTasks lists the tasks of a request
// @Summary List tasks of a support request
// @Tags tasks
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} dto.TaskListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/seniors/support-requests/{id}/tasks [get]
func (h *SeniorHandler) ListTasks(w http.ResponseWriter, r *http.Request) error {
	tasks, err := h.tasks.ListTasks(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TaskListResponse{Success: true, Data: tasks, Total: len(tasks)})
	return nil
}

// CreateTask schedules a task on a request
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.SuccessResponse{data=models.Task}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/seniors/support-requests/{id}/tasks [post]
func (h *SeniorHandler) CreateTask(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateTaskRequest
	if err := bind(w, r, &req); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "Task created successfully",
		Data:    task,
	})
	return nil
}
