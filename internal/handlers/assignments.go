package handlers

import (
	"net/http"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/utils"
)

// AssignmentHandler links volunteers to requests and closes tasks.
type AssignmentHandler struct {
	assignments *services.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler instance
func NewAssignmentHandler(a *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: a}
}

// Assign links a volunteer to a senior or support request
// @Summary Assign a volunteer
// @Description A PENDING request moves to ASSIGNED
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.AssignVolunteerRequest true "Assignment"
// @Success 201 {object} dto.SuccessResponse{data=models.VolunteerAssignment}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already assigned"
// @Security ApiKeyAuth
// @Router /api/assignments [post]
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) error {
	var req dto.AssignVolunteerRequest
	if err := bind(w, r, &req); err != nil {
		return err
	}

	a, err := h.assignments.Assign(r.Context(), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "Volunteer assigned successfully",
		Data:    a,
	})
	return nil
}

// CompleteTask closes a task with feedback
// @Summary Complete a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task id"
// @Param request body dto.CompleteTaskRequest true "Feedback"
// @Success 200 {object} dto.SuccessResponse{data=models.Task}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/tasks/{id}/complete [patch]
func (h *AssignmentHandler) CompleteTask(w http.ResponseWriter, r *http.Request) error {
	var req dto.CompleteTaskRequest
	if r.ContentLength != 0 {
		if err := bind(w, r, &req); err != nil {
			return err
		}
	}

	task, err := h.assignments.CompleteTask(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Task completed successfully",
		Data:    task,
	})
	return nil
}
