package handlers

import (
	"net/http"
	"strings"
	"time"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/utils"
)

// VolunteerHandler serves volunteer applications.
type VolunteerHandler struct {
	volunteers *services.VolunteerService
}

// NewVolunteerHandler creates a new VolunteerHandler instance
func NewVolunteerHandler(v *services.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteers: v}
}

// Ping answers the volunteers router probe
// @Summary Volunteers ping
// @Tags volunteers
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /api/volunteers/ping [get]
func (h *VolunteerHandler) Ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.PingResponse{
		Message: "pong",
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Create stores a volunteer application
// @Summary Apply as a volunteer
// @Tags volunteers
// @Accept json
// @Produce json
// @Param request body dto.VolunteerApplication true "Application"
// @Success 201 {object} dto.SuccessResponse{data=models.Volunteer}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /api/volunteers [post]
// @Router /api/volunteers/applications [post]
func (h *VolunteerHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req dto.VolunteerApplication
	if err := bind(w, r, &req); err != nil {
		return err
	}

	v, err := h.volunteers.Create(r.Context(), req.Volunteer())
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SuccessResponse{Success: true, Data: v})
	return nil
}

// List lists volunteers newest first
// @Summary List volunteers
// @Tags volunteers
// @Produce json
// @Param status query string false "Exact status" Enums(PENDING_VERIFICATION, ACTIVE, INACTIVE, SUSPENDED)
// @Param limit query int false "Page size (1-100)" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.VolunteerListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/volunteers [get]
func (h *VolunteerHandler) List(w http.ResponseWriter, r *http.Request) error {
	page, err := h.volunteers.List(r.Context(), models.VolunteerFilter{
		Status: models.VolunteerStatus(strings.TrimSpace(r.URL.Query().Get("status"))),
		Limit:  utils.QueryInt(r, "limit", services.DefaultPageSize),
		Offset: utils.QueryInt(r, "offset", 0),
	})
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VolunteerListResponse{
		Success: true,
		Data:    page.Data,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	return nil
}

// Get returns one volunteer
// @Summary Get a volunteer
// @Tags volunteers
// @Produce json
// @Param id path string true "Volunteer id"
// @Success 200 {object} dto.SuccessResponse{data=models.Volunteer}
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/volunteers/{id} [get]
func (h *VolunteerHandler) Get(w http.ResponseWriter, r *http.Request) error {
	v, err := h.volunteers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{Success: true, Data: v})
	return nil
}
