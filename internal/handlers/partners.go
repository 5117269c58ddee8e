package handlers

import (
	"net/http"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/utils"
)

// PartnerHandler serves partnership applications.
type PartnerHandler struct {
	partners *services.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler instance
func NewPartnerHandler(p *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{partners: p}
}

// Ping answers the partners router probe
// @Summary Partners ping
// @Tags partners
// @Produce json
// @Success 200 {object} dto.PartnerPingResponse
// @Router /api/partners/ping [get]
func (h *PartnerHandler) Ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.PartnerPingResponse{OK: true, Who: "partners"})
}

// Create stores a partnership application
// @Summary Apply as a partner organization
// @Tags partners
// @Accept json
// @Produce json
// @Param request body dto.PartnerApplication true "Application"
// @Success 201 {object} dto.PartnerCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /api/partners [post]
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req dto.PartnerApplication
	if err := bind(w, r, &req); err != nil {
		return err
	}

	p, err := h.partners.Create(r.Context(), req.Partner())
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.PartnerCreatedResponse{
		Success: true,
		Message: "Partner application submitted successfully",
		Data:    p,
	})
	return nil
}
