package handlers

import (
	"net/http"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/utils"
)

// APIVersion is reported by the API index.
const APIVersion = "1.0.0"

// APIIndex lists the public endpoint groups
// @Summary API index
// @Tags meta
// @Produce json
// @Success 200 {object} dto.APIIndexResponse
// @Router /api [get]
func APIIndex(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.APIIndexResponse{
		Message: "Welcome to ENW API",
		Version: APIVersion,
		Endpoints: map[string]string{
			"seniors":    "/api/seniors",
			"volunteers": "/api/volunteers",
			"partners":   "/api/partners",
			"blog":       "/api/blog",
		},
	})
}

// NotFound answers every unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusNotFound, dto.ErrorResponse{
		Message: "Resource not found",
		Path:    r.URL.Path,
	})
}
