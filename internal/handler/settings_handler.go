package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"otpshare/internal/service"
)

// SettingsHandler handles runtime settings endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	values, err := h.settingsService.GetAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, values)
}

// Update handles PUT /api/v1/admin/settings
// @Summary Update settings
// @Description Upsert one or more settings; jwt_expiration_hours must be a positive integer
// @Tags admin
// @Accept json
// @Produce json
// @Param request body map[string]string true "Settings to change"
// @Success 200 {object} Response{data=map[string]string} "All settings after the update"
// @Failure 400 {object} ErrorResponseBody "Invalid value"
// @Security BearerAuth
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if len(values) == 0 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "no settings provided")
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), values)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, updated)
}
