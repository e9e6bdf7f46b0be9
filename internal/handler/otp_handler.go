package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"otpshare/internal/domain"
	"otpshare/internal/service"
)

// OTPHandler handles voucher pool endpoints for users and admins.
type OTPHandler struct {
	otpService service.OTPService
}

// NewOTPHandler creates a new OTPHandler.
func NewOTPHandler(otpService service.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// Dashboard handles GET /api/v1/otps
// @Summary User dashboard
// @Description The next unused code plus codes handed out in the last 7 days
// @Tags otps
// @Produce json
// @Success 200 {object} Response{data=service.Dashboard}
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /otps [get]
func (h *OTPHandler) Dashboard(c *gin.Context) {
	dash, err := h.otpService.Dashboard(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, dash)
}

// MarkUsed handles PUT /api/v1/otps/:id/use
// @Summary Hand out a code
// @Description Marks an unused code as used by the caller
// @Tags otps
// @Produce json
// @Param id path string true "OTP ID (UUID)"
// @Success 200 {object} Response{data=domain.OTP}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Failure 409 {object} ErrorResponseBody "Already used"
// @Security BearerAuth
// @Router /otps/{id}/use [put]
func (h *OTPHandler) MarkUsed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	otpID, ok := parseIDParam(c, "otp")
	if !ok {
		return
	}

	otp, err := h.otpService.MarkUsed(c.Request.Context(), otpID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, otp)
}

// List handles GET /api/v1/admin/otp
// @Summary List codes
// @Description Page through the pool with optional status filter and code search
// @Tags admin
// @Produce json
// @Param status query string false "unused or used"
// @Param search query string false "Substring of the code"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(50)
// @Success 200 {object} Response{data=service.OTPList,meta=PagMeta}
// @Security BearerAuth
// @Router /admin/otp [get]
func (h *OTPHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c, 50)
	filter := domain.OTPFilter{
		Status: domain.OTPStatus(c.Query("status")),
		Search: c.Query("search"),
		Offset: offset,
		Limit:  limit,
	}

	list, err := h.otpService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list, PagMeta{Total: list.Total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/admin/otp/:id
func (h *OTPHandler) Delete(c *gin.Context) {
	otpID, ok := parseIDParam(c, "otp")
	if !ok {
		return
	}

	if err := h.otpService.Delete(c.Request.Context(), otpID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "otp deleted"})
}

// DeleteAll handles DELETE /api/v1/admin/otp
func (h *OTPHandler) DeleteAll(c *gin.Context) {
	n, err := h.otpService.DeleteAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: n})
}

// BulkDelete handles POST /api/v1/admin/otp/bulk/delete
func (h *OTPHandler) BulkDelete(c *gin.Context) {
	var input service.BulkIDsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	n, err := h.otpService.DeleteBulk(c.Request.Context(), input.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: n})
}

// BulkMarkUsed handles POST /api/v1/admin/otp/bulk/mark-used
func (h *OTPHandler) BulkMarkUsed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.BulkIDsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	n, err := h.otpService.MarkBulkUsed(c.Request.Context(), input.IDs, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: n})
}

// BulkMarkUnused handles POST /api/v1/admin/otp/bulk/mark-unused
func (h *OTPHandler) BulkMarkUnused(c *gin.Context) {
	var input service.BulkIDsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	n, err := h.otpService.MarkBulkUnused(c.Request.Context(), input.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: n})
}
