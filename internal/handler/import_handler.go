package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"otpshare/internal/domain"
	"otpshare/internal/service"
)

// ImportHandler handles code import and parser metadata endpoints.
type ImportHandler struct {
	importService service.ImportService
	maxFileSize   int64
}

// NewImportHandler creates a new ImportHandler. Uploads larger than
// maxFileSize bytes are rejected before they are read.
func NewImportHandler(importService service.ImportService, maxFileSize int64) *ImportHandler {
	return &ImportHandler{importService: importService, maxFileSize: maxFileSize}
}

// ImportFile handles POST /api/v1/admin/otp/file
// @Summary Import codes from a vendor export
// @Description Upload a vendor export; the file bytes are decoded by the parser for vendorType
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Export file"
// @Param vendorType formData string true "plain_text or tplink_omada"
// @Success 201 {object} Response{data=service.ImportResult} "Codes imported"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported vendor or no codes found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "File could not be decoded"
// @Failure 504 {object} ErrorResponseBody "Parsing timed out"
// @Security BearerAuth
// @Router /admin/otp/file [post]
func (h *ImportHandler) ImportFile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	vendorType := c.PostForm("vendorType")
	if vendorType == "" {
		vendorType = c.PostForm("vendor_type")
	}
	if vendorType == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "vendorType field is required")
		return
	}

	if header.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	result, err := h.importService.ImportFile(c.Request.Context(), service.ImportFileInput{
		UserID:     userID,
		VendorType: vendorType,
		FileName:   header.Filename,
		Data:       data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ImportCodes handles POST /api/v1/admin/otp
// @Summary Import codes from a list
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.ImportCodesInput true "Codes"
// @Success 201 {object} Response{data=service.ImportResult}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /admin/otp [post]
func (h *ImportHandler) ImportCodes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.ImportCodesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.importService.ImportCodes(c.Request.Context(), userID, input.Codes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ParserMetadata handles GET /api/v1/parsers/metadata
// @Summary List import formats
// @Description Every supported vendor with its display name, export instructions, extensions and MIME types
// @Tags parsers
// @Produce json
// @Success 200 {object} Response{data=[]domain.ParserMetadata}
// @Router /parsers/metadata [get]
func (h *ImportHandler) ParserMetadata(c *gin.Context) {
	RespondOK(c, h.importService.ParserMetadata())
}
