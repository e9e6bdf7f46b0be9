package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"otpshare/internal/service"
)

// BackupHandler handles pool export endpoints.
type BackupHandler struct {
	backupService service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Download handles GET /api/v1/admin/backup
// @Summary Download a backup
// @Description Streams every code as a CSV or XLSX attachment
// @Tags admin
// @Produce octet-stream
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file "Backup file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /admin/backup [get]
func (h *BackupHandler) Download(c *gin.Context) {
	snap, err := h.backupService.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snap.FileName))
	c.Data(http.StatusOK, snap.ContentType, snap.Data)
}

// Archive handles POST /api/v1/admin/backup/archive
// @Summary Archive a backup
// @Description Stores a snapshot in the backup bucket and returns a presigned download URL
// @Tags admin
// @Produce json
// @Param format query string false "csv (default) or xlsx"
// @Success 201 {object} Response{data=service.ArchiveResult}
// @Failure 503 {object} ErrorResponseBody "Backup storage not configured"
// @Security BearerAuth
// @Router /admin/backup/archive [post]
func (h *BackupHandler) Archive(c *gin.Context) {
	result, err := h.backupService.Archive(c.Request.Context(), c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}
