package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"localpro/services/storage"
	"localpro/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StorageHandler exposes media upload and download-URL endpoints.
type StorageHandler struct {
	Storage storage.StorageService
}

func NewStorageHandler(storageSvc storage.StorageService) *StorageHandler {
	return &StorageHandler{Storage: storageSvc}
}

// UploadFileHandler handles POST /api/storage/upload (multipart "file",
// optional "folder" field).
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid upload", "multipart field 'file' is required")
		return
	}
	folder := c.DefaultPostForm("folder", "uploads")

	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "upload failed", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, folder)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "upload failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicId": publicID})
}

// GetDownloadURLHandler handles GET /api/storage/url?type=image&id=publicID
func (h *StorageHandler) GetDownloadURLHandler(c *gin.Context) {
	publicID := c.Query("id")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "query parameter 'id' is required")
		return
	}
	resourceType := c.DefaultQuery("type", "image")

	url, err := h.Storage.GetDownloadURL(c.Request.Context(), resourceType, publicID, time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build URL", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
