package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"

	"github.com/gin-gonic/gin"
)

const previewSize = 10

// ImportService interface for dependency injection
type ImportService interface {
	Parse(r io.Reader) ([]models.RawRecord, error)
	Start(ctx context.Context, raws []models.RawRecord) (models.ImportStatus, error)
	Status() models.ImportStatus
}

// ImportHandler handles dataset upload and import requests
type ImportHandler struct {
	service        ImportService
	maxUploadBytes int64
}

// NewImportHandler creates a new import handler
func NewImportHandler(svc ImportService, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{service: svc, maxUploadBytes: maxUploadBytes}
}

// UploadResponse is returned after a file has been parsed
type UploadResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Count   int                `json:"count"`
	Records []models.RawRecord `json:"records"`
}

// ProcessRequest carries the rows to persist
type ProcessRequest struct {
	Records []models.RawRecord `json:"records" binding:"required"`
}

// ProcessResponse acknowledges a started import
type ProcessResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Status  models.ImportStatus `json:"status"`
}

// StatusResponse wraps the current import status
type StatusResponse struct {
	Status models.ImportStatus `json:"status"`
}

// Upload handles POST /import requests
//
//	@Summary	Parse an address CSV file
//	@Tags		import
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		csvFile	formData	file	true	"address dataset"
//	@Success	200		{object}	UploadResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/import [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, err := c.FormFile("csvFile")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes)})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required form file 'csvFile'"})
		return
	}

	if file.Header.Get("Content-Type") != "text/csv" && !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file must be a CSV file"})
		return
	}

	f, err := file.Open()
	if err != nil {
		internalError(c, err, "failed to open uploaded file")
		return
	}
	defer f.Close()

	records, err := h.service.Parse(f)
	if err != nil {
		if apperror.IsClientError(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to parse CSV file", Details: err.Error()})
			return
		}
		internalError(c, err, "failed to read uploaded file")
		return
	}

	preview := records
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success: true,
		Message: fmt.Sprintf("parsed %d records", len(records)),
		Count:   len(records),
		Records: preview,
	})
}

// Process handles POST /import/process requests
//
//	@Summary	Start a background import
//	@Tags		import
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ProcessRequest	true	"rows to import"
//	@Success	200		{object}	ProcessResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/import/process [post]
func (h *ImportHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must contain a 'records' array", Details: err.Error()})
		return
	}

	status, err := h.service.Start(c.Request.Context(), req.Records)
	if err != nil {
		switch {
		case apperror.IsConflict(err):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case apperror.IsClientError(err):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid import records", Details: err.Error()})
		default:
			internalError(c, err, "failed to start import")
		}
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Success: true,
		Message: fmt.Sprintf("started processing %d records", status.TotalRecords),
		Status:  status,
	})
}

// ProcessStatus handles GET /import/process requests
//
//	@Summary	Current import status
//	@Tags		import
//	@Produce	json
//	@Success	200	{object}	StatusResponse
//	@Router		/import/process [get]
func (h *ImportHandler) ProcessStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: h.service.Status()})
}
