package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/username/salesfolio/backend/src/config"
	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
	"github.com/username/salesfolio/backend/src/security/validation"
	"github.com/username/salesfolio/backend/src/services"
	"github.com/username/salesfolio/backend/src/utils"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: service,
	}
}

// HandleUpload accepts a multipart settlement file in the "file" field for
// the platform named in the path. ?strict=true drops rows with unmapped
// product codes.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	platform, ok := platformFromPath(w, r)
	if !ok {
		return
	}

	strict := config.Cfg.StrictCodeMapping
	if raw := r.URL.Query().Get("strict"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.SendJSONError(w, fmt.Sprintf("invalid strict value %q", raw), http.StatusBadRequest)
			return
		}
		strict = v
	}

	maxSize := config.Cfg.MaxUploadSizeBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "platform", platform, "error", err, "limit", maxSize)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", maxSize/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "platform", platform, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > maxSize {
		logger.L.Warn("Uploaded file header reports size too large", "platform", platform, "fileSize", fileHeader.Size, "limit", maxSize)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", maxSize/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "platform", platform, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.L.Error("Failed to read uploaded file", "platform", platform, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	logger.L.Info("Processing upload request", "platform", platform, "filename", fileHeader.Filename,
		"clientType", clientContentType, "detectedType", detectedContentType, "strict", strict)
	result, err := h.uploadService.ProcessUpload(r.Context(), platform, data, strict)
	if err != nil {
		h.sendUploadError(w, platform, fileHeader.Filename, err)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

func (h *UploadHandler) sendUploadError(w http.ResponseWriter, platform models.Platform, filename string, err error) {
	var missing *columns.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		logger.L.Warn("Upload rejected, required columns missing", "platform", platform, "filename", filename, "fields", missing.Fields)
		utils.SendJSON(w, map[string]interface{}{
			"error":           fmt.Sprintf("Settlement file is missing required columns for %s", platform),
			"missing_columns": missing.Fields,
		}, http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrParsingFailed):
		logger.L.Warn("Upload processing failed due to parsing errors", "platform", platform, "filename", filename, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error parsing settlement file: %v", err), http.StatusBadRequest)
	case errors.Is(err, services.ErrUnknownPlatform):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	default:
		logger.L.Error("Internal error processing upload", "platform", platform, "filename", filename, "error", err)
		utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
	}
}

func platformFromPath(w http.ResponseWriter, r *http.Request) (models.Platform, bool) {
	raw := r.PathValue("platform")
	platform, ok := models.ParsePlatform(raw)
	if !ok {
		utils.SendJSONError(w, fmt.Sprintf("unsupported platform %q", raw), http.StatusNotFound)
		return "", false
	}
	return platform, true
}
