package handlers

import (
	"errors"
	"net/http"

	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/services"
	"github.com/username/salesfolio/backend/src/utils"
)

type MetricsHandler struct {
	uploadService services.UploadService
}

func NewMetricsHandler(service services.UploadService) *MetricsHandler {
	return &MetricsHandler{uploadService: service}
}

// HandleGetMetrics returns the stored metrics document of a platform with
// ETag support.
func (h *MetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	platform, ok := platformFromPath(w, r)
	if !ok {
		return
	}
	logger.L.Debug("Handling GetMetrics request with ETag support", "platform", platform)

	doc, err := h.uploadService.GetMetrics(r.Context(), platform)
	if err != nil {
		if errors.Is(err, services.ErrMetricsNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		logger.L.Error("Error retrieving metrics from service", "platform", platform, "error", err)
		utils.SendJSONError(w, "Error retrieving metrics", http.StatusInternalServerError)
		return
	}

	currentETag, etagErr := utils.GenerateETag(doc)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for metrics", "platform", platform, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache")
	if etagErr == nil {
		quoted := `"` + currentETag + `"`
		w.Header().Set("ETag", quoted)
		if match := r.Header.Get("If-None-Match"); match != "" && match == quoted {
			logger.L.Debug("ETag match for metrics, returning 304", "platform", platform)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	utils.SendJSON(w, doc, http.StatusOK)
}
