package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/model"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/services"
	"github.com/username/salesfolio/backend/src/utils"
)

// MappingStore is the read/write side of code mappings and province aliases.
type MappingStore interface {
	CodeMap(ctx context.Context, platform models.Platform) (map[string]string, error)
	UpsertCodeMappings(ctx context.Context, mappings []model.CodeMapping) error
	AddProvinceAliases(ctx context.Context, canonical string, aliases []string) error
}

type MappingHandler struct {
	store         MappingStore
	uploadService services.UploadService
}

func NewMappingHandler(store MappingStore, uploadService services.UploadService) *MappingHandler {
	return &MappingHandler{store: store, uploadService: uploadService}
}

func (h *MappingHandler) HandleGetCodeMappings(w http.ResponseWriter, r *http.Request) {
	platform, ok := platformFromPath(w, r)
	if !ok {
		return
	}
	mapping, err := h.store.CodeMap(r.Context(), platform)
	if err != nil {
		logger.L.Error("Error loading code mappings", "platform", platform, "error", err)
		utils.SendJSONError(w, "Error loading code mappings", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]interface{}{"platform": platform, "mappings": mapping}, http.StatusOK)
}

// HandlePutCodeMappings upserts {"mappings": {"external code": "canonical name"}}.
func (h *MappingHandler) HandlePutCodeMappings(w http.ResponseWriter, r *http.Request) {
	platform, ok := platformFromPath(w, r)
	if !ok {
		return
	}
	var body struct {
		Mappings map[string]string `json:"mappings"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	codes := make([]string, 0, len(body.Mappings))
	for code := range body.Mappings {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	batch := make([]model.CodeMapping, 0, len(codes))
	for _, code := range codes {
		name := strings.TrimSpace(body.Mappings[code])
		if strings.TrimSpace(code) == "" || name == "" {
			utils.SendJSONError(w, "mapping codes and names must not be empty", http.StatusBadRequest)
			return
		}
		batch = append(batch, model.CodeMapping{Platform: platform, ExternalCode: code, CanonicalName: name})
	}

	if err := h.store.UpsertCodeMappings(r.Context(), batch); err != nil {
		logger.L.Error("Error saving code mappings", "platform", platform, "error", err)
		utils.SendJSONError(w, "Error saving code mappings", http.StatusInternalServerError)
		return
	}
	h.uploadService.InvalidatePlatformCache(platform)
	logger.L.Info("Code mappings updated", "platform", platform, "count", len(batch))
	utils.SendJSON(w, map[string]int{"updated": len(batch)}, http.StatusOK)
}

// HandleAddProvinceAliases adds {"canonical": "...", "aliases": [...]}.
func (h *MappingHandler) HandleAddProvinceAliases(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Canonical string   `json:"canonical"`
		Aliases   []string `json:"aliases"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	body.Canonical = strings.TrimSpace(body.Canonical)
	if body.Canonical == "" || len(body.Aliases) == 0 {
		utils.SendJSONError(w, "canonical and aliases are required", http.StatusBadRequest)
		return
	}

	if err := h.store.AddProvinceAliases(r.Context(), body.Canonical, body.Aliases); err != nil {
		logger.L.Error("Error saving province aliases", "canonical", body.Canonical, "error", err)
		utils.SendJSONError(w, "Error saving province aliases", http.StatusInternalServerError)
		return
	}
	for _, p := range models.Platforms {
		h.uploadService.InvalidatePlatformCache(p)
	}
	utils.SendJSON(w, map[string]int{"added": len(body.Aliases)}, http.StatusOK)
}
