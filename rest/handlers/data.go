package handlers

import (
	"net/http"
	"time"

	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest/types"
	"github.com/rediwo/redi-json/serializer"
)

// DataHandler serves records of registered models
type DataHandler struct {
	store    database.RecordStore
	registry *serializer.Registry
	logger   logger.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(store database.RecordStore, registry *serializer.Registry, l logger.Logger) *DataHandler {
	return &DataHandler{
		store:    store,
		registry: registry,
		logger:   logger.OrGlobal(l),
	}
}

// Models lists the registered model names
func (h *DataHandler) Models(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Names()
	writeJSON(w, http.StatusOK, types.NewSuccessResponse(names).WithCount(len(names)))
}

// Find handles finding multiple records
func (h *DataHandler) Find(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	modelName := r.PathValue("model")
	params := types.ParseQueryParams(r.URL.Query())

	records, err := h.store.List(r.Context(), modelName, params.Limit)
	if err != nil {
		h.logger.Debug("Failed to list %s: %v", modelName, err)
		writeError(w, err)
		return
	}

	items := make([]serializer.Serializable, len(records))
	for i, rec := range records {
		items[i] = rec
	}

	data, err := Render(r, items, params.Options)
	if err != nil {
		h.logger.Error("Failed to serialize %s: %v", modelName, err)
		writeError(w, err)
		return
	}

	response := types.NewSuccessResponse(data).
		WithCount(len(items)).
		WithExecutionTime(time.Since(start))
	writeJSON(w, http.StatusOK, response)
}

// FindOne handles finding a single record by primary key
func (h *DataHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	modelName := r.PathValue("model")
	params := types.ParseQueryParams(r.URL.Query())

	record, err := h.store.FindByKey(r.Context(), modelName, r.PathValue("id"))
	if err != nil {
		h.logger.Debug("Failed to find %s %s: %v", modelName, r.PathValue("id"), err)
		writeError(w, err)
		return
	}

	data, err := Render(r, record, params.Options)
	if err != nil {
		h.logger.Error("Failed to serialize %s: %v", modelName, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.NewSuccessResponse(data).WithExecutionTime(time.Since(start)))
}
