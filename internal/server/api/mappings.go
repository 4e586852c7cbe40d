// Package api provides HTTP API handlers for the deckhand control surface.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/renderix/deckhand/internal/store"
)

// MappingHandler handles HTTP requests for key-mapping resources.
type MappingHandler struct {
	store *store.Store
}

// NewMappingHandler creates a new MappingHandler with the given store.
func NewMappingHandler(s *store.Store) *MappingHandler {
	return &MappingHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *MappingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/mappings or /api/mappings/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/mappings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/mappings
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/mappings/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createMappingRequest struct {
	Action  string `json:"action"`
	Key     string `json:"key"`
	Enabled *bool  `json:"enabled"`
}

type updateMappingRequest struct {
	Key     string `json:"key"`
	Enabled *bool  `json:"enabled"`
}

type mappingResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Key       string `json:"key"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listMappingsResponse struct {
	Mappings []mappingResponse `json:"mappings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Mapping to a mappingResponse.
func toResponse(m *store.Mapping) mappingResponse {
	return mappingResponse{
		ID:        m.ID,
		Action:    m.Action,
		Key:       m.Key,
		Enabled:   m.Enabled,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: m.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/mappings and returns all mappings.
func (h *MappingHandler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.store.Mappings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list mappings")
		return
	}

	response := listMappingsResponse{
		Mappings: make([]mappingResponse, 0, len(mappings)),
	}

	for _, m := range mappings {
		response.Mappings = append(response.Mappings, toResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/mappings/{id} and returns a single mapping.
func (h *MappingHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	mapping, err := h.store.Mappings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Mapping not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get mapping")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(mapping))
}

// create handles POST /api/mappings and creates a new mapping.
func (h *MappingHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "Action is required")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "Key is required")
		return
	}

	// Mappings are enabled unless explicitly disabled
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	mapping := &store.Mapping{
		ID:      uuid.New().String(),
		Action:  req.Action,
		Key:     req.Key,
		Enabled: enabled,
	}

	if err := h.store.Mappings().Create(mapping); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create mapping")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(mapping))
}

// update handles PUT /api/mappings/{id} and updates an existing mapping.
func (h *MappingHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	mapping, err := h.store.Mappings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Mapping not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get mapping")
		return
	}

	var req updateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Key != "" {
		mapping.Key = req.Key
	}
	if req.Enabled != nil {
		mapping.Enabled = *req.Enabled
	}

	if err := h.store.Mappings().Update(mapping); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update mapping")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(mapping))
}

// delete handles DELETE /api/mappings/{id} and removes a mapping.
func (h *MappingHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Mappings().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Mapping not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete mapping")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
