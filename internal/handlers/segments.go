package handlers

import (
	"net/http"
)

// Segments обрабатывает GET /api/segments: дорожная сеть в GeoJSON
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	fc, err := h.svc.Segments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, fc)
}

// MetroAreas обрабатывает GET /api/msas: список агломераций
func (h *Handler) MetroAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.svc.MetroAreas(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"msas": areas})
}
