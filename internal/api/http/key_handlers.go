package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
	"github.com/AhmedHAlshaer/mathgrader/internal/eventlog"
)

// LoadKeyHandler parses an answer-key document and registers it under a name.
// POST /keys  { "name": "hw10", "path": "keys/HW_10_key.txt" }
func LoadKeyHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
			Path string `json:"path"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Path == "" {
			http.Error(w, "name and path required", http.StatusBadRequest)
			return
		}
		key, err := s.KeyParser.Parse(req.Path)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, docio.ErrDocumentNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		s.registerKey(req.Name, key)

		if s.Events != nil {
			body, _ := json.Marshal(map[string]interface{}{
				"assignment_id": key.AssignmentID,
				"questions":     len(key.Questions),
				"total_points":  key.TotalPoints,
			})
			_ = s.Events.Append(r.Context(), eventlog.Event{
				Type:     eventlog.TypeAnswerKeyParsed,
				Key:      req.Name,
				DataJSON: string(body),
			})
		}
		_ = json.NewEncoder(w).Encode(key)
	}
}

// GetKeyHandler returns a previously loaded answer key.
// GET /keys/{name}
func GetKeyHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		key, ok := s.lookupKey(name)
		if !ok {
			http.Error(w, "key not loaded", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(key)
	}
}
