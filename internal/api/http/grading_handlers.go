package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
	"github.com/AhmedHAlshaer/mathgrader/internal/eventlog"
	"github.com/AhmedHAlshaer/mathgrader/internal/grading"
)

// GradeHandler parses and grades one submission against a loaded key.
// POST /grade  { "key": "hw10", "path": "subs/student_001.txt", "student_id": "" }
func GradeHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Key       string `json:"key"`
			Path      string `json:"path"`
			StudentID string `json:"student_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		key, ok := s.lookupKey(req.Key)
		if !ok {
			http.Error(w, "key not loaded", http.StatusNotFound)
			return
		}
		sub, err := s.SubParser.Parse(req.Path, key, req.StudentID)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, docio.ErrDocumentNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
		result := s.Engine.Grade(sub, key)
		s.persist(r, result)
		_ = json.NewEncoder(w).Encode(result)
	}
}

// GradeBatchHandler parses and grades every document in a directory.
// A bad document is skipped, never fatal to the batch.
// POST /grade/batch  { "key": "hw10", "dir": "subs/" }
func GradeBatchHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Key string `json:"key"`
			Dir string `json:"dir"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		key, ok := s.lookupKey(req.Key)
		if !ok {
			http.Error(w, "key not loaded", http.StatusNotFound)
			return
		}
		subs, err := s.SubParser.ParseBatch(req.Dir, key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		results := s.Engine.GradeBatch(subs, key)
		for _, res := range results {
			s.persist(r, res)
		}
		_ = json.NewEncoder(w).Encode(results)
	}
}

func (s *Service) persist(r *http.Request, result grading.GradeResult) {
	if s.Store != nil {
		if err := s.Store.Put(r.Context(), result); err != nil {
			log.Printf("api: storing result %s: %v", result.ID, err)
		}
	}
	if s.Events != nil {
		body, _ := json.Marshal(result.GradebookRow())
		if err := s.Events.Append(r.Context(), eventlog.Event{
			Type:     eventlog.TypeSubmissionGraded,
			Key:      result.ID,
			DataJSON: string(body),
		}); err != nil {
			log.Printf("api: logging grade event for %s: %v", result.ID, err)
		}
	}
}
