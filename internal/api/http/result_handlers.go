package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AhmedHAlshaer/mathgrader/internal/gradestore"
	"github.com/AhmedHAlshaer/mathgrader/internal/grading"
)

// GetResultHandler returns one stored grade result.
// GET /results/{resultID}
func GetResultHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "resultID")
		res, err := s.Store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, gradestore.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

// GetReportHandler renders the human-readable student report.
// GET /results/{resultID}/report
func GetReportHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "resultID")
		res, err := s.Store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, gradestore.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, grading.StudentReport(&res))
	}
}

// ListResultsHandler lists stored results for an assignment.
// GET /assignments/{assignmentID}/results
func ListResultsHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID := chi.URLParam(r, "assignmentID")
		results, err := s.Store.ListByAssignment(r.Context(), assignmentID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(results)
	}
}

// GradebookCSVHandler exports an assignment's gradebook rows as CSV.
// GET /assignments/{assignmentID}/gradebook.csv
func GradebookCSVHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID := chi.URLParam(r, "assignmentID")
		results, err := s.Store.ListByAssignment(r.Context(), assignmentID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_gradebook.csv", assignmentID))

		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"student_id", "assignment_id", "score", "possible", "percentage", "letter_grade", "needs_review"})
		for _, res := range results {
			row := res.GradebookRow()
			_ = cw.Write([]string{
				row.StudentID,
				row.AssignmentID,
				fmt.Sprintf("%g", row.Score),
				fmt.Sprintf("%g", row.Possible),
				row.Percentage,
				row.LetterGrade,
				row.NeedsReview,
			})
		}
		cw.Flush()
	}
}
