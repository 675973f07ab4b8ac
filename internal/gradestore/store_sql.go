package gradestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/AhmedHAlshaer/mathgrader/internal/grading"
)

// ErrNotFound is returned when no stored result matches.
var ErrNotFound = errors.New("grade result not found")

// Store persists grade results. Implementations must be safe for
// concurrent use.
type Store interface {
	Put(ctx context.Context, r grading.GradeResult) error
	Get(ctx context.Context, id string) (grading.GradeResult, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]grading.GradeResult, error)
}

// SQLStore keeps the full result as JSON alongside the queryable columns,
// so listing stays cheap and the report detail stays lossless.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Put(ctx context.Context, r grading.GradeResult) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO grade_results
		(id,student_id,assignment_id,total_score,total_possible,percentage,needs_review,result_json,graded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
		  total_score=EXCLUDED.total_score,
		  total_possible=EXCLUDED.total_possible,
		  percentage=EXCLUDED.percentage,
		  needs_review=EXCLUDED.needs_review,
		  result_json=EXCLUDED.result_json,
		  graded_at=EXCLUDED.graded_at`,
		r.ID, r.StudentID, r.AssignmentID, r.TotalScore, r.TotalPossible,
		r.Percentage, r.NeedsReview, string(body), r.GradedAt.Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (grading.GradeResult, error) {
	row := s.db.QueryRowContext(ctx, `SELECT result_json FROM grade_results WHERE id=$1`, id)
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return grading.GradeResult{}, ErrNotFound
		}
		return grading.GradeResult{}, err
	}
	var r grading.GradeResult
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return grading.GradeResult{}, err
	}
	return r, nil
}

func (s *SQLStore) ListByAssignment(ctx context.Context, assignmentID string) ([]grading.GradeResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result_json FROM grade_results WHERE assignment_id=$1 ORDER BY student_id`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []grading.GradeResult
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var r grading.GradeResult
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
