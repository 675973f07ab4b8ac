package sqlstore

import (
	"database/sql"
	"time"

	"github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/gradebook"
)

// Store reads results from the grade_results table and records sync state in
// grade_sync_status. Both tables are created by the app's schema migration.
type Store struct{ DB *sql.DB }

func (s *Store) GetResult(id string) (gradebook.Result, error) {
	var r gradebook.Result
	var gradedAt int64
	err := s.DB.QueryRow(`
		SELECT id, student_id, assignment_id, total_score, total_possible, needs_review, graded_at
		FROM grade_results WHERE id=$1`, id).
		Scan(&r.ID, &r.StudentID, &r.AssignmentID, &r.Score, &r.Possible, &r.NeedsReview, &gradedAt)
	if err != nil {
		return gradebook.Result{}, err
	}
	r.GradedAt = time.Unix(gradedAt, 0)
	return r, nil
}

func (s *Store) MarkSyncPending(resultID string) error {
	_, err := s.DB.Exec(`
		INSERT INTO grade_sync_status (result_id, status, retries, updated_at)
		VALUES ($1,'pending',0,CURRENT_TIMESTAMP)
		ON CONFLICT (result_id)
		DO UPDATE SET status='pending', updated_at=CURRENT_TIMESTAMP`,
		resultID)
	return err
}

func (s *Store) MarkSyncOK(resultID string) error {
	_, err := s.DB.Exec(`
		UPDATE grade_sync_status
		   SET status='ok', last_error=NULL, updated_at=CURRENT_TIMESTAMP
		 WHERE result_id=$1`, resultID)
	return err
}

func (s *Store) MarkSyncFailed(resultID string, lastErr string) error {
	_, err := s.DB.Exec(`
		INSERT INTO grade_sync_status (result_id, status, retries, last_error, updated_at)
		VALUES ($1,'failed',1,$2,CURRENT_TIMESTAMP)
		ON CONFLICT (result_id)
		DO UPDATE SET
			status='failed',
			retries=grade_sync_status.retries+1,
			last_error=$2,
			updated_at=CURRENT_TIMESTAMP`,
		resultID, lastErr)
	return err
}
