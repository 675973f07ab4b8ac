package gradebook

import (
	"errors"
	"time"
)

type Clock func() time.Time

type Syncer struct {
	Store  Store
	Client ScoreClient
	Now    Clock
}

func New(store Store, client ScoreClient, now Clock) *Syncer {
	if now == nil {
		now = time.Now
	}
	return &Syncer{Store: store, Client: client, Now: now}
}

// SyncResult pushes one stored result to the external gradebook and records
// the sync outcome. A result still flagged for manual review never leaves
// the system.
func (s *Syncer) SyncResult(resultID string) error {
	r, err := s.Store.GetResult(resultID)
	if err != nil {
		return err
	}
	if r.GradedAt.IsZero() {
		return errors.New("result not graded")
	}
	if r.NeedsReview {
		return errors.New("result pending manual review")
	}
	_ = s.Store.MarkSyncPending(r.ID)

	if err := s.Client.PostScore(Score{
		StudentID:    r.StudentID,
		AssignmentID: r.AssignmentID,
		ScoreGiven:   r.Score,
		ScoreMaximum: r.Possible,
		Timestamp:    s.Now(),
	}); err != nil {
		_ = s.Store.MarkSyncFailed(r.ID, err.Error())
		return err
	}
	return s.Store.MarkSyncOK(r.ID)
}
