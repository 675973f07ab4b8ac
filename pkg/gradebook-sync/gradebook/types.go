package gradebook

import "time"

// Result is the slice of a stored grade result the syncer needs.
type Result struct {
	ID           string
	StudentID    string
	AssignmentID string
	Score        float64
	Possible     float64
	NeedsReview  bool
	GradedAt     time.Time
}

// Score is the wire shape posted to an external gradebook service.
type Score struct {
	StudentID    string
	AssignmentID string
	ScoreGiven   float64
	ScoreMaximum float64
	Timestamp    time.Time
}

// Store: implement this in your app, or use pkg/gradebook-sync/sqlstore.Store
type Store interface {
	GetResult(id string) (Result, error)
	MarkSyncPending(resultID string) error
	MarkSyncOK(resultID string) error
	MarkSyncFailed(resultID, lastErr string) error
}

// ScoreClient posts scores to the external service.
type ScoreClient interface {
	PostScore(s Score) error
}
