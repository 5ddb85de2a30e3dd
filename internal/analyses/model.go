package analyses

import (
	"errors"
	"time"

	"contract-backend/internal/processing"
)

// ErrNotFound is returned when an analysis record does not exist.
var ErrNotFound = errors.New("analysis not found")

// Record is a completed analysis kept in memory for later retrieval.
type Record struct {
	ID         string
	DocumentID string
	Result     processing.Result
	CreatedAt  time.Time
}
