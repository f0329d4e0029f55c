package graph

import "fmt"

// InconsistentGraphError means the assignment graph was corrupted before the current operation.
// It is never recoverable: the operation that hit it must be discarded as a whole.
type InconsistentGraphError struct {
	PlayerID string
	Reason   string
}

func (e *InconsistentGraphError) Error() string {
	return fmt.Sprintf("inconsistent assignment graph at %q: %s", e.PlayerID, e.Reason)
}

func inconsistent(playerID, format string, args ...interface{}) *InconsistentGraphError {
	return &InconsistentGraphError{
		PlayerID: playerID,
		Reason:   fmt.Sprintf(format, args...),
	}
}
