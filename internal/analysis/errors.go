package analysis

import "fmt"

// StageError reports a defect inside one pipeline stage.
// Degenerate input never produces it; stages return empty values instead.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis stage %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("analysis stage %s failed", e.Stage)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
