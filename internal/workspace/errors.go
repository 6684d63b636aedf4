package workspace

import "fmt"

// InvalidSelectionError indicates a menu answer that is not a number or is
// out of range. It is recoverable: the operator is asked again.
type InvalidSelectionError struct {
	Input string
	Max   int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q: enter a number between 1 and %d", e.Input, e.Max)
}

// PathNotFoundError indicates a single-repository path that does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("repository path does not exist: %s", e.Path)
}

// MaterializationError indicates a workspace slot could not be fully
// constructed. Dependent services must not start when this is returned;
// both slots have been torn down so no partial projection survives.
type MaterializationError struct {
	Slot string // which slot failed, or "" for shared steps
	Step string
	Err  error
}

func (e *MaterializationError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("failed to materialize %s slot (%s): %v", e.Slot, e.Step, e.Err)
	}
	return fmt.Sprintf("failed to materialize workspace (%s): %v", e.Step, e.Err)
}

func (e *MaterializationError) Unwrap() error { return e.Err }
