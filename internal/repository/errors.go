package repository

import (
	"fmt"
	"strings"
)

// MalformedReferenceError indicates a remote repository reference that could
// not be parsed into any of the recognized transport forms.
type MalformedReferenceError struct {
	Raw    string // the reference as given
	Reason string // why parsing failed
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed repository reference %q: %s", e.Raw, e.Reason)
}

// AttemptFailure records one failed transport attempt during acquisition.
type AttemptFailure struct {
	Transport TransportForm
	Err       error
}

// AcquisitionExhaustedError is returned when every transport in the
// credential chain has been tried for a repository and all of them failed.
// It carries the per-transport failures so callers can report exactly what
// was attempted and why each attempt did not succeed.
type AcquisitionExhaustedError struct {
	Ref      RemoteRef
	Mode     AcquireMode
	Attempts []AttemptFailure
}

func (e *AcquisitionExhaustedError) Error() string {
	var parts []string
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Transport, a.Err))
	}
	return fmt.Sprintf("all transports failed to %s %s [%s]",
		e.Mode, e.Ref.Name(), strings.Join(parts, "; "))
}
