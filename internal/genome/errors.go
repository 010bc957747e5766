package genome

import (
	"errors"
	"fmt"
)

// ErrNoAnnotationFiles is returned when a genome is loaded without documents.
var ErrNoAnnotationFiles = errors.New("no annotation files")

// AlreadyLoadedError reports a genome that exists before loading starts.
type AlreadyLoadedError struct {
	Ref GenomeRef
}

// Error implements the error interface.
func (e *AlreadyLoadedError) Error() string {
	return fmt.Sprintf("genome with %s already loaded", e.Ref)
}

// IsAlreadyLoaded returns true if err is an AlreadyLoadedError.
// Uses errors.As to handle wrapped errors.
func IsAlreadyLoaded(err error) bool {
	var ae *AlreadyLoadedError
	return errors.As(err, &ae)
}
