package target

import (
	"errors"
	"fmt"
)

var (
	// ErrRepositoryResolution means no usable repository could be determined
	ErrRepositoryResolution = errors.New("repository resolution failed")
	// ErrInvalidTarget means a PR number or PR URL could not be parsed
	ErrInvalidTarget = errors.New("invalid target format")
)

// NewRepositoryError wraps a repository resolution failure for input
func NewRepositoryError(input string, reason string) error {
	if input == "" {
		return fmt.Errorf("%w: %s", ErrRepositoryResolution, reason)
	}
	return fmt.Errorf("%w: %q: %s", ErrRepositoryResolution, input, reason)
}

// NewInvalidTargetError reports an unparseable PR reference, echoing it back
func NewInvalidTargetError(input string, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidTarget, input, reason)
}
