package cells

import (
	"errors"
	"fmt"
)

// Recoverable navigator outcomes. Callers are expected to report or ignore them.
var (
	ErrNotFound       = errors.New("cell not found")
	ErrAlreadyVisible = errors.New("cell already visible")
	ErrLastCell       = errors.New("cannot remove the last visible cell")
)

// ErrConsistency is matched (errors.Is) by every *ConsistencyError.
var ErrConsistency = errors.New("cell complex consistency error")

// ConsistencyError reports a malformed adjacency table or an ambiguous face match.
type ConsistencyError struct {
	Op  string
	Msg string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConsistency, e.Op, e.Msg)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }

func consistencyf(op, format string, args ...interface{}) error {
	return &ConsistencyError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
