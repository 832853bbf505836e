package mesh

import (
	"errors"
	"fmt"
)

// ErrConsistency is matched (errors.Is) by every *ConsistencyError.
var ErrConsistency = errors.New("mesh consistency error")

// ConsistencyError reports input that is not a closed, consistently oriented 2-manifold
// (or a mesh whose derived adjacency is broken). It is always fatal to the operation.
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
