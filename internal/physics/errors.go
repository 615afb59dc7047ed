package physics

import "errors"

// ErrInvariantViolation indicates a snapshot whose parallel sequences
// disagree in length or carry a non-positive mass.
var ErrInvariantViolation = errors.New("physics: state invariant violated")
