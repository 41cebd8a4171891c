package feeding

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("subject not found")
	ErrCapacityReached = errors.New("capacity reached")
)
