package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrDependencyUnavailable marks every failure of the player feed.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
