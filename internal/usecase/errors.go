package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrSourceUnavailable     = errors.New("external source unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
