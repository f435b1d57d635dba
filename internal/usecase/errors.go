package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForecastingClosed     = errors.New("forecasting closed")
	ErrAlreadyResolved       = errors.New("prop already resolved")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
