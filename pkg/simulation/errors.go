package simulation

import "errors"

var (
	// ErrInvalidConfig wraps every configuration or tuning rejection.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrStopped is returned by frame requests on a closed driver.
	ErrStopped = errors.New("simulation stopped")
)
