package subscription

import "errors"

var (
	ErrNotFound      = errors.New("subscription not found")
	ErrInvalidState  = errors.New("invalid subscription state")
	ErrFailedToSave  = errors.New("failed to save subscription")
	ErrFailedToRead  = errors.New("failed to read subscription")
	ErrNotInContext  = errors.New("subscription not found in context")
	ErrMissingTenant = errors.New("tenant ID is required")
)
