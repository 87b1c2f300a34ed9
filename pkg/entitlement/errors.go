package entitlement

import "errors"

var (
	ErrInvalidResource     = errors.New("invalid usage resource")
	ErrNoCounterRegistered = errors.New("no usage counter registered for resource")
	ErrFailedToCountUsage  = errors.New("failed to count resource usage")
	ErrFailedToLoadCatalog = errors.New("failed to load plan catalog")
)
