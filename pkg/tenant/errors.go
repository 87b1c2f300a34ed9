package tenant

import "errors"

var (
	ErrNoTenant        = errors.New("no tenant identifier in request")
	ErrInvalidTenantID = errors.New("invalid tenant identifier")
)
