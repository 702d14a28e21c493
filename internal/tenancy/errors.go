package tenancy

import "errors"

var (
	// ErrUnboundContext means an accessor was requested without a fully
	// populated tenant pair. Operations must not proceed past it.
	ErrUnboundContext = errors.New("tenancy: account or company missing from context")

	// ErrNotFound is returned identically whether a record does not exist
	// or exists under a different tenant.
	ErrNotFound = errors.New("tenancy: record not found in tenant scope")

	// ErrScopeViolation means an entity stamped for one tenant was handed
	// to an accessor bound to another. This is a programming error.
	ErrScopeViolation = errors.New("tenancy: entity does not belong to bound tenant")

	// ErrIntegrity is a per-tenant local id or uuid collision at creation
	// time. It indicates broken sequencing and is not retryable.
	ErrIntegrity = errors.New("tenancy: tenant key collision")
)
