package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and gateway clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: uniqueness violated (duplicate email, duplicate application)
// - ErrInvalidState: aggregate in wrong state for the requested operation
// - ErrUnavailable: upstream service (payment gateway, AI engine) unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
