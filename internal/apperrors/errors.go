package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid session/token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller's role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrVersionConflict indicates an optimistic concurrency token (id, savedAt)
// no longer matches the stored row; the caller must re-fetch.
var ErrVersionConflict = errors.New("version conflict")

// ErrInvalidTransition indicates the submission is not in a state from which
// the requested transition is allowed.
var ErrInvalidTransition = errors.New("invalid status transition")
