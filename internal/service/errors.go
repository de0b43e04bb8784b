package service

import "errors"

var (
	// ErrPermissionDenied is returned when the actor's effective role does
	// not permit the requested operation. The message deliberately never
	// says whether team rules or share rules produced the denial.
	ErrPermissionDenied = errors.New("you don't have permission to perform this action")

	// ErrInvalidState is returned when an operation requires the note to be
	// in a different lifecycle state (e.g. restoring an active note).
	ErrInvalidState = errors.New("note is not in a valid state for this operation")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrValidation wraps aggregated field-level validation failures.
	// The individual field messages are joined with commas.
	ErrValidation = errors.New("validation error")
)
