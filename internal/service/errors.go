package service

import "errors"

var (
	// ErrValidation indicates required scheduling fields are missing.
	// It is raised before any store call and resolved entirely locally.
	ErrValidation = errors.New("validation failed")

	// ErrPermission indicates a non-privileged actor attempted to move an
	// entry whose work has already begun.
	ErrPermission = errors.New("permission denied")

	// ErrConfirmationRequired indicates a destructive bulk operation was
	// requested without explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrMutationInFlight indicates another mutation holds the in-flight
	// guard; the attempt is dropped, not queued.
	ErrMutationInFlight = errors.New("mutation already in flight")

	// ErrRemote indicates a generic store or service failure. Single-entry
	// mutations surface it immediately; bulk mutations accumulate it into
	// the batch summary instead of aborting.
	ErrRemote = errors.New("remote operation failed")
)
