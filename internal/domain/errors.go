package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")

	// Workflow error taxonomy. Every failed transition maps to exactly one of
	// these and leaves the correspondence unmodified.
	ErrPermissionDenied = errors.New("action not permitted for this user")
	ErrInvalidState     = errors.New("operation not allowed in current stage")
	ErrValidation       = errors.New("invalid input")
	ErrStageConflict    = errors.New("stage changed since the request was formed")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
