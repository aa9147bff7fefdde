package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Roster lifecycle errors. Duplicate invites are recoverable by calling
	// UpdateInvitationStatus instead; invalid statuses are client mistakes.
	ErrDuplicateInvite = errors.New("profile already invited to run")
	ErrInviteNotFound  = errors.New("invite not found")
	ErrInvalidStatus   = errors.New("invalid invite status")
	ErrRunFull         = errors.New("run player limit reached")
)
