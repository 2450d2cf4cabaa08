package domain

import "errors"

// Sentinel errors for workflow preconditions. The HTTP layer maps these
// onto the wire statuses the clients expect.
var (
	// Validation failures (400).
	ErrUnderage      = errors.New("must be 18 years old or older")
	ErrBadPreference = errors.New("malformed preference")
	ErrInvalidInput  = errors.New("invalid input")

	// Conflicts (403).
	ErrAlreadyInvited    = errors.New("already invited by someone")
	ErrPlateTaken        = errors.New("plate already registered")
	ErrNoMatch           = errors.New("profiles do not match")
	ErrProfileIncomplete = errors.New("profile incomplete")

	// Missing resources (404).
	ErrNotFound      = errors.New("not found")
	ErrCodeNotFound  = errors.New("invite code not found")
	ErrPlateNotFound = errors.New("no active plate")
	ErrNoDevices     = errors.New("no registered devices")

	// Precondition failed (406): redeeming before owning an invite row.
	ErrInviteNotReady = errors.New("finish setting up your profile before redeeming an invite code")
)
