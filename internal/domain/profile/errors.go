package profile

import "errors"

var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrPendingProfileNotFound = errors.New("pending profile not found")
	ErrProfileAlreadyExists   = errors.New("profile already exists for this user")
)
