package bounty

import "errors"

var (
	ErrBountyNotFound = errors.New("bounty not found")
	ErrNotPoster      = errors.New("only the poster may modify this bounty")
	ErrBountyClosed   = errors.New("bounty is already closed")
)
