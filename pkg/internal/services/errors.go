package services

import "errors"

var (
	ErrNotSignedIn       = errors.New("not signed in")
	ErrSelfFollow        = errors.New("you cannot follow yourself")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotPermitted      = errors.New("not permitted")
	ErrUnsupportedKind   = errors.New("unsupported document kind")
	ErrContention        = errors.New("document changed too many times while updating")
	ErrOrphanedReference = errors.New("comment deleted but its reference is still on the post")
)
