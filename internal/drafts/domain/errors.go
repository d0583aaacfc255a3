package domain

import "errors"

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrInvalidMethod = errors.New("invalid creation method")
	ErrInvalidFlow   = errors.New("invalid draft flow")
)
