package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrAuctionComplete       = errors.New("auction complete")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
