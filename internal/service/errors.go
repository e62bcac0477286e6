package service

import "errors"

var (
	ErrNoteNotFound     = errors.New("unknown note id")
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrLoginRequired    = errors.New("login required")
	ErrNotNoteOwner     = errors.New("note belongs to another user")
	ErrMediaNotFound    = errors.New("there's a high chance that that file does not exist")
	ErrUnknownProvider  = errors.New("unsupported provider")
	ErrInvalidState     = errors.New("invalid oauth state")
)
