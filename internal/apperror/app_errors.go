package apperror

import "errors"

var (
	ErrSessionUnavailable  = errors.New("session store unavailable")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnknownSessionStore = errors.New("unknown session store")
)
