package session

import (
	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
)

var (
	// ErrNoSession is a programming error: the caller was not given a Manager
	ErrNoSession = apperrors.ErrNoSession
	// ErrEmptyToken is returned by Login when there is nothing to log in with
	ErrEmptyToken = apperrors.ErrEmptyToken
	// ErrNotAuthenticated is returned by the token source while logged out
	ErrNotAuthenticated = apperrors.ErrNotAuthenticated
)
