package application

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and a wrong password,
	// so login failures never disclose whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrExpoExists         = errors.New("expo already exists")
	ErrNotFound           = errors.New("not found")
	ErrNoValidIDs         = errors.New("no valid ids supplied")
)
