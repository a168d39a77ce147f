package services

import "errors"

var (
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so login responses do not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("user already exists with this email")

	// ErrOutOfScope is returned when an actor holds the permission but the
	// target record is outside their role scope (another user's KPI for
	// Staff, another department for Manager).
	ErrOutOfScope = errors.New("resource is outside your scope")
)
