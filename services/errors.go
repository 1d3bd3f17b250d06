package services

import "errors"

var (
	// ErrPersistenceUnavailable wraps any failure reaching the database from a store.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrInvalidActor means the acting user id did not resolve to a user.
	ErrInvalidActor = errors.New("acting user does not exist")
)
