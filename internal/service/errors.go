package service

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound is returned on read paths when the requested recipe
	// does not exist. It is a recoverable outcome, not a store failure.
	ErrRecipeNotFound = errors.New("recipe not found")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StoreError wraps a failure from the underlying store. The store's own
// diagnostics stay reachable through Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// ValidationError marks caller-supplied data that violates a recognized
// constraint.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
