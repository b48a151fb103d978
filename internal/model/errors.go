package model

import "errors"

var (
	// ErrAccountNotFound means the account id does not resolve to a
	// stored account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrConflict means a concurrent update won the optimistic check;
	// the caller may retry with fresh state.
	ErrConflict = errors.New("account was modified concurrently")
)
