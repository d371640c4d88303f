package repositories

import "errors"

// Sentinel errors returned by repository implementations. Services and
// handlers match on these with errors.Is to pick the right status code.
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrSweetNotFound is returned when no sweet matches the given ID.
	ErrSweetNotFound = errors.New("sweet not found")
	// ErrInsufficientStock is returned when a stock adjustment would
	// drive the quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
