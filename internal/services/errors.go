package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers translate these
// to HTTP status codes; everything else becomes a 500.
var (
	// ErrUsernameTaken is returned by Register when the username exists.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrEmailTaken is returned by Register when the email exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrAdminRequired is returned on admin login with a non-admin account.
	ErrAdminRequired = errors.New("admin privileges required")
	// ErrInvalidQuantity is returned for non-positive purchase/restock amounts.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	// ErrInvalidToken covers malformed tokens, bad signatures and missing claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is kept distinct from ErrInvalidToken internally;
	// both map to 401 at the HTTP boundary.
	ErrTokenExpired = errors.New("token expired")
)
