package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrExternalRecipe     = errors.New("recipe is read-only (external catalog)")
	ErrNotOwner           = errors.New("recipe belongs to another user")
	ErrNotSignedIn        = errors.New("not signed in")
)
