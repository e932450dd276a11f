// Package common defines shared constants and sentinel errors used across
// the layers of CollectKeeper. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Store-level errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPersistence      = errors.New("persistence error")
	ErrLoad             = errors.New("load error")
	ErrCategoryInUse    = errors.New("category in use")
	ErrValidation       = errors.New("validation error")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
