// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios
// without string matching. For example, ErrForbidden indicates that
// the current user is not authorized to act on a resource owned by
// someone else.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned by UserRepo.Create when the email is
// already registered.
var ErrEmailExists = errors.New("email already registered")

// ErrUsernameExists is returned by UserRepo.Create when the username
// is already taken.
var ErrUsernameExists = errors.New("username already taken")
