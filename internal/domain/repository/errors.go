package repository

import "errors"

// ErrUserNotFound is returned when a write references a user that does not exist.
var ErrUserNotFound = errors.New("user not found")
