// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrPollNotFound means the operation targeted a nonexistent poll.
	ErrPollNotFound = errors.New("poll not found")

	// ErrInvalidOption means a vote targeted an option index the poll does
	// not have configured.
	ErrInvalidOption = errors.New("invalid vote option")

	// ErrSelfLike means a user tried to like themself.
	ErrSelfLike = errors.New("cannot like yourself")
)

// ValidationError reports a malformed create request. It is returned before
// any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
