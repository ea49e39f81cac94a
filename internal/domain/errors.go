package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidField     = "invalid counter field"
	ErrMsgInvalidName      = "invalid group name"
	ErrMsgNotFound         = "not found"
	ErrMsgAlreadyMember    = "already a member"
	ErrMsgNotMember        = "not a member"
	ErrMsgStoreUnavailable = "store unavailable"
	ErrMsgGroupExists      = "group already exists"
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgDuplicateEvent   = "duplicate event"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors
	ErrInvalidField = errors.New(ErrMsgInvalidField)
	ErrInvalidName  = errors.New(ErrMsgInvalidName)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Lookup errors
	ErrNotFound      = errors.New(ErrMsgNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrGroupNotFound = fmt.Errorf("group %w", ErrNotFound)

	// Membership errors
	ErrAlreadyMember = errors.New(ErrMsgAlreadyMember)
	ErrNotMember     = errors.New(ErrMsgNotMember)

	// ErrGroupExists is returned by stores when an insert hits the group name uniqueness constraint.
	ErrGroupExists = errors.New(ErrMsgGroupExists)

	// ErrStoreUnavailable wraps every persistence failure, including timeouts.
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	ErrDuplicateEvent = errors.New(ErrMsgDuplicateEvent)
)

// StoreError wraps a driver error so callers can match ErrStoreUnavailable.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
