package domain

import (
	"errors"

	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
)

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user not found")
	ErrLedgerNotFound = errors.New("ledger not found")
	ErrNameRequired   = errors.New("name is required")
	ErrNameTooLong    = errors.New("name exceeds maximum length")
)

// Transaction validation errors. Pattern, type and date-range errors are the
// recurrence package's sentinels so errors.Is works across the boundary.
var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrPurposeTooLong         = errors.New("purpose exceeds maximum length")
	ErrContactTooLong         = errors.New("contact field exceeds maximum length")
	ErrInvalidAmount          = errors.New("amount must be zero or positive")
	ErrInvalidTransactionType = recurrence.ErrInvalidKind
	ErrInvalidRepeatPattern   = recurrence.ErrInvalidPattern
	ErrMalformedDateRange     = recurrence.ErrMalformedDateRange
)

// Export errors
var (
	ErrStorageDisabled = errors.New("statement storage is not configured")
)

// Group errors
var (
	ErrGroupNameTaken     = errors.New("group name already taken")
	ErrPasswordRequired   = errors.New("password is required")
	ErrWrongGroupPassword = errors.New("wrong group password")
	ErrAlreadyMember      = errors.New("already a member of this group")
	ErrNotMember          = errors.New("not a member of this group")
	ErrTooManyAttempts    = errors.New("too many attempts")
)

// Validation constants
const (
	MaxTransactionNameLength    = 200
	MaxTransactionPurposeLength = 200
	MaxTelephoneLength          = 20
	MaxContactLength            = 254
	MaxGroupNameLength          = 50
	MinGroupPasswordLength      = 4
	MaxGroupPasswordLength      = 72
)
