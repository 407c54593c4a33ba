package service

import (
	"errors"
	"fmt"
)

// Validation errors: rejected before any write.
var (
	ErrInvalidGroupName  = errors.New("group name must not be empty")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrEmptySplits       = errors.New("expense must have at least one split")
	ErrInvalidSplitSum   = errors.New("split shares must sum to the expense amount")
	ErrSelfSettlement    = errors.New("cannot settle with yourself")
	ErrMissingFields     = errors.New("email and name must not be empty")
)

// Authorization errors: the principal is known but not allowed.
var (
	ErrNotAGroupMember = errors.New("user is not a member of the group")
	ErrNotGroupAdmin   = errors.New("only a group admin may do this")
	ErrNotParticipant  = errors.New("only expense participants may view it")
)

// Conflict errors.
var (
	ErrGroupHasExpenses = errors.New("group still has expenses recorded against it")
	ErrCreatorRemoval   = errors.New("the group creator cannot be removed")
)

// UnknownUserError is a reference error naming the first offending
// user ID, so the caller can pinpoint it.
type UnknownUserError struct {
	ID string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user: %s", e.ID)
}

// UnknownParticipantError is a reference error for a split participant
// or payer that does not resolve to a user.
type UnknownParticipantError struct {
	ID string
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("unknown participant: %s", e.ID)
}

// UnknownGroupError is a reference error for a group ID supplied in a
// request body that does not resolve to a group.
type UnknownGroupError struct {
	ID string
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown group: %s", e.ID)
}

// DuplicateSplitUserError is a validation error naming a user listed
// more than once in an expense's splits.
type DuplicateSplitUserError struct {
	ID string
}

func (e *DuplicateSplitUserError) Error() string {
	return fmt.Sprintf("user listed more than once in splits: %s", e.ID)
}
