package poll_errors

import "errors"

// Common errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrAlreadyVoted     = errors.New("you have already voted on this poll")
	ErrAlreadyResponded = errors.New("you have already responded to this poll")
	ErrNotTextPoll      = errors.New("this poll does not accept text responses")
	ErrPollTypeLocked   = errors.New("poll type cannot be changed once submissions exist")
	ErrRateLimited      = errors.New("rate limited")
)
