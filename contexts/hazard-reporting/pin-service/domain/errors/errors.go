package errors

import "errors"

var (
	ErrInvalidPinInput  = errors.New("invalid pin input")
	ErrInvalidVoteInput = errors.New("invalid verification input")
	ErrPinNotFound      = errors.New("pin not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateVote    = errors.New("user already voted on this pin")
)
