package messages

import "errors"

var (
	ErrValidation     = errors.New("invalid message request")
	ErrNotFound       = errors.New("conversation not found")
	ErrNotParticipant = errors.New("user is not a participant of this conversation")
	ErrSelfChat       = errors.New("cannot open a conversation with yourself")
	ErrNotCoworkers   = errors.New("users do not share a job")
	ErrNotEmployee    = errors.New("user is not an employee of this business")
)
