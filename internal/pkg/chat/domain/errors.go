package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	// ErrRecipientNotFound is returned when a message or history request
	// names a user that does not exist in the directory.
	ErrRecipientNotFound = errors.New("chat: recipient not found")

	// ErrConversationNotFound is returned by read-only pair resolution when
	// the pair has never exchanged a message. History callers translate it
	// into an empty result.
	ErrConversationNotFound = errors.New("chat: conversation not found")
)
