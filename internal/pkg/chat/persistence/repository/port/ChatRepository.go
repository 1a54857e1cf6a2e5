package repository

import (
	"context"

	chat "go-chatline/internal/pkg/chat/domain"
)

// ChatRepository defines persistence for conversations and their append-only
// message log.
type ChatRepository interface {
	// ResolveOrCreateConversation returns the ID of the conversation for the
	// unordered pair (userA, userB), creating it on first contact. It is
	// idempotent and race-safe: concurrent first contacts for the same pair
	// all resolve to the single surviving conversation. Calls for different
	// pairs never serialize against each other.
	ResolveOrCreateConversation(ctx context.Context, userA, userB string) (int64, error)

	// ResolveConversation is the read-only variant used by history queries.
	// Returns chat.ErrConversationNotFound when the pair has no conversation.
	ResolveConversation(ctx context.Context, userA, userB string) (int64, error)

	// AppendMessage persists a new message and returns its storage-assigned,
	// monotonically increasing ID.
	AppendMessage(ctx context.Context, conversationID int64, authorID, content string) (int64, error)

	// ListMessages returns the conversation's messages ordered by descending
	// ID (newest first). No pagination: the result is unbounded.
	ListMessages(ctx context.Context, conversationID int64) ([]chat.Message, error)
}
