package chat

import (
	"time"
)

// Message is an immutable, append-only log entry in a conversation. The ID is
// assigned by storage and monotonically increasing; it doubles as the
// ordering key. Content is opaque, untrusted text of arbitrary length: size
// and content policy are a transport-layer concern.
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	AuthorID       string    `db:"author_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

// MessageEvent is the push notification delivered to each of the recipient's
// live connections when a message is routed.
type MessageEvent struct {
	SenderID  string
	MessageID int64
	Content   string
}
