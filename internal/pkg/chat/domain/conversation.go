package chat

import (
	"strings"
	"time"
)

// Conversation is a durable two-party message thread, uniquely identified by
// its unordered participant pair. It carries no state beyond identity and
// membership: created lazily on first contact, never deleted, membership
// immutable after creation.
type Conversation struct {
	ID        int64     `db:"id"`
	UserMin   string    `db:"user_min"`
	UserMax   string    `db:"user_max"`
	CreatedAt time.Time `db:"created_at"`
}

// PairKey canonicalizes an unordered user pair into (low, high) lexical
// order, so that (A,B) and (B,A) always address the same conversation row.
func PairKey(userA, userB string) (string, string) {
	if strings.Compare(userA, userB) > 0 {
		return userB, userA
	}
	return userA, userB
}
