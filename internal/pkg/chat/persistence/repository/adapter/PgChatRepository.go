package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "go-chatline/internal/pkg/chat/domain"
	repository "go-chatline/internal/pkg/chat/persistence/repository/port"
)

// PgChatRepository implements the conversation store and message log over a
// pgx pool. Pair uniqueness relies on the UNIQUE (user_min, user_max)
// constraint on conversations; see database.EnsureSchema.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) ResolveOrCreateConversation(ctx context.Context, userA, userB string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	lo, hi := chat.PairKey(userA, userB)

	// Fast path: the pair already has a conversation.
	id, err := r.resolvePair(ctx, lo, hi)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, chat.ErrConversationNotFound) {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (user_min, user_max)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (user_min, user_max) DO NOTHING
		RETURNING id
	`, lo, hi).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the creation race: the other caller's row survives.
		return r.resolvePair(ctx, lo, hi)
	}
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO conversation_members (conversation_id, user_id)
		VALUES ($1, $2::uuid), ($1, $3::uuid)
		ON CONFLICT (conversation_id, user_id) DO NOTHING
	`, id, lo, hi)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgChatRepository) ResolveConversation(ctx context.Context, userA, userB string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	lo, hi := chat.PairKey(userA, userB)
	return r.resolvePair(ctx, lo, hi)
}

func (r *PgChatRepository) resolvePair(ctx context.Context, lo, hi string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM conversations
		WHERE user_min = $1::uuid AND user_max = $2::uuid
	`, lo, hi).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, chat.ErrConversationNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgChatRepository) AppendMessage(ctx context.Context, conversationID int64, authorID, content string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgChatRepository: nil pool")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, author_id, content)
		VALUES ($1, $2::uuid, $3)
		RETURNING id
	`, conversationID, authorID, content).Scan(&id)
	return id, err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID int64) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, author_id::text, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY id DESC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.AuthorID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}
