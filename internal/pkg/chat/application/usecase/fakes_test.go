package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	chat "go-chatline/internal/pkg/chat/domain"
	userrepo "go-chatline/internal/repository/port"
)

var errStorageDown = errors.New("storage down")

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]userrepo.User
	fail  bool
}

func newFakeUserRepo(ids ...string) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]userrepo.User)}
	for _, id := range ids {
		r.users[id] = userrepo.User{ID: id, Username: "user-" + id}
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *userrepo.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStorageDown
	}
	user.ID = fmt.Sprintf("u%d", len(r.users)+1)
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorageDown
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorageDown
	}
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorageDown
	}
	out := make([]userrepo.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeChatRepo struct {
	mu         sync.Mutex
	nextConvID int64
	nextMsgID  int64
	convs      map[string]int64
	msgs       map[int64][]chat.Message
	failAppend bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		convs: make(map[string]int64),
		msgs:  make(map[int64][]chat.Message),
	}
}

func pairKeyString(userA, userB string) string {
	lo, hi := chat.PairKey(userA, userB)
	return lo + "|" + hi
}

func (r *fakeChatRepo) ResolveOrCreateConversation(ctx context.Context, userA, userB string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKeyString(userA, userB)
	if id, ok := r.convs[key]; ok {
		return id, nil
	}
	r.nextConvID++
	r.convs[key] = r.nextConvID
	return r.nextConvID, nil
}

func (r *fakeChatRepo) ResolveConversation(ctx context.Context, userA, userB string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.convs[pairKeyString(userA, userB)]
	if !ok {
		return 0, chat.ErrConversationNotFound
	}
	return id, nil
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, conversationID int64, authorID, content string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend {
		return 0, errStorageDown
	}
	r.nextMsgID++
	r.msgs[conversationID] = append(r.msgs[conversationID], chat.Message{
		ID:             r.nextMsgID,
		ConversationID: conversationID,
		AuthorID:       authorID,
		Content:        content,
		CreatedAt:      time.Now(),
	})
	return r.nextMsgID, nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, conversationID int64) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.msgs[conversationID]
	out := make([]chat.Message, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

func (r *fakeChatRepo) conversationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.convs)
}

func (r *fakeChatRepo) messageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, msgs := range r.msgs {
		n += len(msgs)
	}
	return n
}

type pushCall struct {
	userID      string
	excludeConn string
	event       chat.MessageEvent
}

type fakePusher struct {
	mu        sync.Mutex
	calls     []pushCall
	delivered int
}

func (p *fakePusher) PushMessage(userID string, excludeConnectionID string, ev chat.MessageEvent) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, pushCall{userID: userID, excludeConn: excludeConnectionID, event: ev})
	return p.delivered
}

func (p *fakePusher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
