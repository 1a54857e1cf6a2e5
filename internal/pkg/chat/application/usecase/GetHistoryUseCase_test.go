package usecase

import (
	"context"
	"errors"
	"testing"

	chat "go-chatline/internal/pkg/chat/domain"
)

func TestGetHistoryUnknownCounterpart(t *testing.T) {
	uc := NewGetHistoryUseCase(newFakeUserRepo("alice"), newFakeChatRepo())

	_, err := uc.Execute(context.Background(), GetHistoryInput{RequesterID: "alice", CounterpartID: "ghost"})
	if !errors.Is(err, chat.ErrRecipientNotFound) {
		t.Fatalf("error = %v, want ErrRecipientNotFound", err)
	}
}

func TestGetHistoryNoConversationYieldsEmpty(t *testing.T) {
	uc := NewGetHistoryUseCase(newFakeUserRepo("alice", "bob"), newFakeChatRepo())

	msgs, err := uc.Execute(context.Background(), GetHistoryInput{RequesterID: "alice", CounterpartID: "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("got %d messages, want 0", len(msgs))
	}
}

func TestGetHistoryNewestFirstBothDirections(t *testing.T) {
	users := newFakeUserRepo("alice", "bob")
	repo := newFakeChatRepo()
	send := newSendUC(users, repo, &fakePusher{})
	uc := NewGetHistoryUseCase(users, repo)

	for _, m := range []struct{ from, to, content string }{
		{"alice", "bob", "first"},
		{"bob", "alice", "second"},
		{"alice", "bob", "third"},
	} {
		if _, err := send.Execute(context.Background(), SendMessageInput{SenderID: m.from, RecipientID: m.to, Content: m.content}); err != nil {
			t.Fatalf("send %q: %v", m.content, err)
		}
	}

	msgs, err := uc.Execute(context.Background(), GetHistoryInput{RequesterID: "bob", CounterpartID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"third", "second", "first"} {
		if msgs[i].Content != want {
			t.Fatalf("msgs[%d].Content = %q, want %q", i, msgs[i].Content, want)
		}
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].ID >= msgs[i-1].ID {
			t.Fatalf("IDs not strictly descending: %d then %d", msgs[i-1].ID, msgs[i].ID)
		}
	}
}

func TestGetHistoryPairIsolation(t *testing.T) {
	users := newFakeUserRepo("alice", "bob", "carol")
	repo := newFakeChatRepo()
	send := newSendUC(users, repo, &fakePusher{})
	uc := NewGetHistoryUseCase(users, repo)

	if _, err := send.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "bob", Content: "for bob"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := send.Execute(context.Background(), SendMessageInput{SenderID: "alice", RecipientID: "carol", Content: "for carol"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	msgs, err := uc.Execute(context.Background(), GetHistoryInput{RequesterID: "carol", CounterpartID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "for carol" {
		t.Fatalf("carol's thread = %+v, want only the message addressed to her", msgs)
	}
}

func TestListUsersPassthrough(t *testing.T) {
	users := newFakeUserRepo("alice", "bob")
	uc := NewListUsersUseCase(users)

	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d users, want 2", len(got))
	}
}

func TestListUsersPersistenceFailure(t *testing.T) {
	users := newFakeUserRepo()
	users.fail = true
	uc := NewListUsersUseCase(users)

	if _, err := uc.Execute(context.Background()); !errors.Is(err, ErrPersistence) {
		t.Fatalf("error = %v, want ErrPersistence", err)
	}
}
