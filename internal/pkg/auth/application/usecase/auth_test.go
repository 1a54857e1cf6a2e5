package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go-chatline/internal/pkg/auth"
	userrepo "go-chatline/internal/repository/port"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]userrepo.User
	fail  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]userrepo.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *userrepo.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("storage down")
	}
	user.ID = fmt.Sprintf("u%d", len(r.users)+1)
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*userrepo.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
		return nil, errors.New("storage down")
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
	out := make([]userrepo.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func TestSignupHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewSignupUseCase(repo)

	user, err := uc.Execute(context.Background(), SignupInput{Username: "alice", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("user ID not assigned")
	}
	if user.PasswordHash == "s3cret!" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewSignupUseCase(repo)

	if _, err := uc.Execute(context.Background(), SignupInput{Username: "alice", Password: "pw-one"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := uc.Execute(context.Background(), SignupInput{Username: "alice", Password: "pw-two"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("error = %v, want ErrUsernameTaken", err)
	}
}

func TestSignupMissingFields(t *testing.T) {
	uc := NewSignupUseCase(newFakeUserRepo())
	if _, err := uc.Execute(context.Background(), SignupInput{Username: "alice"}); err == nil {
		t.Fatal("expected error for missing password")
	}
	if _, err := uc.Execute(context.Background(), SignupInput{Password: "pw"}); err == nil {
		t.Fatal("expected error for missing username")
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := auth.NewTokenIssuer("test-secret", time.Minute)

	user, err := NewSignupUseCase(repo).Execute(context.Background(), SignupInput{Username: "alice", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	res, err := NewLoginUseCase(repo, issuer).Execute(context.Background(), LoginInput{Username: "alice", Password: "s3cret!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.UserID != user.ID {
		t.Fatalf("UserID = %q, want %q", res.UserID, user.ID)
	}

	identity, err := issuer.Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.UserID != user.ID || identity.Username != "alice" {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := auth.NewTokenIssuer("test-secret", time.Minute)
	uc := NewLoginUseCase(repo, issuer)

	if _, err := NewSignupUseCase(repo).Execute(context.Background(), SignupInput{Username: "alice", Password: "s3cret!"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// Wrong password and unknown user yield the same error.
	if _, err := uc.Execute(context.Background(), LoginInput{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := uc.Execute(context.Background(), LoginInput{Username: "nobody", Password: "s3cret!"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}
