package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repository "go-chatline/internal/repository/port"
)

// PgUserRepository implements the user directory over a pgx pool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ repository.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) Create(ctx context.Context, user *repository.User) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id::text, created_at
	`, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*repository.User, error) {
	return r.findOne(ctx, `
		SELECT id::text, username, password_hash, created_at
		FROM users
		WHERE id = $1::uuid
	`, id)
}

func (r *PgUserRepository) FindByUsername(ctx context.Context, username string) (*repository.User, error) {
	return r.findOne(ctx, `
		SELECT id::text, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)
}

func (r *PgUserRepository) List(ctx context.Context) ([]repository.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, username, password_hash, created_at
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []repository.User
	for rows.Next() {
		var u repository.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}

func (r *PgUserRepository) findOne(ctx context.Context, query string, arg any) (*repository.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var u repository.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
