package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lifetrack-health/lifetrack-backend/internal/models"
)

// UserStore persists user accounts.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns its id. The email column carries a
// unique constraint; violations surface as ErrDuplicateEmail so the insert
// and the existence check cannot race.
func (s *UserStore) Create(ctx context.Context, name, email, passwordHash string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id
	`, name, email, passwordHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetByEmail looks up a user by exact email match. Returns ErrNotFound when
// no account exists; login handlers collapse that with a bad password into
// one generic failure.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, created_at FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &u, nil
}
