package auth

import (
	"context"

	"hris/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type StoreAPI interface {
	UserByUsername(ctx context.Context, username string) (User, error)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role_name, created_at
    FROM users
    WHERE username = $1
  `, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.RoleName, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
