package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Authenticate verifies a username/password pair for login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	user, err := s.Store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// AuthorizeAction re-checks a live credential against the stored hash
// and requires the user's role to be in requiredRoles. A false result
// is a declined action, not a fault; only storage failures surface as
// errors.
func (s *Service) AuthorizeAction(ctx context.Context, username, submittedCredential string, requiredRoles []string) (bool, error) {
	user, err := s.Store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if !RoleIn(user.RoleName, requiredRoles) {
		return false, nil
	}
	if err := CheckPassword(user.PasswordHash, submittedCredential); err != nil {
		return false, nil
	}
	return true, nil
}
