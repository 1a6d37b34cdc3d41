package admin

import (
	"context"

	"github.com/msrpanel/msr-api/internal/domain/user"
	"github.com/msrpanel/msr-api/internal/pkg/password"
)

// AuthService handles panel login and logout
type AuthService struct {
	users    user.Repository
	jwtSvc   *JWTService
	denylist TokenDenylist
}

// NewAuthService creates the auth service
func NewAuthService(users user.Repository, jwtSvc *JWTService, denylist TokenDenylist) *AuthService {
	return &AuthService{users: users, jwtSvc: jwtSvc, denylist: denylist}
}

// Login authenticates by username and password and issues a token
func (s *AuthService) Login(ctx context.Context, username, pwd string) (*user.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !password.Verify(pwd, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !u.IsActive || !u.IsStaff {
		return nil, "", ErrAccountInactive
	}

	token, err := s.jwtSvc.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout revokes the access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return s.denylist.Revoke(ctx, jti, s.jwtSvc.TTL())
}
