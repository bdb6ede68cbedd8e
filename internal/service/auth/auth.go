// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/gryphathie/KombuchaApp/internal/domain/user"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"
	"github.com/gryphathie/KombuchaApp/internal/pkg/token"
	"github.com/gryphathie/KombuchaApp/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo *postgres.UserRepository
	tokens   *token.Manager
	logger   *zap.Logger
}

func NewAuthService(userRepo *postgres.UserRepository, tokens *token.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies the operator's credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return nil, xerrors.ErrUnauthorized
	}

	signed, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("operator logged in", zap.Int64("user_id", u.ID))

	return &user.LoginResponse{Token: signed, User: *u}, nil
}

// ValidateToken checks a bearer token and returns its claims.
func (s *AuthService) ValidateToken(raw string) (*token.Claims, error) {
	return s.tokens.Verify(raw)
}

// EnsureOperatorExists creates the bootstrap operator account if no account
// with the given email exists yet.
func (s *AuthService) EnsureOperatorExists(ctx context.Context, email, password, fullName string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !xerrors.Is(err, xerrors.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create operator account: %w", err)
	}

	s.logger.Info("bootstrap operator created", zap.String("email", email))
	return nil
}
