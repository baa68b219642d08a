package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// UserService implements registration, authentication and self-service
// profile management. Passwords are stored only as bcrypt hashes; tokens are
// opaque values managed by the TokenStore.
type UserService struct {
	users  ports.UserRepository
	tokens ports.TokenStore
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, tokens ports.TokenStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("email must be a valid address")
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.Invalid("password must be at least %d characters", domain.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Authenticate verifies credentials and issues a fresh token, replacing any
// prior one. Unknown email and wrong password collapse to the same error so
// the response never reveals which emails are registered.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AuthFailuresTotal.WithLabelValues("login").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthFailuresTotal.WithLabelValues("login").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	metrics.TokensIssuedTotal.Inc()
	return token, nil
}

func (s *UserService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("token").Inc()
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Token survived its account; treat it as invalid.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetSelf(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateSelf(ctx context.Context, userID string, input ports.UpdateSelfInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		if len(*input.Password) < domain.MinPasswordLength {
			return nil, domain.Invalid("password must be at least %d characters", domain.MinPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update user")
		return nil, err
	}
	return user, nil
}
