package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenStore keeps opaque bearer tokens in Redis.
//
// Key layout:
//
//	token:<value>    -> user id   (expires after ttl)
//	user:<id>:token  -> value     (back-pointer so reissuing deletes the
//	                               previous token; one active token per user)
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client. A
// non-positive ttl falls back to defaultTokenTTL.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenStore{client: client, ttl: ttl}
}

// Issue binds a fresh random token to userID, replacing any prior token.
func (s *TokenStore) Issue(ctx context.Context, userID string) (string, error) {
	value, err := generateToken()
	if err != nil {
		return "", err
	}

	// Drop the previous token first so at most one token resolves to the
	// user at any point in time.
	prev, err := s.client.Get(ctx, userTokenKey(userID)).Result()
	if err == nil && prev != "" {
		if err := s.client.Del(ctx, tokenKey(prev)).Err(); err != nil {
			return "", fmt.Errorf("revoke previous token: %w", err)
		}
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("lookup previous token: %w", err)
	}

	if err := s.client.Set(ctx, tokenKey(value), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	if err := s.client.Set(ctx, userTokenKey(userID), value, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store token back-pointer: %w", err)
	}
	return value, nil
}

// Resolve maps a token to the user id it was issued for.
func (s *TokenStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("resolve token: %w", err)
	}
	return userID, nil
}

// generateToken returns 32 random bytes hex-encoded: opaque, unguessable,
// carrying no claims.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func tokenKey(value string) string {
	return "token:" + value
}

func userTokenKey(userID string) string {
	return "user:" + userID + ":token"
}
