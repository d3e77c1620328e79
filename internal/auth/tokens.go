package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

const (
	tokenKeyPrefix   = "hub:token:"
	refreshKeyPrefix = "hub:refresh:"
)

// TokenStore keeps issued bearer and refresh tokens in Redis so they expire
// server-side and survive API restarts.
type TokenStore struct {
	client     *redis.Client
	ttl        time.Duration
	refreshTTL time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl, refreshTTL time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl, refreshTTL: refreshTTL}
}

// Issue creates a bearer token bound to the user.
func (ts *TokenStore) Issue(ctx context.Context, user models.User) (string, error) {
	return ts.issue(ctx, tokenKeyPrefix, user, ts.ttl)
}

// IssueRefresh creates a refresh token bound to the user.
func (ts *TokenStore) IssueRefresh(ctx context.Context, user models.User) (string, error) {
	return ts.issue(ctx, refreshKeyPrefix, user, ts.refreshTTL)
}

func (ts *TokenStore) issue(ctx context.Context, prefix string, user models.User, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("auth: marshal token payload: %w", err)
	}
	token := uuid.NewString()
	if err := ts.client.Set(ctx, prefix+token, payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store token: %w", err)
	}
	return token, nil
}

// Validate resolves a bearer token to its user. Unknown or expired tokens
// yield httpx.ErrUnauthorized.
func (ts *TokenStore) Validate(ctx context.Context, token string) (*models.User, error) {
	return ts.validate(ctx, tokenKeyPrefix, token)
}

// ValidateRefresh resolves a refresh token to its user.
func (ts *TokenStore) ValidateRefresh(ctx context.Context, token string) (*models.User, error) {
	return ts.validate(ctx, refreshKeyPrefix, token)
}

func (ts *TokenStore) validate(ctx context.Context, prefix, token string) (*models.User, error) {
	if token == "" {
		return nil, httpx.ErrUnauthorized
	}
	payload, err := ts.client.Get(ctx, prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, httpx.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth: load token: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, httpx.ErrUnauthorized
	}
	return &user, nil
}

// Revoke removes a bearer token.
func (ts *TokenStore) Revoke(ctx context.Context, token string) error {
	return ts.client.Del(ctx, tokenKeyPrefix+token).Err()
}

// RevokeRefresh removes a refresh token.
func (ts *TokenStore) RevokeRefresh(ctx context.Context, token string) error {
	return ts.client.Del(ctx, refreshKeyPrefix+token).Err()
}
