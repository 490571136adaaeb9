// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/constants"
)

// redisSessionRepository implements [SessionRepository] on Redis. The key TTL
// doubles as the session expiry, so expired sessions clean themselves up.
type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository constructs a Redis backed session store.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func (repository *redisSessionRepository) Save(context context.Context, tokenHash string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return apperr.Internal(fmt.Errorf("marshal session: %w", err))
	}

	err = repository.client.Set(context, sessionKey(tokenHash), payload, constants.RefreshTokenTTL).Err()
	if err != nil {
		return apperr.Upstream("Session store", err)
	}
	return nil
}

func (repository *redisSessionRepository) Find(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, apperr.Upstream("Session store", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("unmarshal session: %w", err))
	}
	return session, nil
}

func (repository *redisSessionRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return apperr.Upstream("Session store", err)
	}
	return nil
}
