// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/tasklist/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] with one Redis hash per user.
//
// # Layout
//
//	auth:session:<userID>  field <tokenHash>  value <expiresAt epoch seconds>
//
// HSET of a single field is atomic, so concurrent logins never lose a session.
// Keys carry no TTL: expired sessions are kept and rejected at validation time.
type RedisSessionRepository struct {
	client redis.UniversalClient
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
func NewRedisSessionRepository(client redis.UniversalClient) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(userID string) string {
	return constants.RedisPrefixSession + userID
}

/*
Append records one session under the user's hash.

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Append(context context.Context, userID string, session Session) error {
	value := strconv.FormatInt(session.ExpiresAt, 10)
	if err := repository.client.HSet(context, sessionKey(userID), session.TokenHash, value).Err(); err != nil {
		return fmt.Errorf("redis_session_append_failed: %w", err)
	}
	return nil
}

/*
ListByUser returns the user's sessions ordered by expiry, which is issuance
order under a fixed lifetime.

Returns:
  - []Session: possibly empty
  - error: Retrieval or decoding failures
*/
func (repository *RedisSessionRepository) ListByUser(context context.Context, userID string) ([]Session, error) {
	entries, err := repository.client.HGetAll(context, sessionKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_session_list_failed: %w", err)
	}

	sessions := make([]Session, 0, len(entries))
	for tokenHash, raw := range entries {
		expiresAt, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
		}
		sessions = append(sessions, Session{TokenHash: tokenHash, ExpiresAt: expiresAt})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].ExpiresAt != sessions[j].ExpiresAt {
			return sessions[i].ExpiresAt < sessions[j].ExpiresAt
		}
		return sessions[i].TokenHash < sessions[j].TokenHash
	})

	return sessions, nil
}

/*
Exists reports whether the user's hash has a field for tokenHash.

Returns:
  - bool: true when the pair is recorded
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Exists(context context.Context, userID, tokenHash string) (bool, error) {
	found, err := repository.client.HExists(context, sessionKey(userID), tokenHash).Result()
	if err != nil {
		return false, fmt.Errorf("redis_session_exists_failed: %w", err)
	}
	return found, nil
}
