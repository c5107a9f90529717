package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days. A session is a capability token valid until
	// explicit logout; there is no refresh flow.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping.
	UserSessionKeyPrefix = "user_session:"
)

// SessionData is the payload set at login and carried for the session's
// lifetime: user id, display name and email.
type SessionData struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// SessionStore keeps bearer-token sessions in Redis.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create issues a new session token for a user. Any existing session for the
// same user is invalidated first, so the 7-day timer resets at each login.
func (s *SessionStore) Create(ctx context.Context, data SessionData) (string, error) {
	if err := s.invalidateUserSession(ctx, data.UserID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, SessionKeyPrefix+token, payload, SessionDuration).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := s.rdb.Set(ctx, userSessionKey(data.UserID), token, SessionDuration).Err(); err != nil {
		return "", fmt.Errorf("store user session mapping: %w", err)
	}

	return token, nil
}

// Validate checks a session token and returns its payload. The bool reports
// whether the session is valid; an invalid token is not an error.
func (s *SessionStore) Validate(ctx context.Context, token string) (*SessionData, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	payload, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var data SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, false, err
	}
	return &data, true, nil
}

// Invalidate removes a session and its user mapping (logout).
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	payload, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Bytes()
	if err == nil {
		var data SessionData
		if json.Unmarshal(payload, &data) == nil {
			s.rdb.Del(ctx, userSessionKey(data.UserID))
		}
	}

	return s.rdb.Del(ctx, SessionKeyPrefix+token).Err()
}

func (s *SessionStore) invalidateUserSession(ctx context.Context, userID int64) error {
	token, err := s.rdb.Get(ctx, userSessionKey(userID)).Result()
	if err == nil && token != "" {
		s.rdb.Del(ctx, SessionKeyPrefix+token)
	}
	if err := s.rdb.Del(ctx, userSessionKey(userID)).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}

func userSessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", UserSessionKeyPrefix, userID)
}
