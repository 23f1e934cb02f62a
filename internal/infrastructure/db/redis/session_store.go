package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore implements ports.SessionStore. Each session is a JSON value
// under session:<token> carrying its own expiry.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session, ttl time.Duration) error {
	if sess.Token == "" {
		return fmt.Errorf("save session: empty token")
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("save session: encode: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+sess.Token, raw, ttl).Err(); err != nil {
		return storeErr("save session", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, storeErr("get session", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// Unreadable values resolve as no session.
		return domain.Session{}, domain.ErrNotFound
	}
	sess.Token = token
	return sess, nil
}

// Delete removes the session. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return storeErr("delete session", err)
	}
	return nil
}
