package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache is a Redis read-through cache in front of the Mongo session
// repository.
type SessionCache struct {
	client *redis.Client
}

type SessionCacheEntry struct {
	Sessions  []*model.Session `json:"sessions"`
	UpdatedAt time.Time        `json:"updated_at"`
}

var GlobalSessionCache *SessionCache

const userSessionsTTL = 5 * time.Minute

// NewSessionCache connects to Redis and returns a session cache.
func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SessionCache{client: client}, nil
}

// SetSession caches one session with a TTL matching its expiry.
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session has already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := fmt.Sprintf("session:%s", session.SessionID)
	return sc.client.Set(context.Background(), key, data, ttl).Err()
}

// GetSession returns a cached session, or nil on a miss or expiry.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	key := fmt.Sprintf("session:%s", sessionID)
	data, err := sc.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from cache: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		sc.DeleteSession(sessionID)
		return nil, nil
	}
	return &session, nil
}

// DeleteSession removes a session from the cache.
func (sc *SessionCache) DeleteSession(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	key := fmt.Sprintf("session:%s", sessionID)
	return sc.client.Del(context.Background(), key).Err()
}

// CacheUserSessions stores a user's active session list for a short TTL.
func (sc *SessionCache) CacheUserSessions(userID string, sessions []*model.Session) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	entry := SessionCacheEntry{
		Sessions:  sessions,
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	key := fmt.Sprintf("user_sessions:%s", userID)
	return sc.client.Set(context.Background(), key, data, userSessionsTTL).Err()
}

// GetUserSessions returns the cached session list and whether it was found.
func (sc *SessionCache) GetUserSessions(userID string) ([]*model.Session, bool, error) {
	if userID == "" {
		return nil, false, fmt.Errorf("userID cannot be empty")
	}

	key := fmt.Sprintf("user_sessions:%s", userID)
	data, err := sc.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user sessions from cache: %w", err)
	}

	var entry SessionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}
	return entry.Sessions, true, nil
}

// InvalidateUserSessions drops the cached session list after a change.
func (sc *SessionCache) InvalidateUserSessions(userID string) error {
	key := fmt.Sprintf("user_sessions:%s", userID)
	return sc.client.Del(context.Background(), key).Err()
}

func (sc *SessionCache) IsConnected() bool {
	if sc == nil || sc.client == nil {
		return false
	}
	return sc.client.Ping(context.Background()).Err() == nil
}

// Close closes the Redis connection.
func (sc *SessionCache) Close() error {
	return sc.client.Close()
}
