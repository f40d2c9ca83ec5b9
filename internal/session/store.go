// Package session implements the browser session service: a key/value
// store scoped to a session ID, carrying the `is_user` flag and `user`
// identity for the duration of a browser session, plus the signed cookie
// token that ties a browser to its server-side session.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Well-known session keys. Session identity is the sole authorization
// gate for queueing and watching.
const (
	KeyIsUser = "is_user"
	KeyUser   = "user"
)

// Store is the session service contract: per-session get/set/clear.
// Values are strings; the is_user flag is stored as "1".
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Clear(ctx context.Context, sid string) error
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RedisStore keeps each session as a Redis hash under sess:<sid>, expiring
// after the configured TTL. Every write refreshes the expiry so active
// browsers keep their session alive.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(sid string) string { return "sess:" + sid }

func (s *RedisStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.key(sid), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	if err := s.rdb.HSet(ctx, s.key(sid), key, value).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, s.key(sid), s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.key(sid)).Err()
}

// MemoryStore is the fallback when no Redis server is reachable, and the
// store handler tests run against. Sessions expire lazily on read.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]*memorySession
}

type memorySession struct {
	values  map[string]string
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, data: make(map[string]*memorySession)}
}

func (s *MemoryStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.live(sid)
	if !ok {
		return "", false, nil
	}
	v, ok := sess.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, sid, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.live(sid)
	if !ok {
		sess = &memorySession{values: make(map[string]string)}
		s.data[sid] = sess
	}
	sess.values[key] = value
	sess.expires = time.Now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sid)
	return nil
}

// live returns the session if present and unexpired, dropping it otherwise.
// Caller holds the lock.
func (s *MemoryStore) live(sid string) (*memorySession, bool) {
	sess, ok := s.data[sid]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.expires) {
		delete(s.data, sid)
		return nil, false
	}
	return sess, true
}
