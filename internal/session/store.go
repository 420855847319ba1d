package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// Store 刷新令牌会话存储
// 每个用户至多一条会话记录，重新登录会轮换掉旧的刷新令牌
type Store interface {
	// Save 保存用户的刷新令牌，ttl 到期后自动失效
	Save(ctx context.Context, userID int64, refreshToken string, ttl time.Duration) error
	// Get 读取用户当前的刷新令牌
	Get(ctx context.Context, userID int64) (string, error)
	// Delete 删除用户会话（登出）
	Delete(ctx context.Context, userID int64) error
}

// RedisStore 基于 Redis 的会话存储，键带 TTL
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

func (s *RedisStore) Save(ctx context.Context, userID int64, refreshToken string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(userID), refreshToken, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (string, error) {
	val, err := s.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore 内存实现（测试用）
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, userID int64, refreshToken string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = memoryEntry{token: refreshToken, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, userID)
		return "", ErrNotFound
	}
	return entry.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
