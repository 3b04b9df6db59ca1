package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session state is the playlist plus cursor for one interactive session,
// keyed by a session ID. The Redis-backed store is the production path;
// the in-memory store serves development setups without Redis. Access is
// effectively single-threaded per session, but the stores themselves are
// safe for concurrent use across sessions.

// sessionTTL bounds how long an abandoned session's playlist survives.
const sessionTTL = 24 * time.Hour

// ErrNoPlaylist is returned when a session has no stored playlist.
var ErrNoPlaylist = errors.New("no playlist exists for this session")

type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*Playlist, error)
	Set(ctx context.Context, sessionID string, playlist *Playlist) error
	Delete(ctx context.Context, sessionID string) error
}

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
	}
}

func sessionKey(sessionID string) string {
	return "playlist:" + sessionID
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*Playlist, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrNoPlaylist
	}
	if err != nil {
		return nil, err
	}

	var playlist Playlist
	if err := json.Unmarshal([]byte(data), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, playlist *Playlist) error {
	p, err := json.Marshal(playlist)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID), p, sessionTTL).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

// memorySessionStore keeps playlists in process memory. Used when no
// REDIS_URL is configured.
type memorySessionStore struct {
	mu        sync.RWMutex
	playlists map[string]*Playlist
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		playlists: make(map[string]*Playlist),
	}
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playlist, ok := s.playlists[sessionID]
	if !ok {
		return nil, ErrNoPlaylist
	}
	copied := *playlist
	copied.Items = append([]VideoResult(nil), playlist.Items...)
	return &copied, nil
}

func (s *memorySessionStore) Set(_ context.Context, sessionID string, playlist *Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *playlist
	copied.Items = append([]VideoResult(nil), playlist.Items...)
	s.playlists[sessionID] = &copied
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.playlists, sessionID)
	return nil
}
