// Package session keeps one wizard controller per browser tab. Sessions
// live in memory only; the least recently used is evicted once the store
// is full, and idle ones expire after the TTL.
package session

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"react2android/internal/wizard"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultMaxSessions = 1024
	DefaultTTL         = 2 * time.Hour
)

type Store struct {
	cache *expirable.LRU[string, *wizard.Controller]
	build func() *wizard.Controller
	log   *slog.Logger
}

// New returns a store that creates controllers with build.
func New(build func() *wizard.Controller, maxSessions int, ttl time.Duration, log *slog.Logger) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Store{build: build, log: log.With("component", "session")}
	s.cache = expirable.NewLRU[string, *wizard.Controller](maxSessions, func(id string, _ *wizard.Controller) {
		s.log.Debug("session evicted", "session_id", id)
	}, ttl)
	return s
}

// Create starts a fresh session and returns its id.
func (s *Store) Create() (string, *wizard.Controller) {
	id := uuid.NewString()
	c := s.build()
	s.cache.Add(id, c)
	s.log.Info("session created", "session_id", id, "sessions", s.cache.Len())
	return id, c
}

// Get returns the session and renews its expiry.
func (s *Store) Get(id string) (*wizard.Controller, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	c, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.cache.Add(id, c)
	return c, nil
}

func (s *Store) Delete(id string) error {
	if !s.cache.Remove(strings.TrimSpace(id)) {
		return ErrSessionNotFound
	}
	return nil
}

func (s *Store) Len() int {
	return s.cache.Len()
}
