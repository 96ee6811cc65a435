package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhishek622/interviewPrep/pkg/model"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps live interview sessions. Implementations return copies, so a
// caller mutating a session must Save it back.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Save(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

const sweepInterval = time.Minute

// MemoryStore is a process-local Store with per-entry expiry. Expired
// entries are dropped on read and by a sweep that runs at most once per
// sweepInterval during Save.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	m         map[uuid.UUID]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl: ttl,
		m:   make(map[uuid.UUID]memoryEntry),
		now: time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*model.Session, error) {
	s.mu.Lock()
	e, ok := s.m[id]
	if ok && s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.m, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var out model.Session
	if err := json.Unmarshal(e.data, &out); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *model.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	s.mu.Lock()
	now := s.now()
	s.sweep(now)
	s.m[sess.SessionID] = memoryEntry{data: b, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// sweep must be called with s.mu held.
func (s *MemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for id, e := range s.m {
		if now.After(e.expiresAt) {
			delete(s.m, id)
		}
	}
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.m, id)
	return nil
}
