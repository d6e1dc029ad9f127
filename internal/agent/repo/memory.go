package repo

import (
	"context"
	"sync"

	"github.com/autostream-agent/server/internal/agent/model"
)

// MemorySessionRepository keeps sessions resident for the process lifetime.
// GetOrCreate returns a deep copy so callers can stage a turn's mutations and
// apply them with a single Commit.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	locks    *lockTable
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*model.Session),
		locks:    newLockTable(),
	}
}

func (r *MemorySessionRepository) GetOrCreate(_ context.Context, threadID string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[threadID]
	if !ok {
		s = model.NewSession(threadID)
		r.sessions[threadID] = s
	}
	return s.Clone(), nil
}

func (r *MemorySessionRepository) Commit(_ context.Context, threadID string, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[threadID] = s.Clone()
	return nil
}

func (r *MemorySessionRepository) Lock(threadID string) (unlock func()) {
	return r.locks.acquire(threadID)
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
