package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions keeps in-progress wizards in memory. Drafts idle for longer than
// the TTL are abandoned; nothing about them is persisted.
type Sessions struct {
	mu      sync.Mutex
	items   map[string]*entry
	ttl     time.Duration
	factory func() *Wizard
	now     func() time.Time
	log     *zap.Logger
}

type entry struct {
	wizard   *Wizard
	lastSeen time.Time
}

func NewSessions(ttl time.Duration, factory func() *Wizard, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{
		items:   make(map[string]*entry),
		ttl:     ttl,
		factory: factory,
		now:     time.Now,
		log:     log,
	}
}

func (s *Sessions) Start() (string, *Wizard) {
	id := uuid.NewString()
	w := s.factory()

	s.mu.Lock()
	s.items[id] = &entry{wizard: w, lastSeen: s.now()}
	s.mu.Unlock()
	return id, w
}

func (s *Sessions) Get(id string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e.wizard, nil
}

func (s *Sessions) Abandon(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops idle sessions and returns how many were removed. A wizard with
// a submission in flight is kept.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.items {
		if e.lastSeen.Before(cutoff) && !e.wizard.Busy() {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("abandoned booking sessions swept", zap.Int("count", n))
			}
		}
	}
}
