// Package cartstore keeps one selection cart per price list page visit.
package cartstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moto-repaint-backend/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

type entry struct {
	mu       sync.Mutex
	cart     *domain.Cart
	lastSeen time.Time
	// set under mu once the entry leaves the map
	detached bool
}

// update applies fn unless the entry was taken, swept or discarded while the
// caller waited for the lock.
func (e *entry) update(now time.Time, fn func(c *domain.Cart) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return ErrCartNotFound
	}
	e.lastSeen = now
	return fn(e.cart)
}

func (e *entry) detach() {
	e.mu.Lock()
	e.detached = true
	e.mu.Unlock()
}

// Store maps visit ids to carts. Carts idle for longer than the TTL are
// treated as abandoned pages and dropped by Sweep.
type Store struct {
	mu    sync.Mutex
	carts map[string]*entry
	ttl   time.Duration
	now   func() time.Time
	log   *zap.Logger
}

func New(ttl time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		carts: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
}

// Create starts an empty cart for a new page visit.
func (s *Store) Create() string {
	id := uuid.New().String()
	s.mu.Lock()
	s.carts[id] = &entry{cart: domain.NewCart(), lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

func (s *Store) get(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return e, nil
}

// Update runs fn with exclusive access to the cart. Mutations to one cart are
// applied one at a time.
func (s *Store) Update(id string, fn func(c *domain.Cart) error) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	return e.update(s.now(), fn)
}

// View runs fn on the cart without counting as a mutation.
func (s *Store) View(id string, fn func(c *domain.Cart)) error {
	return s.Update(id, func(c *domain.Cart) error {
		fn(c)
		return nil
	})
}

// Take removes the cart and returns it, used when the visitor proceeds to
// the project request page.
func (s *Store) Take(id string) (*domain.Cart, error) {
	s.mu.Lock()
	e, ok := s.carts[id]
	if ok {
		delete(s.carts, id)
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrCartNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detached = true
	return e.cart, nil
}

// Discard drops the cart; unknown ids are ignored.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	e, ok := s.carts[id]
	delete(s.carts, id)
	s.mu.Unlock()
	if ok {
		e.detach()
	}
}

// Len is the number of live carts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Sweep drops carts idle since before now-TTL and returns how many went.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.carts {
		e.mu.Lock()
		idle := e.lastSeen.Before(cutoff)
		if idle {
			e.detached = true
		}
		e.mu.Unlock()
		if idle {
			delete(s.carts, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.log.Debug("swept abandoned carts", zap.Int("count", n), zap.Int("remaining", s.Len()))
			}
		}
	}
}
