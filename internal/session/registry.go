package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kisansetu/internal/cart"
	"kisansetu/internal/checkout"
)

var ErrSessionNotFound = errors.New("session not found")

type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
	Checkout      checkout.Config
}

// Registry owns every live shopper session and expires idle ones.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
	logger   *zap.SugaredLogger
	now      func() time.Time

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewRegistry(cfg Config, logger *zap.SugaredLogger) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.Checkout.Logger == nil {
		cfg.Checkout.Logger = logger
	}

	r := &Registry{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	r.wg.Add(1)
	go r.janitor()
	return r
}

func (r *Registry) janitor() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			if n := r.expire(); n > 0 {
				r.logger.Infow("expired idle sessions", "count", n)
			}
		}
	}
}

// expire removes sessions idle longer than the TTL and returns how many went.
func (r *Registry) expire() int {
	cutoff := r.now().Add(-r.cfg.TTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		// a session in use is not idle
		if !s.mu.TryLock() {
			continue
		}
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Create registers a new empty session and returns its id.
func (r *Registry) Create() string {
	now := r.now()
	s := &Session{
		id:       uuid.NewString(),
		cart:     cart.NewLedger(),
		created:  now,
		lastSeen: now,
	}
	ckCfg := r.cfg.Checkout
	s.newCheckout = func(id string, c checkout.Cart) *checkout.Session {
		return checkout.New(id, c, ckCfg)
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	r.logger.Debugw("session created", "session_id", s.id)
	return s.id
}

// With runs fn while holding the session's lock, so calls for one shopper never
// interleave.
func (r *Registry) With(id string, fn func(*Session) error) error {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = r.now()
	return fn(s)
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops the janitor. It is safe to call more than once.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.done) })
	r.wg.Wait()
}

func checkoutID(sessionID string, seq int) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s-%d", short, seq)
}
