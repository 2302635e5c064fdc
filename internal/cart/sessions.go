package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"GlowMart/internal/kv"
	"GlowMart/internal/notify"
)

const (
	defaultIdleTTL = 30 * time.Minute
	sweepEvery     = time.Minute
	loadTimeout    = 5 * time.Second
)

type SessionOptions struct {
	// Notifier receives every notification from every session, in addition
	// to the per-request recorder.
	Notifier notify.Notifier
	Log      *zap.Logger
	// IdleTTL is how long an untouched Store stays cached. Its state is
	// already in kv, so eviction only costs a reload.
	IdleTTL time.Duration
	Now     func() time.Time
}

type sessionEntry struct {
	store    *Store
	lastUsed time.Time
}

// Sessions hands out one Store per shopper session, loading it from kv on
// first use.
type Sessions struct {
	mu        sync.Mutex
	kv        kv.Store
	entries   map[string]*sessionEntry
	lastSweep time.Time
	loads     singleflight.Group

	notifier notify.Notifier
	log      *zap.Logger
	idleTTL  time.Duration
	now      func() time.Time
}

func NewSessions(store kv.Store, opts SessionOptions) *Sessions {
	s := &Sessions{
		kv:       store,
		entries:  make(map[string]*sessionEntry),
		notifier: notify.Multi(notify.ContextSink, opts.Notifier),
		log:      opts.Log,
		idleTTL:  opts.IdleTTL,
		now:      opts.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.idleTTL <= 0 {
		s.idleTTL = defaultIdleTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Get returns the session's Store. Concurrent first requests for one session
// share a single load, which outlives any one caller giving up on it.
func (s *Sessions) Get(ctx context.Context, id string) (*Store, error) {
	if st, ok := s.cached(id); ok {
		return st, nil
	}

	ch := s.loads.DoChan(id, func() (any, error) {
		if st, ok := s.cached(id); ok {
			return st, nil
		}

		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		st, err := Open(lctx, s.kv, KeysFor(id), Options{
			Session:  id,
			Notifier: s.notifier,
			Log:      s.log.With(zap.String("session", id)),
			Now:      s.now,
		})
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[id] = &sessionEntry{store: st, lastUsed: s.now()}
		s.mu.Unlock()
		return st, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Store), nil
	}
}

// Forget drops the cached Store. Persisted state is kept.
func (s *Sessions) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len is the number of cached sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Sessions) cached(id string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = now
	return e.store, true
}

func (s *Sessions) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < sweepEvery {
		return
	}
	s.lastSweep = now
	for id, e := range s.entries {
		if now.Sub(e.lastUsed) > s.idleTTL {
			delete(s.entries, id)
		}
	}
}
