package rest

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// gate is the process-wide signal for Discord's global rate limit.
// It behaves like a manual-reset event: open initially, tripped on a global
// 429 and released once the retry_after window has passed. While tripped,
// every request waits regardless of its bucket.
type gate struct {
	mu sync.Mutex
	ch chan struct{} // closed while the gate is open
}

func newGate() *gate {
	g := &gate{ch: make(chan struct{})}
	close(g.ch)
	return g
}

// trip closes the gate. Safe to call while already tripped.
func (g *gate) trip() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.ch:
		g.ch = make(chan struct{})
	default:
	}
}

// release re-opens the gate and wakes all waiters.
func (g *gate) release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.ch:
	default:
		close(g.ch)
	}
}

// wait blocks until the gate is open or the context is done.
func (g *gate) wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gate) isOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// bucketLock serializes requests within one rate-limit bucket.
// The semaphore allows lock acquisition to be abandoned on context
// cancellation, which a plain mutex can not.
type bucketLock struct {
	sem  *semaphore.Weighted
	refs int // guarded by the owning table's mutex
}

func (l *bucketLock) lock(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

func (l *bucketLock) unlock() {
	l.sem.Release(1)
}

// lockTable maps bucket keys to their locks. Entries are created lazily and
// reference counted, so that keys of long-gone channels do not accumulate
// over the lifetime of a process.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*bucketLock
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*bucketLock)}
}

// acquire returns the lock for a bucket key, creating it on first use.
// Every acquire must be paired with a release.
func (t *lockTable) acquire(key string) *bucketLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = &bucketLock{sem: semaphore.NewWeighted(1)}
		t.locks[key] = l
	}
	l.refs++
	return l
}

// release drops one reference and evicts the entry once unreferenced.
func (t *lockTable) release(key string, l *bucketLock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l.refs--
	if l.refs <= 0 {
		delete(t.locks, key)
	}
}

func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}

// rateLimitBody is the JSON body of a 429 response.
type rateLimitBody struct {
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
	Global     bool    `json:"global"`
}

// parseResetAfter computes the delay until a bucket resets from the
// X-Ratelimit response headers. The direct Reset-After duration is
// preferred; with useClock set the absolute Reset epoch is used instead,
// which is only reliable when the local clock is synchronized.
func parseResetAfter(h http.Header, useClock bool, now time.Time) time.Duration {
	if !useClock {
		if s := h.Get("X-Ratelimit-Reset-After"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return time.Duration(v * float64(time.Second))
			}
		}
	}
	s := h.Get("X-Ratelimit-Reset")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	reset := time.Unix(0, int64(v*float64(time.Second)))
	return reset.Sub(now)
}
