package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	t.Run("should be open initially", func(t *testing.T) {
		g := newGate()
		assert.True(t, g.isOpen())
		assert.NoError(t, g.wait(context.Background()))
	})
	t.Run("trip should block waiters until release", func(t *testing.T) {
		g := newGate()
		g.trip()
		assert.False(t, g.isOpen())
		done := make(chan error, 1)
		go func() {
			done <- g.wait(context.Background())
		}()
		select {
		case <-done:
			t.Fatal("wait returned while gate was tripped")
		case <-time.After(50 * time.Millisecond):
		}
		g.release()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("wait did not return after release")
		}
	})
	t.Run("wait should honor context cancellation", func(t *testing.T) {
		g := newGate()
		g.trip()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, g.wait(ctx), context.DeadlineExceeded)
	})
	t.Run("trip and release are idempotent", func(t *testing.T) {
		g := newGate()
		g.trip()
		g.trip()
		g.release()
		g.release()
		assert.True(t, g.isOpen())
	})
}

func TestLockTable(t *testing.T) {
	t.Run("should return the same lock for the same key", func(t *testing.T) {
		tab := newLockTable()
		l1 := tab.acquire("a")
		l2 := tab.acquire("a")
		assert.Same(t, l1, l2)
		assert.Equal(t, 1, tab.size())
		tab.release("a", l1)
		tab.release("a", l2)
	})
	t.Run("should evict an entry once unreferenced", func(t *testing.T) {
		tab := newLockTable()
		l := tab.acquire("a")
		assert.Equal(t, 1, tab.size())
		tab.release("a", l)
		assert.Equal(t, 0, tab.size())
	})
	t.Run("locks in different buckets are independent", func(t *testing.T) {
		tab := newLockTable()
		ctx := context.Background()
		l1 := tab.acquire("a")
		l2 := tab.acquire("b")
		require.NoError(t, l1.lock(ctx))
		require.NoError(t, l2.lock(ctx))
		l1.unlock()
		l2.unlock()
		tab.release("a", l1)
		tab.release("b", l2)
		assert.Equal(t, 0, tab.size())
	})
	t.Run("lock acquisition can be abandoned on cancellation", func(t *testing.T) {
		tab := newLockTable()
		l := tab.acquire("a")
		require.NoError(t, l.lock(context.Background()))
		l2 := tab.acquire("a")
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.Error(t, l2.lock(ctx))
		tab.release("a", l2)
		l.unlock()
		tab.release("a", l)
		assert.Equal(t, 0, tab.size())
	})
}

func TestParseResetAfter(t *testing.T) {
	now := time.Now()
	t.Run("should prefer the relative reset-after header", func(t *testing.T) {
		h := http.Header{}
		h.Set("X-Ratelimit-Reset-After", "1.5")
		h.Set("X-Ratelimit-Reset", "9999999999")
		got := parseResetAfter(h, false, now)
		assert.Equal(t, 1500*time.Millisecond, got)
	})
	t.Run("should fall back to the absolute reset epoch", func(t *testing.T) {
		h := http.Header{}
		h.Set("X-Ratelimit-Reset", "2")
		base := time.Unix(1, 0)
		got := parseResetAfter(h, false, base)
		assert.Equal(t, time.Second, got)
	})
	t.Run("should use the absolute epoch with a synced clock", func(t *testing.T) {
		h := http.Header{}
		h.Set("X-Ratelimit-Reset-After", "60")
		h.Set("X-Ratelimit-Reset", "3")
		base := time.Unix(1, 0)
		got := parseResetAfter(h, true, base)
		assert.Equal(t, 2*time.Second, got)
	})
	t.Run("should return zero without headers", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), parseResetAfter(http.Header{}, false, now))
	})
}
