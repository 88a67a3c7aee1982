package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojun-dev/danwatch/internal/domain"
)

func TestStartIsIdempotentOnFilterKey(t *testing.T) {
	h := newHarness(t)
	f := testFilter()
	ctx := context.Background()

	assert.Equal(t, StartedWatching, h.registry.Start(ctx, f))
	assert.Equal(t, AlreadyWatching, h.registry.Start(ctx, f))

	assert.Len(t, h.registry.Active(), 1, "duplicate start must not spawn a second monitor")
}

func TestStartDistinguishesPriceBounds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	unbounded := domain.Filter{Location: "서울특별시", Keyword: "자전거"}
	bounded := domain.Filter{Location: "서울특별시", Keyword: "자전거", MaxPrice: intPtr(100000)}

	assert.Equal(t, StartedWatching, h.registry.Start(ctx, unbounded))
	assert.Equal(t, StartedWatching, h.registry.Start(ctx, bounded))
	assert.Len(t, h.registry.Active(), 2)
}

func TestStopUnknownFilter(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, NotFound, h.registry.Stop(testFilter()))
}

func TestStopRemovesWatchFromActive(t *testing.T) {
	h := newHarness(t)
	f := testFilter()

	h.registry.Start(context.Background(), f)
	require.Len(t, h.registry.Active(), 1)

	assert.Equal(t, Stopping, h.registry.Stop(f))

	// Cancellation is asynchronous; the watch leaves the active view
	// once the monitor reaches its terminal state.
	assert.Eventually(t, func() bool {
		return len(h.registry.Active()) == 0
	}, 2*time.Second, time.Millisecond)
}

func TestRestartAfterStop(t *testing.T) {
	h := newHarness(t)
	f := testFilter()
	ctx := context.Background()

	h.registry.Start(ctx, f)
	h.registry.Stop(f)

	require.Eventually(t, func() bool {
		return len(h.registry.Active()) == 0
	}, 2*time.Second, time.Millisecond)

	// A terminal handle for the key must not block a fresh start.
	assert.Equal(t, StartedWatching, h.registry.Start(ctx, f))
	assert.Len(t, h.registry.Active(), 1)
}

func TestActiveReportsFilterFields(t *testing.T) {
	h := newHarness(t)
	f := domain.Filter{Location: "경기도", Keyword: "노트북", MinPrice: intPtr(10000)}

	h.registry.Start(context.Background(), f)

	active := h.registry.Active()
	require.Contains(t, active, f.Key())
	assert.Equal(t, ActiveWatch{Location: "경기도", Keyword: "노트북"}, active[f.Key()])
}

func TestStopAll(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.registry.Start(ctx, domain.Filter{Location: "서울특별시", Keyword: "자전거"})
	h.registry.Start(ctx, domain.Filter{Location: "경기도", Keyword: "의자"})

	h.registry.StopAll(2 * time.Second)

	assert.Empty(t, h.registry.Active())
}

func TestConcurrentStartStop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := testFilter()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			h.registry.Start(ctx, f)
			h.registry.Active()
			h.registry.Stop(f)
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	// No panics, no duplicate monitors: at most one handle for the key.
	assert.LessOrEqual(t, len(h.registry.Active()), 1)
}

func intPtr(v int) *int { return &v }
