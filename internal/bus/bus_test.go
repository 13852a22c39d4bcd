package bus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	b := New()
	first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	b.Publish(Event{Entity: EntityProjects, Op: OpCreated})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case ev := <-ch:
			require.Equal(t, EntityProjects, ev.Entity)
			require.Equal(t, OpCreated, ev.Op)
		case <-time.After(time.Second):
			t.Fatal("expected event")
		}
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	t.Parallel()

	b := New()
	ch, cancel := b.Subscribe()
	cancel()

	_, ok := <-ch
	require.False(t, ok)

	// Publishing after cancel must not panic or block.
	b.Publish(Event{Entity: EntitySkills, Op: OpDeleted})
}

func TestBusPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	t.Parallel()

	b := New()
	_, cancel := b.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More events than the subscriber buffer holds.
		for i := 0; i < 100; i++ {
			b.Publish(Event{Entity: EntityBlogPosts, Op: OpUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

type fakeRevisioner struct {
	rev atomic.Uint64
}

func (f *fakeRevisioner) Revision() (uint64, error) { return f.rev.Load(), nil }

func TestWatcherBroadcastsOnRevisionChange(t *testing.T) {
	t.Parallel()

	rev := &fakeRevisioner{}
	rev.rev.Store(1)
	b := New()
	ch, cancel := b.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go NewWatcher(rev, b, 5*time.Millisecond).Run(ctx)

	// Give the watcher a tick to record the baseline, then move it.
	time.Sleep(20 * time.Millisecond)
	rev.rev.Store(2)

	select {
	case ev := <-ch:
		require.Equal(t, EntityAny, ev.Entity)
		require.Equal(t, OpExternal, ev.Op)
	case <-time.After(time.Second):
		t.Fatal("expected an external change event")
	}
}

func TestWatcherQuietWhenRevisionStable(t *testing.T) {
	t.Parallel()

	rev := &fakeRevisioner{}
	rev.rev.Store(7)
	b := New()
	ch, cancel := b.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go NewWatcher(rev, b, 5*time.Millisecond).Run(ctx)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
