package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
		return 0
	}
}

func TestSubscribeReplaysLatestOnly(t *testing.T) {
	b := New[int]()
	defer b.Close()

	b.Publish(1)
	b.Publish(2)
	b.Publish(3)

	ch := b.Subscribe(context.Background())
	assert.Equal(t, 3, recv(t, ch))

	b.Publish(4)
	b.Publish(5)
	assert.Equal(t, 4, recv(t, ch))
	assert.Equal(t, 5, recv(t, ch))
}

func TestSubscribeBeforeFirstPublish(t *testing.T) {
	b := New[int]()
	defer b.Close()

	ch := b.Subscribe(context.Background())
	select {
	case v := <-ch:
		t.Fatalf("unexpected value before first publish: %d", v)
	default:
	}

	b.Publish(7)
	assert.Equal(t, 7, recv(t, ch))
}

func TestIndependentSubscribersSeeSameOrder(t *testing.T) {
	b := New[int]()
	defer b.Close()

	ch1 := b.Subscribe(context.Background())
	ch2 := b.Subscribe(context.Background())

	for i := 1; i <= 5; i++ {
		b.Publish(i)
	}
	for i := 1; i <= 5; i++ {
		assert.Equal(t, i, recv(t, ch1))
		assert.Equal(t, i, recv(t, ch2))
	}
}

func TestCancelReleasesOnlyThatSubscriber(t *testing.T) {
	b := New[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := b.Subscribe(ctx)
	live := b.Subscribe(context.Background())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-cancelled:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	b.Publish(42)
	assert.Equal(t, 42, recv(t, live))
}

func TestSlowSubscriberDropsOldest(t *testing.T) {
	b := New[int]()
	defer b.Close()

	ch := b.Subscribe(context.Background())
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish(i)
	}

	// The newest value is never lost; the head of the queue has moved past
	// the values that overflowed.
	last := -1
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, subscriberBuffer+9, last)
}

func TestCloseClosesSubscribers(t *testing.T) {
	b := New[int]()
	ch := b.Subscribe(context.Background())
	b.Close()

	_, ok := <-ch
	assert.False(t, ok)

	// Publish after Close is a no-op.
	b.Publish(1)
}
