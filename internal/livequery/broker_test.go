package livequery

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
)

const waitFor = 2 * time.Second

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(waitFor):
		t.Fatalf("no emission within %s", waitFor)
	}
	var zero T
	return zero
}

func TestBroker_PublishNotifiesMatchingTopicsOnly(t *testing.T) {
	b := NewBroker(logging.NewNop())
	ctx := context.Background()

	passes, cancelPasses := b.Subscribe(TopicPasses)
	defer cancelPasses()
	tags, cancelTags := b.Subscribe(TopicTags)
	defer cancelTags()

	b.Publish(ctx, TopicPasses)

	recv(t, passes)
	select {
	case <-tags:
		t.Fatal("tags subscriber must not be notified")
	default:
	}
}

func TestBroker_PublishNeverBlocksAndCoalesces(t *testing.T) {
	b := NewBroker(logging.NewNop())
	signal, cancel := b.Subscribe(TopicPasses)
	defer cancel()

	for i := 0; i < 100; i++ {
		b.Publish(context.Background(), TopicPasses, TopicTags)
	}

	recv(t, signal)
	select {
	case <-signal:
		t.Fatal("pending notifications must be merged into one")
	default:
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker(logging.NewNop())
	_, cancel := b.Subscribe(TopicPasses)
	require.Equal(t, 1, b.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, b.Subscribers())
}

func TestWatch_EmitsInitialThenOnEveryChange(t *testing.T) {
	b := NewBroker(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var state atomic.Int64
	load := func(context.Context) (int64, error) { return state.Load(), nil }

	ch := Watch(ctx, b, logging.NewNop(), load, TopicPasses)
	assert.Equal(t, int64(0), recv(t, ch))

	state.Store(1)
	b.Publish(ctx, TopicPasses)
	assert.Equal(t, int64(1), recv(t, ch))

	state.Store(2)
	b.Publish(ctx, TopicPasses)
	assert.Equal(t, int64(2), recv(t, ch))
}

func TestWatch_IndependentSubscribersSeeEveryCommit(t *testing.T) {
	b := NewBroker(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var state atomic.Int64
	load := func(context.Context) (int64, error) { return state.Load(), nil }

	a := Watch(ctx, b, logging.NewNop(), load, TopicTags)
	c := Watch(ctx, b, logging.NewNop(), load, TopicTags)
	recv(t, a)
	recv(t, c)

	state.Store(5)
	b.Publish(ctx, TopicTags)
	assert.Equal(t, int64(5), recv(t, a))
	assert.Equal(t, int64(5), recv(t, c))
}

func TestWatch_SlowReaderCatchesUpToLatest(t *testing.T) {
	b := NewBroker(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var state atomic.Int64
	load := func(context.Context) (int64, error) { return state.Load(), nil }

	ch := Watch(ctx, b, logging.NewNop(), load, TopicPasses)
	recv(t, ch)

	for i := int64(1); i <= 10; i++ {
		state.Store(i)
		b.Publish(ctx, TopicPasses)
	}

	deadline := time.After(waitFor)
	for {
		select {
		case v := <-ch:
			if v == 10 {
				return
			}
		case <-deadline:
			t.Fatal("reader never observed the latest state")
		}
	}
}

func TestWatch_LoadErrorIsSkipped(t *testing.T) {
	b := NewBroker(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fail atomic.Bool
	fail.Store(true)
	load := func(context.Context) (string, error) {
		if fail.Load() {
			return "", errors.New("disk on fire")
		}
		return "ok", nil
	}

	ch := Watch(ctx, b, logging.NewNop(), load, TopicPasses)
	fail.Store(false)
	b.Publish(ctx, TopicPasses)
	assert.Equal(t, "ok", recv(t, ch))
}

func TestWatch_CancelClosesChannelAndUnsubscribes(t *testing.T) {
	b := NewBroker(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	ch := Watch(ctx, b, logging.NewNop(), func(context.Context) (int, error) { return 1, nil }, TopicPasses)
	recv(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(waitFor):
		t.Fatal("channel not closed after cancel")
	}
	assert.Eventually(t, func() bool { return b.Subscribers() == 0 }, waitFor, 10*time.Millisecond)
}
