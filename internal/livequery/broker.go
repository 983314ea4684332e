// Package livequery turns one-shot reads into continuous subscriptions.
//
// Writers publish the entity topics they changed after their transaction
// commits; every live query subscribed to one of those topics reloads and
// re-emits. Notifications are coalesced per subscriber, so Publish never
// blocks and a slow reader always catches up to the latest committed state.
package livequery

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
)

// Topic names an entity class whose changes can be observed.
type Topic string

const (
	TopicPasses      Topic = "passes"
	TopicTags        Topic = "tags"
	TopicGroups      Topic = "groups"
	TopicManualOrder Topic = "manual_order"
)

type subscriber struct {
	topics []Topic
	signal chan struct{}
}

// Broker fans change notifications out to subscribers.
type Broker struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*subscriber
	log    logging.Logger
}

// NewBroker returns a Broker with no subscribers.
func NewBroker(log logging.Logger) *Broker {
	return &Broker{subs: make(map[uint64]*subscriber), log: log}
}

// Subscribe registers interest in the given topics. The returned channel
// receives a value after any matching Publish; pending signals are merged.
// Call cancel to unsubscribe.
func (b *Broker) Subscribe(topics ...Topic) (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	s := &subscriber{topics: topics, signal: make(chan struct{}, 1)}
	b.subs[id] = s

	var once sync.Once
	return s.signal, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish notifies every subscriber of at least one of the topics.
func (b *Broker) Publish(ctx context.Context, topics ...Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	notified := 0
	for _, s := range b.subs {
		if !s.matches(topics) {
			continue
		}
		select {
		case s.signal <- struct{}{}:
		default:
		}
		notified++
	}
	b.log.Debug(ctx, "change published", "topics", topics, "subscribers", notified)
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (s *subscriber) matches(topics []Topic) bool {
	for _, want := range s.topics {
		for _, got := range topics {
			if want == got {
				return true
			}
		}
	}
	return false
}
