package livequery

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
)

// Loader produces the current value of a query.
type Loader[T any] func(ctx context.Context) (T, error)

// Watch runs load once immediately and again after every change to one of the
// topics, sending each result on the returned channel. The subscription ends
// and the channel is closed when ctx is cancelled.
//
// A failed load is logged and skipped; the subscriber keeps the last value
// and the next notification retries.
func Watch[T any](ctx context.Context, b *Broker, log logging.Logger, load Loader[T], topics ...Topic) <-chan T {
	out := make(chan T)
	signal, cancel := b.Subscribe(topics...)

	go func() {
		defer close(out)
		defer cancel()

		for {
			v, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Error(ctx, "live query reload failed", "topics", topics, "error", err)
			} else {
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
