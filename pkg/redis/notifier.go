package redis

import (
	"context"
	"errors"
	"fmt"
)

// Notifier fans out collection-change signals over Redis pub/sub. The remote
// persistence adapter publishes the collection name after every committed
// mutation; subscribers re-list the collection and push a fresh snapshot.
//
// The payload is intentionally just the collection name. Snapshots always come
// from a fresh list, so a lost or coalesced message degrades to a stale read,
// never to a wrong one.
type Notifier struct {
	client *Client
}

// NewNotifier builds a notifier over the shared client. A nil client yields a
// no-op notifier, used in offline mode and in tests.
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

func channelFor(collection string) string {
	return fmt.Sprintf("%s:changes:%s", keyNamespace, collection)
}

// Publish signals that the named collection changed.
func (n *Notifier) Publish(ctx context.Context, collection string) error {
	if n == nil || n.client == nil || n.client.raw == nil {
		return nil
	}
	if collection == "" {
		return errors.New("collection is required")
	}
	return n.client.raw.Publish(ctx, channelFor(collection), collection).Err()
}

// Subscribe invokes fn on every change signal for the named collection until
// the returned cancel function is called. Delivery is at-least-once; fn must
// be safe to call for signals that carry no new data.
func (n *Notifier) Subscribe(ctx context.Context, collection string, fn func()) (func(), error) {
	if n == nil || n.client == nil || n.client.raw == nil {
		return func() {}, nil
	}
	if collection == "" {
		return nil, errors.New("collection is required")
	}
	if fn == nil {
		return nil, errors.New("callback is required")
	}

	sub := n.client.raw.Subscribe(ctx, channelFor(collection))
	// Receive forces the SUBSCRIBE handshake so callers observe setup errors.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}

	done := make(chan struct{})
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fn()
			}
		}
	}()

	return func() {
		close(done)
		_ = sub.Close()
	}, nil
}
