package event

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds nested Publish calls and Drain rounds.
const DefaultMaxDepth = 32

var (
	// ErrUnknownKind is returned for events or subscriptions whose kind is
	// outside the closed Kind set.
	ErrUnknownKind = errors.New("unknown event kind")
	// ErrHandlerFailed wraps every error a handler returns to the publisher.
	ErrHandlerFailed = errors.New("event handler failed")
	// ErrPublishDepth is returned when nested publication exceeds the bus's
	// maximum depth.
	ErrPublishDepth = errors.New("publish depth exceeded")
)

// Handler reacts to one event. A non-nil error is returned to the publisher.
type Handler func(Event) error

// Token identifies a subscription for Unsubscribe.
type Token uint64

type subscription struct {
	token Token
	fn    Handler
}

// Bus delivers events synchronously to the handlers subscribed to their kind.
//
// Handlers run in subscription order. A handler may publish; the nested
// event is delivered before Publish returns to the outer handler, so
// ordering across nested publishes is not specified. Handlers subscribed
// during a Publish do not see the event being delivered.
type Bus struct {
	subs     map[Kind][]subscription
	next     Token
	depth    int
	maxDepth int
	queue    []Event
	log      *zap.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithMaxDepth sets the nested publish limit. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// WithLogger sets the bus logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bus) { b.log = l }
}

// NewBus creates a bus with no subscribers.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		subs:     make(map[Kind][]subscription),
		maxDepth: DefaultMaxDepth,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for every future event of kind.
func (b *Bus) Subscribe(kind Kind, fn Handler) (Token, error) {
	if !kind.Valid() {
		return 0, oops.Code("UNKNOWN_EVENT_KIND").With("kind", uint8(kind)).Wrap(ErrUnknownKind)
	}
	b.next++
	b.subs[kind] = append(b.subs[kind], subscription{token: b.next, fn: fn})
	return b.next, nil
}

// Unsubscribe removes a subscription, reporting whether it existed.
func (b *Bus) Unsubscribe(tok Token) bool {
	for kind, subs := range b.subs {
		for i, s := range subs {
			if s.token != tok {
				continue
			}
			// Copy so an in-flight Publish keeps its own snapshot.
			b.subs[kind] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Subscribers returns the number of handlers for kind.
func (b *Bus) Subscribers(kind Kind) int { return len(b.subs[kind]) }

// Publish delivers ev to each handler of its kind, once, in subscription
// order. Every handler runs even when an earlier one fails; all failures are
// joined and returned.
func (b *Bus) Publish(ev Event) error {
	if ev == nil || !ev.Kind().Valid() {
		return oops.Code("UNKNOWN_EVENT_KIND").With("event", fmt.Sprintf("%T", ev)).Wrap(ErrUnknownKind)
	}
	kind := ev.Kind()
	if b.depth >= b.maxDepth {
		return oops.
			Code("PUBLISH_DEPTH_EXCEEDED").
			With("kind", kind.String(), "max_depth", b.maxDepth).
			Wrap(ErrPublishDepth)
	}

	subs := b.subs[kind]
	if len(subs) == 0 {
		return nil
	}
	b.depth++
	defer func() { b.depth-- }()

	b.log.Debug("publish", zap.Stringer("kind", kind), zap.Int("handlers", len(subs)), zap.Int("depth", b.depth))

	var errs []error
	for _, s := range subs {
		if err := s.fn(ev); err != nil {
			errs = append(errs, oops.
				Code("HANDLER_FAILED").
				With("kind", kind.String(), "token", uint64(s.token)).
				Wrap(fmt.Errorf("%w: %w", ErrHandlerFailed, err)))
		}
	}
	return errors.Join(errs...)
}

// Post queues ev for the next Drain.
func (b *Bus) Post(ev Event) error {
	if ev == nil || !ev.Kind().Valid() {
		return oops.Code("UNKNOWN_EVENT_KIND").With("event", fmt.Sprintf("%T", ev)).Wrap(ErrUnknownKind)
	}
	b.queue = append(b.queue, ev)
	return nil
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int { return len(b.queue) }

// Drain publishes queued events in rounds. Events posted by handlers during
// a round go to the next one. Drain fails with ErrPublishDepth if the queue
// is still non-empty after the maximum number of rounds; the remaining events
// stay queued.
func (b *Bus) Drain() error {
	var errs []error
	for round := 0; len(b.queue) > 0; round++ {
		if round >= b.maxDepth {
			errs = append(errs, oops.
				Code("PUBLISH_DEPTH_EXCEEDED").
				With("pending", len(b.queue), "max_depth", b.maxDepth).
				Wrap(ErrPublishDepth))
			break
		}
		batch := b.queue
		b.queue = nil
		for _, ev := range batch {
			if err := b.Publish(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// On subscribes a typed handler. The kind is taken from E's zero value, so E
// must be one of this package's event structs.
func On[E Event](b *Bus, fn func(E) error) (Token, error) {
	var zero E
	return b.Subscribe(zero.Kind(), func(ev Event) error {
		e, ok := ev.(E)
		if !ok {
			return oops.Code("EVENT_PAYLOAD_MISMATCH").Errorf("want %T, got %T", zero, ev)
		}
		return fn(e)
	})
}
