package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/journal/domain"
)

// EventHandler reacts to one domain event. A returned error never reaches the publisher.
type EventHandler func(ctx context.Context, event domain.Event) error

// DeadLetter describes a delivery that failed.
type DeadLetter struct {
	Event       string          `json:"event"`
	AggregateID string          `json:"aggregate_id"`
	Handler     string          `json:"handler"`
	Error       string          `json:"error"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	FailedAt    time.Time       `json:"failed_at"`
}

// DeadLetterSink keeps failed deliveries for inspection. Nothing replays them.
type DeadLetterSink interface {
	Record(ctx context.Context, letter DeadLetter) error
}

// DispatchMetrics counts delivered and failed handler invocations.
type DispatchMetrics interface {
	ObserveDispatch(event, handler, status string)
}

type subscription struct {
	name string
	fn   EventHandler
}

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	catchAll []subscription
	sink     DeadLetterSink
	metrics  DispatchMetrics
	logger   *zap.Logger
}

type DispatcherOption func(*Dispatcher)

func WithDeadLetterSink(sink DeadLetterSink) DispatcherOption {
	return func(d *Dispatcher) { d.sink = sink }
}

func WithDispatchMetrics(metrics DispatchMetrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = metrics }
}

func NewDispatcher(logger *zap.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		handlers: make(map[string][]subscription),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe registers fn for events named eventName. Handlers run in registration order.
func (d *Dispatcher) Subscribe(eventName, handlerName string, fn EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], subscription{name: handlerName, fn: fn})
}

// SubscribeAll registers fn for every event, after the named subscribers.
func (d *Dispatcher) SubscribeAll(handlerName string, fn EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.catchAll = append(d.catchAll, subscription{name: handlerName, fn: fn})
}

// Dispatch delivers events one at a time to their subscribers. Handler failures and
// panics are logged, counted and recorded as dead letters, then swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...domain.Event) {
	for _, event := range events {
		if event == nil {
			continue
		}
		for _, sub := range d.subscribers(event.EventName()) {
			d.deliver(ctx, event, sub)
		}
	}
}

func (d *Dispatcher) subscribers(eventName string) []subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()
	named := d.handlers[eventName]
	out := make([]subscription, 0, len(named)+len(d.catchAll))
	out = append(out, named...)
	return append(out, d.catchAll...)
}

func (d *Dispatcher) deliver(ctx context.Context, event domain.Event, sub subscription) {
	err := d.invoke(ctx, event, sub)
	if err == nil {
		d.observe(event, sub, "ok")
		return
	}

	d.observe(event, sub, "failed")
	d.logger.Warn("event handler failed",
		zap.String("event", event.EventName()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.String("handler", sub.name),
		zap.Error(err),
	)
	if d.sink == nil {
		return
	}
	payload, _ := json.Marshal(event)
	letter := DeadLetter{
		Event:       event.EventName(),
		AggregateID: event.AggregateID(),
		Handler:     sub.name,
		Error:       err.Error(),
		Payload:     payload,
		FailedAt:    time.Now().UTC(),
	}
	if sinkErr := d.sink.Record(ctx, letter); sinkErr != nil {
		d.logger.Error("failed to record dead letter", zap.String("event", letter.Event), zap.Error(sinkErr))
	}
}

func (d *Dispatcher) invoke(ctx context.Context, event domain.Event, sub subscription) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return sub.fn(ctx, event)
}

func (d *Dispatcher) observe(event domain.Event, sub subscription, status string) {
	if d.metrics != nil {
		d.metrics.ObserveDispatch(event.EventName(), sub.name, status)
	}
}

// Publish dispatches the pending events of every source and clears them once dispatch returns.
func Publish(ctx context.Context, publisher EventPublisher, sources ...domain.EventSource) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		events := src.Events()
		if len(events) > 0 && publisher != nil {
			publisher.Dispatch(ctx, events...)
		}
		src.ClearEvents()
	}
}
