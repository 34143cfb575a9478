package implementors

import (
	"log/slog"
	"sync"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
)

// Option configures a Coordinator or Board.
type Option func(*options)

type options struct {
	name string
	mode Mode
}

// WithMode selects how early publications are buffered. Defaults to ModeQueue.
func WithMode(mode Mode) Option {
	return func(o *options) {
		if mode != "" {
			o.mode = mode
		}
	}
}

// WithName labels the coordinator in logs and metrics, usually with the trait path.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// envelope is one buffered publication and the producer to notify.
type envelope struct {
	m      ModuleMap
	notify func(State)
}

// Coordinator bridges producers and a consumer that may become ready in
// either order. Each map is delivered to the consumer exactly once: at
// Publish time when the hook is installed, otherwise when RegisterConsumer
// drains the pending buffer.
//
// The presence test and the call-or-buffer step happen under one lock. The
// hook is always invoked without holding it.
type Coordinator struct {
	name string
	mode Mode

	mu       sync.Mutex
	hook     Hook
	draining bool
	pending  []envelope
	stats    Stats
}

// NewCoordinator creates a Coordinator with no consumer installed.
func NewCoordinator(opts ...Option) *Coordinator {
	o := options{mode: ModeQueue}
	for _, opt := range opts {
		opt(&o)
	}
	return &Coordinator{
		name: o.name,
		mode: o.mode,
	}
}

// Name returns the label given with WithName.
func (c *Coordinator) Name() string {
	return c.name
}

// Mode returns the buffering mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// HasConsumer reports whether a consumer hook is installed.
func (c *Coordinator) HasConsumer() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hook != nil
}

// Publish hands m to the consumer if one is installed, otherwise buffers
// it. The map is copied first; the caller may reuse it afterwards.
func (c *Coordinator) Publish(m ModuleMap) error {
	return c.publish(m, nil)
}

func (c *Coordinator) publish(m ModuleMap, notify func(State)) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if notify == nil {
		notify = func(State) {}
	}
	m = m.Clone()

	c.mu.Lock()
	c.stats.Published++

	// Maps still buffered go first: while a drain runs, or after a hook
	// panicked during one.
	if hook := c.hook; hook != nil && !c.draining && len(c.pending) == 0 {
		c.stats.DeliveredImmediately++
		c.mu.Unlock()

		hook(m)
		notify(StateDeliveredImmediately)
		publications.WithLabelValues(c.name, outcomeDelivered).Inc()
		slog.Debug("implementors delivered",
			"trait", c.name,
			"modules", m.Modules(),
			"records", m.Len())
		return nil
	}

	var dropped []envelope
	if c.mode == ModeSlot && c.hook == nil {
		dropped = c.pending
		c.pending = nil
		c.stats.Dropped += len(dropped)
	}
	c.pending = append(c.pending, envelope{m: m, notify: notify})
	c.stats.Buffered++
	depth := len(c.pending)
	pendingMaps.WithLabelValues(c.name).Set(float64(depth))
	for _, e := range dropped {
		e.notify(StateDropped)
	}
	notify(StateBuffered)

	// A consumer is installed but maps were left behind by a hook that
	// panicked during an earlier drain: this publisher drains them.
	hook := c.hook
	resume := hook != nil && !c.draining
	if resume {
		c.draining = true
	}
	c.mu.Unlock()

	publications.WithLabelValues(c.name, outcomeBuffered).Inc()
	for _, e := range dropped {
		publications.WithLabelValues(c.name, outcomeDropped).Inc()
		slog.Warn("pending implementors replaced before delivery",
			"trait", c.name,
			"dropped", e.m.Modules(),
			"replacement", m.Modules())
	}
	slog.Debug("implementors buffered",
		"trait", c.name,
		"modules", m.Modules(),
		"pending", depth)

	if resume {
		c.drain(hook)
	}
	return nil
}

// RegisterConsumer installs hook and delivers everything buffered so far,
// in buffer order, exactly as if hook had been called at publish time.
// A coordinator accepts one consumer for its whole lifetime.
//
// If hook panics during the drain, the map it panicked on and everything
// after it go back to the front of the buffer, and the next Publish
// resumes delivery.
func (c *Coordinator) RegisterConsumer(hook Hook) error {
	if hook == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "consumer hook is nil")
	}

	c.mu.Lock()
	if c.hook != nil {
		c.mu.Unlock()
		return apperrors.NewWithContext(apperrors.ErrCodeConflict,
			"consumer already registered", map[string]any{"trait": c.name})
	}
	c.hook = hook
	c.draining = true
	drained := len(c.pending)
	c.mu.Unlock()

	slog.Debug("consumer registered",
		"trait", c.name,
		"drained", drained)

	c.drain(hook)
	return nil
}

// drain delivers the buffer until it is empty. The caller must have set
// c.draining; drain clears it, also when hook panics.
func (c *Coordinator) drain(hook Hook) {
	for {
		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		if len(batch) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		pendingMaps.WithLabelValues(c.name).Set(0)
		c.mu.Unlock()

		c.deliverBatch(hook, batch)
	}
}

func (c *Coordinator) deliverBatch(hook Hook, batch []envelope) {
	next := 0
	defer func() {
		if next == len(batch) {
			return
		}
		c.mu.Lock()
		c.pending = append(append([]envelope{}, batch[next:]...), c.pending...)
		c.draining = false
		depth := len(c.pending)
		pendingMaps.WithLabelValues(c.name).Set(float64(depth))
		c.mu.Unlock()

		slog.Warn("consumer hook panicked, delivery deferred to next publication",
			"trait", c.name,
			"modules", batch[next].m.Modules(),
			"pending", depth)
	}()

	for ; next < len(batch); next++ {
		e := batch[next]
		hook(e.m)
		e.notify(StateDelivered)

		c.mu.Lock()
		c.stats.DeliveredFromBuffer++
		c.mu.Unlock()
		publications.WithLabelValues(c.name, outcomeDrained).Inc()
	}
}

// Pending returns copies of the maps waiting for a consumer, oldest first.
func (c *Coordinator) Pending() []ModuleMap {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ModuleMap, 0, len(c.pending))
	for _, e := range c.pending {
		out = append(out, e.m.Clone())
	}
	return out
}

// Stats returns a snapshot of the coordinator counters.
func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Pending = len(c.pending)
	return s
}
