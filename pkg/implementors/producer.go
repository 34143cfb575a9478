package implementors

import (
	"sync/atomic"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
)

// Producer owns one module map and publishes it once.
//
// Its state moves Unregistered -> DeliveredImmediately, or
// Unregistered -> Buffered -> Delivered. In ModeSlot a buffered producer
// may end in Dropped instead.
type Producer struct {
	m         ModuleMap
	published atomic.Bool
	state     atomic.Int32
}

// NewProducer creates a producer for a copy of m.
func NewProducer(m ModuleMap) *Producer {
	return &Producer{m: m.Clone()}
}

// Modules returns a copy of the producer's map.
func (p *Producer) Modules() ModuleMap {
	return p.m.Clone()
}

// State returns the current delivery state.
func (p *Producer) State() State {
	return State(p.state.Load())
}

// Publish sends the map to c. Only the first successful call has effect;
// later calls fail with CONFLICT.
func (p *Producer) Publish(c *Coordinator) error {
	if c == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "coordinator is nil")
	}
	if err := p.m.Validate(); err != nil {
		return err
	}
	if !p.published.CompareAndSwap(false, true) {
		return apperrors.NewWithContext(apperrors.ErrCodeConflict,
			"producer already published", map[string]any{
				"modules": p.m.Modules(),
				"state":   p.State().String(),
			})
	}
	return c.publish(p.m, p.setState)
}

func (p *Producer) setState(s State) {
	p.state.Store(int32(s))
}
