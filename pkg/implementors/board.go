package implementors

import (
	"log/slog"
	"os"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// EnvMode is the environment variable read when the global board is created.
const EnvMode = "IMPLINDEX_MODE"

// Board holds one Coordinator per trait. Coordinators are created on first
// use, so a producer and the consumer for the same trait can each ask for
// it without knowing who came first.
type Board struct {
	opts []Option

	mu     sync.Mutex
	coords map[string]*Coordinator
}

// NewBoard creates an empty board. opts apply to every coordinator it creates.
func NewBoard(opts ...Option) *Board {
	return &Board{
		opts:   opts,
		coords: make(map[string]*Coordinator),
	}
}

// For returns the coordinator for trait, creating it if needed.
func (b *Board) For(trait string) *Coordinator {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.coords[trait]; ok {
		return c
	}
	opts := append(append([]Option{}, b.opts...), WithName(trait))
	c := NewCoordinator(opts...)
	b.coords[trait] = c
	return c
}

// Lookup returns the coordinator for trait without creating one.
func (b *Board) Lookup(trait string) (*Coordinator, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.coords[trait]
	return c, ok
}

// Publish is shorthand for b.For(trait).Publish(m).
func (b *Board) Publish(trait string, m ModuleMap) error {
	return b.For(trait).Publish(m)
}

// Traits returns every trait with a coordinator, in collated order.
func (b *Board) Traits() []string {
	b.mu.Lock()
	names := make([]string, 0, len(b.coords))
	for name := range b.coords {
		names = append(names, name)
	}
	b.mu.Unlock()

	SortTraits(names)
	return names
}

// SortTraits orders trait paths for display.
func SortTraits(traits []string) {
	collate.New(language.Und, collate.Numeric).SortStrings(traits)
}

var (
	globalBoard *Board
	globalOnce  sync.Once
)

// Global returns the process-wide board. Generated producer packages
// publish to it from init. The mode comes from IMPLINDEX_MODE and is fixed
// when the board is first used.
func Global() *Board {
	globalOnce.Do(func() {
		mode, err := ParseMode(os.Getenv(EnvMode))
		if err != nil {
			slog.Warn("ignoring invalid implementors mode", "env", EnvMode, "error", err)
			mode = ModeQueue
		}
		globalBoard = NewBoard(WithMode(mode))
	})
	return globalBoard
}
