package implementors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_ForCreatesOnce(t *testing.T) {
	b := NewBoard(WithMode(ModeSlot))

	c1 := b.For("num::Num")
	c2 := b.For("num::Num")
	assert.Same(t, c1, c2)
	assert.Equal(t, "num::Num", c1.Name())
	assert.Equal(t, ModeSlot, c1.Mode())

	_, ok := b.Lookup("num::Integer")
	assert.False(t, ok, "Lookup must not create coordinators")
}

func TestBoard_ProducerAndConsumerMeetOnTrait(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Publish("num::Num", ModuleMap{"num": {recA}}))

	rec := &recorder{}
	require.NoError(t, b.For("num::Num").RegisterConsumer(rec.hook))
	assert.Equal(t, []ModuleMap{{"num": {recA}}}, rec.calls())

	// Other traits are unaffected.
	assert.False(t, b.For("num::Integer").HasConsumer())
}

func TestBoard_Traits(t *testing.T) {
	b := NewBoard()
	for _, trait := range []string{"num::Zero", "num::Integer", "core::clone::Clone", "num::Num"} {
		b.For(trait)
	}
	assert.Equal(t, []string{"core::clone::Clone", "num::Integer", "num::Num", "num::Zero"}, b.Traits())
}

func TestSortTraits_Numeric(t *testing.T) {
	traits := []string{"t::Float64", "t::Float32", "t::Float128"}
	SortTraits(traits)
	assert.Equal(t, []string{"t::Float32", "t::Float64", "t::Float128"}, traits)
}

func TestGlobal_Singleton(t *testing.T) {
	assert.Same(t, Global(), Global())
}
