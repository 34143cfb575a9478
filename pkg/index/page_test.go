package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/implindex/pkg/implementors"
)

func TestPage_AbsorbOrdersModulesByName(t *testing.T) {
	p := NewPage(trait)
	p.Absorb(implementors.ModuleMap{
		"num_rational": {recRatio},
		"num":          {recBigUint},
	})

	entries := p.Entries()
	assert.Equal(t, "num", entries[0].Module)
	assert.Equal(t, "num_rational", entries[1].Module)
	assert.Equal(t, 1, p.Deliveries())
	assert.Equal(t, trait, p.Trait())
}

func TestPage_SameModuleTwiceReplaces(t *testing.T) {
	p := NewPage(trait)
	p.Absorb(implementors.ModuleMap{"num": {recBigUint}})
	p.Absorb(implementors.ModuleMap{"num_rational": {recRatio}})
	p.Absorb(implementors.ModuleMap{"num": {recBigUint, recBigInt}})

	recs, ok := p.Implementors("num")
	assert.True(t, ok)
	assert.Equal(t, []implementors.Record{recBigUint, recBigInt}, recs)

	entries := p.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "num", entries[0].Module, "replaced module keeps its position")
	assert.Equal(t, "num_rational", entries[1].Module)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 3, p.Deliveries())

	_, ok = p.Implementors("missing")
	assert.False(t, ok)
}

func TestPage_EntriesIsCopy(t *testing.T) {
	p := NewPage(trait)
	p.Absorb(implementors.ModuleMap{"num": {recBigUint}})

	e := p.Entries()
	e[0].Implementors[0] = "changed"

	recs, _ := p.Implementors("num")
	assert.Equal(t, []implementors.Record{recBigUint}, recs)
}
