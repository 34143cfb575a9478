// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"slices"
	"sync"

	"github.com/NVIDIA/implindex/pkg/implementors"
)

// Entry is one module's contribution to a trait page.
type Entry struct {
	Module       string                `json:"module" yaml:"module"`
	Implementors []implementors.Record `json:"implementors" yaml:"implementors"`
}

// Page collects the implementors of a single trait as they arrive.
type Page struct {
	trait string

	mu         sync.RWMutex
	entries    []Entry
	deliveries int
}

// NewPage creates an empty page for trait.
func NewPage(trait string) *Page {
	return &Page{trait: trait}
}

// Trait returns the trait path the page renders.
func (p *Page) Trait() string {
	return p.trait
}

// Absorb is the page's consumer hook. New modules within one map are
// appended in name order; records keep the order the producer gave them.
// A module delivered again replaces its earlier records in place.
func (p *Page) Absorb(m implementors.ModuleMap) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.deliveries++
	for _, name := range m.Modules() {
		e := Entry{Module: name, Implementors: slices.Clone(m[name])}
		if i := slices.IndexFunc(p.entries, func(x Entry) bool { return x.Module == name }); i >= 0 {
			p.entries[i] = e
			continue
		}
		p.entries = append(p.entries, e)
	}
}

// Entries returns a copy of the page content in arrival order.
func (p *Page) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		out[i] = Entry{Module: e.Module, Implementors: slices.Clone(e.Implementors)}
	}
	return out
}

// Implementors returns the records module contributed.
func (p *Page) Implementors(module string) ([]implementors.Record, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, e := range p.entries {
		if e.Module == module {
			return slices.Clone(e.Implementors), true
		}
	}
	return nil, false
}

// Deliveries returns how many module maps the page has absorbed.
func (p *Page) Deliveries() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.deliveries
}

// Len returns the number of records on the page.
func (p *Page) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := 0
	for _, e := range p.entries {
		n += len(e.Implementors)
	}
	return n
}
