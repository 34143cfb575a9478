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
	"log/slog"
	"sync"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/header"
	"github.com/NVIDIA/implindex/pkg/implementors"
)

// Index is the page-wide registry the viewer reads: one Page per trait.
type Index struct {
	version string

	mu       sync.RWMutex
	pages    map[string]*Page
	attached map[string]bool
}

// Option configures an Index.
type Option func(*Index)

// WithVersion stamps the tool version on snapshots.
func WithVersion(version string) Option {
	return func(x *Index) {
		x.version = version
	}
}

// New creates an empty index.
func New(opts ...Option) *Index {
	x := &Index{
		pages:    make(map[string]*Page),
		attached: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Attach makes the index the consumer for trait on board. Anything the
// trait's producers published earlier is delivered before Attach returns.
// Attaching the same trait twice is a no-op.
func (x *Index) Attach(board *implementors.Board, trait string) error {
	if board == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "board is nil")
	}
	if trait == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "trait is empty")
	}

	x.mu.Lock()
	if x.attached[trait] {
		x.mu.Unlock()
		return nil
	}
	page, existed := x.pages[trait]
	if !existed {
		page = NewPage(trait)
		x.pages[trait] = page
	}
	x.attached[trait] = true
	x.mu.Unlock()

	if err := board.For(trait).RegisterConsumer(page.Absorb); err != nil {
		x.mu.Lock()
		delete(x.attached, trait)
		if !existed {
			delete(x.pages, trait)
		}
		x.mu.Unlock()
		return err
	}

	slog.Debug("index attached", "trait", trait, "records", page.Len())
	return nil
}

// AttachAll attaches every trait currently known to board.
func (x *Index) AttachAll(board *implementors.Board) error {
	if board == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "board is nil")
	}
	for _, trait := range board.Traits() {
		if err := x.Attach(board, trait); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the page for trait.
func (x *Index) Lookup(trait string) (*Page, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	p, ok := x.pages[trait]
	return p, ok
}

// Traits returns the traits with a page, in collated order.
func (x *Index) Traits() []string {
	x.mu.RLock()
	traits := make([]string, 0, len(x.pages))
	for t := range x.pages {
		traits = append(traits, t)
	}
	x.mu.RUnlock()

	implementors.SortTraits(traits)
	return traits
}

// Snapshot returns a serializable copy of the whole index.
func (x *Index) Snapshot() *Document {
	doc := &Document{
		Header: *header.New(header.WithKind(header.KindImplementorIndex)),
	}
	if x.version != "" {
		doc.Metadata["version"] = x.version
	}
	for _, trait := range x.Traits() {
		p, ok := x.Lookup(trait)
		if !ok {
			continue
		}
		doc.Pages = append(doc.Pages, PageView{
			Trait:   trait,
			Entries: p.Entries(),
		})
	}
	return doc
}

// PageSnapshot returns a serializable copy of one page.
func (x *Index) PageSnapshot(trait string) (*PageDocument, error) {
	p, ok := x.Lookup(trait)
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"trait not indexed", map[string]any{"trait": trait})
	}
	doc := &PageDocument{
		Header: *header.New(header.WithKind(header.KindImplementorPage)),
		PageView: PageView{
			Trait:   trait,
			Entries: p.Entries(),
		},
	}
	if x.version != "" {
		doc.Metadata["version"] = x.version
	}
	return doc, nil
}
