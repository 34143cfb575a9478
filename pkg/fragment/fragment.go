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

package fragment

import (
	"fmt"
	"strings"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/implementors"
)

// Fragment is the implementor table one module generates for one trait.
type Fragment struct {
	Trait        string                 `json:"trait" yaml:"trait"`
	Implementors implementors.ModuleMap `json:"implementors" yaml:"implementors"`
}

// Validate checks that the fragment names a trait and carries at least one module.
func (f *Fragment) Validate() error {
	if f == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "fragment is nil")
	}
	if strings.TrimSpace(f.Trait) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "fragment trait is empty")
	}
	if err := f.Implementors.Validate(); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid fragment", err, map[string]any{"trait": f.Trait})
	}
	return nil
}

// Producer returns a fresh producer for the fragment's table.
func (f *Fragment) Producer() *implementors.Producer {
	return implementors.NewProducer(f.Implementors)
}

// PublishTo publishes the fragment on the coordinator board keeps for its trait.
// The returned producer reports whether the table was delivered or buffered.
func (f *Fragment) PublishTo(board *implementors.Board) (*implementors.Producer, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "board is nil")
	}
	p := f.Producer()
	if err := p.Publish(board.For(f.Trait)); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", f.Trait, err)
	}
	return p, nil
}
