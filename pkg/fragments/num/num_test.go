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

package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/implindex/pkg/implementors"
	"github.com/NVIDIA/implindex/pkg/index"
)

func TestImplementors_Table(t *testing.T) {
	m := Implementors()
	assert.Equal(t, []string{Module}, m.Modules())
	recs := m[Module]
	require.Len(t, recs, 3)
	assert.Contains(t, string(recs[0]), "BigUint")
	assert.Contains(t, string(recs[1]), "BigInt")
	assert.Contains(t, string(recs[2]), "Ratio")
	assert.NoError(t, m.Validate())
}

func TestInit_PublishesToGlobalBoard(t *testing.T) {
	// Nothing in this test binary consumes num::Num before this point.
	assert.Equal(t, implementors.StateBuffered, State())
	assert.Contains(t, implementors.Global().Traits(), Trait)

	x := index.New()
	require.NoError(t, x.Attach(implementors.Global(), Trait))
	assert.Equal(t, implementors.StateDelivered, State())

	page, ok := x.Lookup(Trait)
	require.True(t, ok)
	recs, ok := page.Implementors(Module)
	require.True(t, ok)
	assert.Equal(t, Implementors()[Module], recs)
}
