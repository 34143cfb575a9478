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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	h := New()
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Empty(t, h.Kind)

	ts, ok := h.Metadata["timestamp"]
	require.True(t, ok, "timestamp should be set")
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestNew_Options(t *testing.T) {
	h := New(
		WithKind(KindImplementorPage),
		WithAPIVersion("v9"),
		WithMetadata("version", "v0.3.0"),
		WithMetadata("trait", "num::Num"),
	)
	assert.Equal(t, KindImplementorPage, h.Kind)
	assert.Equal(t, "v9", h.APIVersion)
	assert.Equal(t, "v0.3.0", h.Metadata["version"])
	assert.Equal(t, "num::Num", h.Metadata["trait"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, "v", h.Metadata["k"])
}

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindImplementorIndex, true},
		{KindImplementorPage, true},
		{KindFragment, true},
		{Kind("Crate"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.IsValid())
		})
	}
}
