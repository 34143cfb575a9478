package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/implementors"
)

func TestFragment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		f       *Fragment
		wantErr bool
	}{
		{name: "valid", f: &Fragment{Trait: "num::Num", Implementors: implementors.ModuleMap{"num": {"x"}}}},
		{name: "nil", f: nil, wantErr: true},
		{name: "blank trait", f: &Fragment{Trait: " ", Implementors: implementors.ModuleMap{"num": {"x"}}}, wantErr: true},
		{name: "no modules", f: &Fragment{Trait: "num::Num"}, wantErr: true},
		{name: "blank module", f: &Fragment{Trait: "num::Num", Implementors: implementors.ModuleMap{"": {"x"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFragment_PublishTo(t *testing.T) {
	board := implementors.NewBoard()
	f := &Fragment{Trait: "num::Num", Implementors: implementors.ModuleMap{"num": {"a", "b"}}}

	p, err := f.PublishTo(board)
	require.NoError(t, err)
	assert.Equal(t, implementors.StateBuffered, p.State())

	var got []implementors.ModuleMap
	require.NoError(t, board.For("num::Num").RegisterConsumer(func(m implementors.ModuleMap) {
		got = append(got, m)
	}))
	assert.Equal(t, implementors.StateDelivered, p.State())
	require.Len(t, got, 1)
	assert.Equal(t, []implementors.Record{"a", "b"}, got[0]["num"])
}

func TestFragment_PublishToInvalid(t *testing.T) {
	f := &Fragment{Trait: "num::Num", Implementors: implementors.ModuleMap{"num": {"a"}}}
	_, err := f.PublishTo(nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))

	_, err = (&Fragment{}).PublishTo(implementors.NewBoard())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestFragment_ProducerIsFresh(t *testing.T) {
	f := &Fragment{Trait: "num::Num", Implementors: implementors.ModuleMap{"num": {"a"}}}
	assert.NotSame(t, f.Producer(), f.Producer())
	assert.Equal(t, implementors.StateUnregistered, f.Producer().State())
}
