package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

type fixed struct {
	datum *types.Datum[bool]
}

func (f fixed) Get() (*types.Datum[bool], error) { return f.datum, nil }
func (f fixed) Update() error                    { return nil }

func in(d *types.Datum[bool]) stream.Input[bool] {
	return stream.Shared[bool](fixed{datum: d})
}

func b(t types.Time, v bool) *types.Datum[bool] {
	return &types.Datum[bool]{Time: t, Value: v}
}

func TestAndTruthTable(t *testing.T) {
	tr := b(1, true)
	fa := b(2, false)
	tests := []struct {
		name string
		a, b *types.Datum[bool]
		want *bool
	}{
		{"false false", fa, fa, ptr(false)},
		{"absent false", nil, fa, ptr(false)},
		{"true false", tr, fa, ptr(false)},
		{"absent absent", nil, nil, nil},
		{"true absent", tr, nil, nil},
		{"absent true", nil, tr, nil},
		{"true true", tr, tr, ptr(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnd(in(tt.a), in(tt.b))
			require.NoError(t, err)
			require.NoError(t, a.Update())
			got, err := a.Get()
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, got.Value)
			}
		})
	}
}

func TestOrTruthTable(t *testing.T) {
	tr := b(1, true)
	fa := b(2, false)
	tests := []struct {
		name string
		a, b *types.Datum[bool]
		want *bool
	}{
		{"false false", fa, fa, ptr(false)},
		{"absent false", nil, fa, nil},
		{"true false", tr, fa, ptr(true)},
		{"absent absent", nil, nil, nil},
		{"true absent", tr, nil, ptr(true)},
		{"false true", fa, tr, ptr(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOr(in(tt.a), in(tt.b))
			require.NoError(t, err)
			require.NoError(t, o.Update())
			got, err := o.Get()
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, got.Value)
			}
		})
	}
}

func TestAndStampsLatestInput(t *testing.T) {
	a, err := NewAnd(in(b(3, true)), in(b(7, true)))
	require.NoError(t, err)
	require.NoError(t, a.Update())
	got, err := a.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.Time(7), got.Time)
}

func TestNot(t *testing.T) {
	n := NewNot(in(b(1, true)))
	require.NoError(t, n.Update())
	got, err := n.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Value)

	n = NewNot(in(nil))
	require.NoError(t, n.Update())
	got, err = n.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func ptr(v bool) *bool {
	return &v
}
