package types_test

import (
	"testing"

	"github.com/c360/mechstreams/types"
)

func TestLatest(t *testing.T) {
	tests := []struct {
		name     string
		a, b     types.Datum[int]
		expected int
	}{
		{
			name:     "first newer",
			a:        types.NewDatum(types.Time(2), 10),
			b:        types.NewDatum(types.Time(1), 20),
			expected: 10,
		},
		{
			name:     "second newer wins regardless of value",
			a:        types.NewDatum(types.Time(1), 99),
			b:        types.NewDatum(types.Time(2), 3),
			expected: 3,
		},
		{
			name:     "tie keeps the first",
			a:        types.NewDatum(types.Time(5), 1),
			b:        types.NewDatum(types.Time(5), 2),
			expected: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := types.Latest(test.a, test.b)
			if got.Value != test.expected {
				t.Errorf("expected value %d, got %d", test.expected, got.Value)
			}
		})
	}
}

func TestNewer(t *testing.T) {
	older := types.NewDatum(types.Time(1), "old")
	newer := types.NewDatum(types.Time(2), "new")

	if got := types.Newer[string](nil, nil); got != nil {
		t.Error("two nils should stay nil")
	}
	if got := types.Newer(&older, nil); got != &older {
		t.Error("non-nil side must win against nil")
	}
	if got := types.Newer(nil, &newer); got != &newer {
		t.Error("non-nil side must win against nil")
	}
	if got := types.Newer(&older, &newer); got != &newer {
		t.Error("greater timestamp must win")
	}
	tie := types.NewDatum(types.Time(1), "tie")
	if got := types.Newer(&older, &tie); got != &older {
		t.Error("first argument must win ties")
	}
}

func TestTimeConversions(t *testing.T) {
	tm := types.FromSeconds(1.5)
	if tm != types.Time(1_500_000_000) {
		t.Errorf("expected 1.5e9 ns, got %d", tm)
	}
	if tm.Seconds() != 1.5 {
		t.Errorf("expected 1.5 s, got %f", tm.Seconds())
	}
	if delta := types.Time(3).Sub(types.Time(10)); delta != types.Time(-7) {
		t.Errorf("expected signed delta -7, got %d", delta)
	}
}
