package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping boxes", NewBox(0, 0, 10, 10), NewBox(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewBox(0, 0, 10, 10), NewBox(15, 0, 10, 10), false},
		{"non-overlapping vertical", NewBox(0, 0, 10, 10), NewBox(0, 15, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewBox(0, 0, 10, 10), NewBox(0, 10, 10, 10), false},
		{"contained box", NewBox(0, 0, 20, 20), NewBox(5, 5, 5, 5), true},
		{"sub-unit overlap", NewBox(0, 0, 10, 10), NewBox(9.5, 9.5, 10, 10), true},
		{"negative coordinates", NewBox(-40, -30, 120, 140), NewBox(0, 0, 40, 80), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.expected, Overlaps(tc.b, tc.a), "overlap must be symmetric")
			assert.Equal(t, tc.expected, tc.a.Intersects(tc.b))
		})
	}
}

func TestOverlapsDoesNotAllocate(t *testing.T) {
	a, b := NewBox(0, 0, 40, 80), NewBox(20, 20, 40, 40)
	allocs := testing.AllocsPerRun(100, func() {
		_ = Overlaps(a, b)
	})
	assert.Zero(t, allocs)
}

func TestBoxContains(t *testing.T) {
	b := NewBox(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, b.Contains(tc.x, tc.y))
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(10, 20, 40, 80)
	assert.Equal(t, 50.0, b.Right())
	assert.Equal(t, 100.0, b.Bottom())
	assert.Equal(t, 30.0, b.CenterX())
}

func TestSignAndClamp(t *testing.T) {
	assert.Equal(t, -1.0, Sign(-3))
	assert.Equal(t, 0.0, Sign(0))
	assert.Equal(t, 1.0, Sign(0.2))

	assert.Equal(t, 12.0, ClampF(40, -12, 12))
	assert.Equal(t, -12.0, ClampF(-40, -12, 12))
	assert.Equal(t, 3.5, ClampF(3.5, -12, 12))

	assert.Equal(t, 0, Clamp(-5, 0, 10))
	assert.Equal(t, 4.0, AbsF(-4))
}
