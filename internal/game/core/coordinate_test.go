package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCoordinate(t *testing.T) {
	c := NewCoordinate(3, 5)
	assert.Equal(t, 3, c.X)
	assert.Equal(t, 5, c.Y)
}

func TestCoordinate_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		coord    Coordinate
		w, h     int
		expected bool
	}{
		{"Origin", Coordinate{0, 0}, 3, 1, true},
		{"LastColumn", Coordinate{2, 0}, 3, 1, true},
		{"PastWidth", Coordinate{3, 0}, 3, 1, false},
		{"PastHeight", Coordinate{0, 1}, 3, 1, false},
		{"Negative", Coordinate{-1, 0}, 3, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coord.IsValid(tt.w, tt.h))
		})
	}
}

func TestCoordinate_Add(t *testing.T) {
	c := Coordinate{2, 3}
	assert.Equal(t, Coordinate{3, 2}, c.Add(Coordinate{1, -1}))
	assert.Equal(t, c, c.Add(Coordinate{}))
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(1,2)", Coordinate{1, 2}.String())
	assert.Equal(t, "(-1,0)", Coordinate{-1, 0}.String())
}

func TestLatticeOffsets(t *testing.T) {
	for _, off := range OrthogonalOffsets {
		assert.Equal(t, 1, off.X*off.X+off.Y*off.Y, "%v", off)
	}
	for _, off := range DiagonalOffsets {
		assert.Equal(t, 2, off.X*off.X+off.Y*off.Y, "%v", off)
	}
}

func TestCoordinate_ComparableAsMapKey(t *testing.T) {
	m := map[Coordinate]int{{1, 1}: 7}
	m[NewCoordinate(1, 1)]++
	assert.Len(t, m, 1)
	assert.Equal(t, 8, m[Coordinate{1, 1}])
}
