package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid dimensions", func(t *testing.T) {
		// When: creating a board with positive dimensions
		b, err := New(8, 8)

		// Then: construction succeeds and dimensions are fixed
		require.NoError(t, err)
		assert.Equal(t, 8, b.Rows())
		assert.Equal(t, 8, b.Columns())
	})

	t.Run("Rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 8}, {8, 0}, {-1, 8}, {8, -3}} {
			_, err := New(dims[0], dims[1])
			require.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})
}

func TestBoard_IndexRoundTrip(t *testing.T) {
	// Given: a non-square board, so row/column mixups cannot cancel out
	b, err := New(3, 5)
	require.NoError(t, err)

	// Then: FromIndex(ToIndex(r,c)) == (r,c) for every cell
	for cell := range b.AllCells() {
		index, err := b.ToIndex(cell.Row, cell.Col)
		require.NoError(t, err)

		back, err := b.FromIndex(index)
		require.NoError(t, err)
		assert.Equal(t, cell, back)
	}
}

func TestBoard_OutOfRange(t *testing.T) {
	b, err := New(3, 5)
	require.NoError(t, err)

	outside := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 5}, {3, 5}}

	for _, pair := range outside {
		row, col := pair[0], pair[1]

		assert.False(t, b.IsInside(row, col))

		_, err = b.ToIndex(row, col)
		require.ErrorIs(t, err, ErrOutOfBounds)

		_, err = b.IsDarkSquare(row, col)
		require.ErrorIs(t, err, ErrOutOfBounds)
	}

	_, err = b.FromIndex(-1)
	require.ErrorIs(t, err, ErrInvalidIndex)

	_, err = b.FromIndex(15)
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestBoard_AllCells(t *testing.T) {
	b, err := New(3, 5)
	require.NoError(t, err)

	// When: collecting the full iteration
	var cells []Cell
	for cell := range b.AllCells() {
		cells = append(cells, cell)
	}

	// Then: exactly rows*columns cells, each unique, in row-major order
	require.Len(t, cells, 15)

	seen := make(map[Cell]bool, len(cells))
	for i, cell := range cells {
		assert.False(t, seen[cell], "duplicate cell %v", cell)
		seen[cell] = true
		assert.Equal(t, Cell{Row: i / 5, Col: i % 5}, cell)
	}

	// Then: the sequence is restartable
	count := 0
	for range b.AllCells() {
		count++
	}
	assert.Equal(t, 15, count)
}

func TestBoard_IsDarkSquare(t *testing.T) {
	b, err := New(8, 8)
	require.NoError(t, err)

	for cell := range b.AllCells() {
		dark, err := b.IsDarkSquare(cell.Row, cell.Col)
		require.NoError(t, err)
		assert.Equal(t, (cell.Row+cell.Col)%2 == 1, dark)
	}
}
