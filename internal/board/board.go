package board

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrOutOfBounds       = errors.New("coordinates are outside the board")
	ErrInvalidIndex      = errors.New("linear index is outside the board")
)

// Cell is a (row, column) pair on a Board. Games also use it for optional
// coordinate fields such as a forced-continuation square, so a pair can
// never be half-assigned.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a fixed rectangular coordinate space. It owns no cell contents;
// grid games keep their own piece storage and use Board for geometry only.
type Board struct {
	rows    int
	columns int
}

func New(rows, columns int) (Board, error) {
	if rows <= 0 || columns <= 0 {
		return Board{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, columns)
	}

	return Board{rows: rows, columns: columns}, nil
}

func (that Board) Rows() int {
	return that.rows
}

func (that Board) Columns() int {
	return that.columns
}

func (that Board) IsInside(row, col int) bool {
	return row >= 0 && row < that.rows && col >= 0 && col < that.columns
}

// ToIndex converts coordinates to a row-major linear index.
func (that Board) ToIndex(row, col int) (int, error) {
	if !that.IsInside(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}

	return row*that.columns + col, nil
}

// FromIndex is the exact inverse of ToIndex for in-range inputs.
func (that Board) FromIndex(index int) (Cell, error) {
	if index < 0 || index >= that.rows*that.columns {
		return Cell{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	return Cell{Row: index / that.columns, Col: index % that.columns}, nil
}

// IsDarkSquare reports the alternating-tile parity used by games played on
// every other square.
func (that Board) IsDarkSquare(row, col int) (bool, error) {
	if !that.IsInside(row, col) {
		return false, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}

	return (row+col)%2 == 1, nil
}

// AllCells iterates every cell in row-major order. The sequence is
// restartable; ranging over it twice yields the same cells.
func (that Board) AllCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for row := range that.rows {
			for col := range that.columns {
				if !yield(Cell{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}
