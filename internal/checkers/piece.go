package checkers

// Side identifies one of the two checkers camps.
type Side string

const (
	NoSide Side = ""
	Red    Side = "red"
	Black  Side = "black"
)

func (that Side) Opponent() Side {
	switch that {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return NoSide
	}
}

// Man returns the side's plain piece.
func (that Side) Man() Piece {
	if that == Red {
		return RedMan
	}
	return BlackMan
}

// King returns the side's crowned piece.
func (that Side) King() Piece {
	if that == Red {
		return RedKing
	}
	return BlackKing
}

// Forward is the row direction the side's men move in: Red starts on the
// low rows and advances down the board, Black advances up.
func (that Side) Forward() int {
	if that == Red {
		return 1
	}
	return -1
}

// PromotionRow is the far rank for the side's men.
func (that Side) PromotionRow() int {
	if that == Red {
		return boardSize - 1
	}
	return 0
}

type Piece uint8

const (
	Empty Piece = iota
	RedMan
	RedKing
	BlackMan
	BlackKing
)

func (that Piece) Side() Side {
	switch that {
	case RedMan, RedKing:
		return Red
	case BlackMan, BlackKing:
		return Black
	default:
		return NoSide
	}
}

func (that Piece) IsKing() bool {
	return that == RedKing || that == BlackKing
}
