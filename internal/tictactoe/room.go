package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

var (
	ErrEmptyRoomCode = errors.New("room code must not be empty")
	ErrInvalidCell   = errors.New("invalid cell index")

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// FirstTurnPolicy picks the opening player once both marks are bound.
type FirstTurnPolicy func(playerX, playerO string) string

// HostMovesFirst is the default policy: the first joiner took X, X opens.
func HostMovesFirst(playerX, _ string) string {
	return playerX
}

// Room is the session state of one tic-tac-toe room. All mutation goes
// through Join and MakeTurn; once the game is over the state is final.
type Room struct {
	code string

	board   [9]string
	playerX string
	playerO string
	turn    string // player ID, empty before start and after game over

	gameOver bool
	winner   string // player ID, empty on a draw
	draw     bool

	firstTurn FirstTurnPolicy
}

func New(code string) (*Room, error) {
	if code == "" {
		return nil, ErrEmptyRoomCode
	}

	return &Room{
		code:      code,
		firstTurn: HostMovesFirst,
	}, nil
}

func (that *Room) RoomCode() string {
	return that.code
}

// UseFirstTurnPolicy swaps the opening-turn policy; call before the second
// player joins.
func (that *Room) UseFirstTurnPolicy(policy FirstTurnPolicy) {
	that.firstTurn = policy
}

// Join binds the player to a mark: the first joiner takes X, the second
// takes O and the game starts. Rejoining returns the already-bound mark.
func (that *Room) Join(playerID string) (string, error) {
	switch playerID {
	case that.playerX:
		return MarkX, nil
	case that.playerO:
		if that.playerO != "" {
			return MarkO, nil
		}
	}

	if that.playerX == "" {
		that.playerX = playerID
		return MarkX, nil
	}

	if that.playerO != "" {
		return "", fmt.Errorf("%w: room %s", apperror.ErrRoomFull, that.code)
	}

	that.playerO = playerID
	that.turn = that.firstTurn(that.playerX, that.playerO)

	return MarkO, nil
}

// MakeTurn applies one move for the player holding the turn. Rejections
// leave the state untouched.
func (that *Room) MakeTurn(playerID string, cell int) error {
	if that.gameOver {
		return apperror.ErrGameFinished
	}

	if that.turn == "" {
		return apperror.ErrGameIsNotStarted
	}

	if cell < 0 || cell >= len(that.board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.turn != playerID {
		return apperror.ErrNotYourTurn
	}

	if that.board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.board[cell] = that.markOf(playerID)
	that.updateOutcome()

	return nil
}

func (that *Room) markOf(playerID string) string {
	if playerID == that.playerX {
		return MarkX
	}
	return MarkO
}

// updateOutcome checks the 8 winning lines after a move; the draw check
// runs only when no line is complete.
func (that *Room) updateOutcome() {
	for _, combo := range WinCombos {
		a, b, c := that.board[combo[0]], that.board[combo[1]], that.board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			that.gameOver = true
			that.winner = that.playerOfMark(a)
			that.turn = ""

			return
		}
	}

	for _, cell := range that.board {
		if cell == EmptyCell {
			that.turn = that.toggleTurn()
			return
		}
	}

	that.gameOver = true
	that.draw = true
	that.turn = ""
}

func (that *Room) playerOfMark(mark string) string {
	if mark == MarkX {
		return that.playerX
	}
	return that.playerO
}

func (that *Room) toggleTurn() string {
	if that.turn == that.playerX {
		return that.playerO
	}
	return that.playerX
}

func (that *Room) CurrentPlayerID() string {
	return that.turn
}

func (that *Room) IsGameOver() bool {
	return that.gameOver
}

func (that *Room) Winner() string {
	return that.winner
}

func (that *Room) IsDraw() bool {
	return that.draw
}

// Snapshot is the read-only view consumers render from.
type Snapshot struct {
	Code     string    `json:"code"`
	Board    [9]string `json:"board"`
	PlayerX  string    `json:"player_x,omitempty"`
	PlayerO  string    `json:"player_o,omitempty"`
	Turn     string    `json:"player_turn,omitempty"`
	GameOver bool      `json:"game_over"`
	Winner   string    `json:"winner,omitempty"`
	Draw     bool      `json:"draw,omitempty"`
}

func (that *Room) Snapshot() *Snapshot {
	return &Snapshot{
		Code:     that.code,
		Board:    that.board,
		PlayerX:  that.playerX,
		PlayerO:  that.playerO,
		Turn:     that.turn,
		GameOver: that.gameOver,
		Winner:   that.winner,
		Draw:     that.draw,
	}
}
