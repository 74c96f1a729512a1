package checkers

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/board"
)

const (
	boardSize = 8
	startRows = 3
)

var ErrEmptyRoomCode = errors.New("room code must not be empty")

// SideAssignPolicy maps the two joiners to sides once the second arrives.
type SideAssignPolicy func(first, second string) (red, black string)

// RandomSides is the default policy. Side assignment is deliberately not
// configurable by players; the coin flip is the fairness mechanism.
func RandomSides(first, second string) (string, string) {
	if rand.Intn(2) == 0 { //nolint:gosec // fairness coin flip, not crypto
		return first, second
	}
	return second, first
}

// Move records an applied origin/destination pair, kept for UI highlighting
// only; it plays no part in rule checks.
type Move struct {
	From board.Cell `json:"from"`
	To   board.Cell `json:"to"`
}

// Room is the session state of one checkers room: an 8x8 typed grid plus
// turn ownership and the capture-chain bookkeeping around it.
//
// Lifecycle: NotStarted until the second distinct player joins, then Active
// until one side wins. The forced-continuation cell, when set, pins the next
// move's origin to the piece that just captured.
type Room struct {
	code string
	geom board.Board

	grid    [boardSize][boardSize]Piece
	players map[Side]string
	pending string // first joiner, held until sides are assigned

	started  bool
	turn     string // player ID, empty before start
	gameOver bool
	winner   string

	forced   *board.Cell
	lastMove *Move
	moves    int

	assignSides SideAssignPolicy
}

func New(code string) (*Room, error) {
	if code == "" {
		return nil, ErrEmptyRoomCode
	}

	geom, err := board.New(boardSize, boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build board geometry: %w", err)
	}

	return &Room{
		code:        code,
		geom:        geom,
		players:     make(map[Side]string),
		assignSides: RandomSides,
	}, nil
}

func (that *Room) RoomCode() string {
	return that.code
}

// UseSideAssignPolicy swaps the side-assignment policy; call before the
// second player joins.
func (that *Room) UseSideAssignPolicy(policy SideAssignPolicy) {
	that.assignSides = policy
}

// Join admits a player. The first joiner waits unseated; the arrival of a
// second distinct player assigns sides, lays out the board and starts the
// game. Rejoining is a no-op.
func (that *Room) Join(playerID string) error {
	if that.gameOver {
		return apperror.ErrGameFinished
	}

	if playerID == that.pending || that.sideOf(playerID) != NoSide {
		return nil
	}

	if that.started {
		return fmt.Errorf("%w: room %s", apperror.ErrRoomFull, that.code)
	}

	if that.pending == "" {
		that.pending = playerID
		return nil
	}

	that.start(that.pending, playerID)

	return nil
}

func (that *Room) start(first, second string) {
	redPlayer, blackPlayer := that.assignSides(first, second)
	that.players[Red] = redPlayer
	that.players[Black] = blackPlayer
	that.pending = ""

	for cell := range that.geom.AllCells() {
		dark, _ := that.geom.IsDarkSquare(cell.Row, cell.Col)
		if !dark {
			continue
		}

		switch {
		case cell.Row < startRows:
			that.grid[cell.Row][cell.Col] = RedMan
		case cell.Row >= boardSize-startRows:
			that.grid[cell.Row][cell.Col] = BlackMan
		}
	}

	that.started = true
	that.turn = that.players[Red]
}

// ApplyMove validates and applies one move for the acting player. Any
// rejection happens before the first write; an error therefore always means
// the room is exactly as it was.
func (that *Room) ApplyMove(playerID string, from, to board.Cell) error {
	if that.gameOver {
		return apperror.ErrGameFinished
	}

	if !that.started {
		return apperror.ErrGameIsNotStarted
	}

	if that.turn != playerID {
		return apperror.ErrNotYourTurn
	}

	if that.forced != nil && *that.forced != from {
		return fmt.Errorf("%w: continue from (%d,%d)", apperror.ErrMustContinueChain, that.forced.Row, that.forced.Col)
	}

	if !that.geom.IsInside(from.Row, from.Col) || !that.geom.IsInside(to.Row, to.Col) {
		return fmt.Errorf("%w: (%d,%d)->(%d,%d)", board.ErrOutOfBounds, from.Row, from.Col, to.Row, to.Col)
	}

	piece := that.grid[from.Row][from.Col]
	side := piece.Side()
	if piece == Empty || side != that.sideOf(playerID) {
		return apperror.ErrNotYourPiece
	}

	if that.grid[to.Row][to.Col] != Empty {
		return apperror.ErrCellOccupied
	}

	captured, isCapture, err := that.classifyMove(piece, from, to)
	if err != nil {
		return err
	}

	if !isCapture && that.sideHasCapture(side) {
		return apperror.ErrCaptureAvailable
	}

	that.grid[from.Row][from.Col] = Empty
	moved := piece
	if !piece.IsKing() && to.Row == side.PromotionRow() {
		moved = side.King()
	}
	that.grid[to.Row][to.Col] = moved

	if isCapture {
		that.grid[captured.Row][captured.Col] = Empty
	}

	that.lastMove = &Move{From: from, To: to}
	that.moves++

	// A capture chain keeps the turn while the same piece can capture again.
	if isCapture && that.hasCaptureFrom(to) {
		forced := to
		that.forced = &forced

		return nil
	}

	that.forced = nil
	that.finishTurn(side)

	return nil
}

// classifyMove checks pure move geometry: a single diagonal step, or a jump
// over exactly one adjacent enemy piece. Men move forward only, kings both
// ways.
func (that *Room) classifyMove(piece Piece, from, to board.Cell) (board.Cell, bool, error) {
	rowDelta := to.Row - from.Row
	colDelta := to.Col - from.Col

	if abs(rowDelta) != abs(colDelta) {
		return board.Cell{}, false, apperror.ErrIllegalMove
	}

	if !piece.IsKing() && sign(rowDelta) != piece.Side().Forward() {
		return board.Cell{}, false, apperror.ErrIllegalMove
	}

	switch abs(rowDelta) {
	case 1:
		return board.Cell{}, false, nil
	case 2:
		mid := board.Cell{Row: from.Row + rowDelta/2, Col: from.Col + colDelta/2}
		if that.grid[mid.Row][mid.Col].Side() != piece.Side().Opponent() {
			return board.Cell{}, false, apperror.ErrIllegalMove
		}

		return mid, true, nil
	default:
		return board.Cell{}, false, apperror.ErrIllegalMove
	}
}

// hasCaptureFrom reports whether the piece on the cell has at least one
// legal jump.
func (that *Room) hasCaptureFrom(from board.Cell) bool {
	piece := that.grid[from.Row][from.Col]
	if piece == Empty {
		return false
	}

	for _, dir := range that.directionsOf(piece) {
		mid := board.Cell{Row: from.Row + dir.Row, Col: from.Col + dir.Col}
		land := board.Cell{Row: from.Row + 2*dir.Row, Col: from.Col + 2*dir.Col}

		if !that.geom.IsInside(land.Row, land.Col) {
			continue
		}

		if that.grid[mid.Row][mid.Col].Side() == piece.Side().Opponent() && that.grid[land.Row][land.Col] == Empty {
			return true
		}
	}

	return false
}

func (that *Room) hasStepFrom(from board.Cell) bool {
	piece := that.grid[from.Row][from.Col]
	if piece == Empty {
		return false
	}

	for _, dir := range that.directionsOf(piece) {
		step := board.Cell{Row: from.Row + dir.Row, Col: from.Col + dir.Col}
		if that.geom.IsInside(step.Row, step.Col) && that.grid[step.Row][step.Col] == Empty {
			return true
		}
	}

	return false
}

// sideHasCapture scans every piece of the side for at least one legal jump;
// it backs the mandatory-capture rule.
func (that *Room) sideHasCapture(side Side) bool {
	for cell := range that.geom.AllCells() {
		if that.grid[cell.Row][cell.Col].Side() == side && that.hasCaptureFrom(cell) {
			return true
		}
	}

	return false
}

func (that *Room) sideHasAnyMove(side Side) bool {
	for cell := range that.geom.AllCells() {
		if that.grid[cell.Row][cell.Col].Side() != side {
			continue
		}

		if that.hasStepFrom(cell) || that.hasCaptureFrom(cell) {
			return true
		}
	}

	return false
}

func (that *Room) countPieces(side Side) int {
	count := 0
	for cell := range that.geom.AllCells() {
		if that.grid[cell.Row][cell.Col].Side() == side {
			count++
		}
	}

	return count
}

// finishTurn passes the turn, first checking both loss conditions for the
// side that would move next: no pieces left, or no legal move at all.
func (that *Room) finishTurn(mover Side) {
	next := mover.Opponent()

	if that.countPieces(next) == 0 || !that.sideHasAnyMove(next) {
		that.gameOver = true
		that.winner = that.players[mover]
		that.turn = ""

		return
	}

	that.turn = that.players[next]
}

func (that *Room) sideOf(playerID string) Side {
	for side, id := range that.players {
		if id == playerID {
			return side
		}
	}

	return NoSide
}

var allDirections = []board.Cell{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}

func (that *Room) directionsOf(piece Piece) []board.Cell {
	if piece.IsKing() {
		return allDirections
	}

	forward := piece.Side().Forward()

	return []board.Cell{{Row: forward, Col: 1}, {Row: forward, Col: -1}}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func (that *Room) IsStarted() bool {
	return that.started
}

func (that *Room) IsGameOver() bool {
	return that.gameOver
}

func (that *Room) Winner() string {
	return that.winner
}

func (that *Room) CurrentTurnPlayerID() string {
	return that.turn
}

func (that *Room) MoveCount() int {
	return that.moves
}

// SideOf reports the side bound to the player, ok false while unassigned.
func (that *Room) SideOf(playerID string) (Side, bool) {
	side := that.sideOf(playerID)

	return side, side != NoSide
}

func (that *Room) PlayerOf(side Side) string {
	return that.players[side]
}

func (that *Room) PieceAt(cell board.Cell) (Piece, error) {
	if !that.geom.IsInside(cell.Row, cell.Col) {
		return Empty, fmt.Errorf("%w: (%d,%d)", board.ErrOutOfBounds, cell.Row, cell.Col)
	}

	return that.grid[cell.Row][cell.Col], nil
}

// ForcedContinuation returns the square a capture chain is pinned to,
// ok false when the next move is unconstrained.
func (that *Room) ForcedContinuation() (board.Cell, bool) {
	if that.forced == nil {
		return board.Cell{}, false
	}

	return *that.forced, true
}

func (that *Room) LastMove() (Move, bool) {
	if that.lastMove == nil {
		return Move{}, false
	}

	return *that.lastMove, true
}

// Snapshot is the read-only view consumers render from.
type Snapshot struct {
	Code      string                      `json:"code"`
	Grid      [boardSize][boardSize]Piece `json:"grid"`
	Players   map[Side]string             `json:"players,omitempty"`
	Started   bool                        `json:"started"`
	Turn      string                      `json:"player_turn,omitempty"`
	GameOver  bool                        `json:"game_over"`
	Winner    string                      `json:"winner,omitempty"`
	Forced    *board.Cell                 `json:"forced_continuation,omitempty"`
	LastMove  *Move                       `json:"last_move,omitempty"`
	MoveCount int                         `json:"move_count"`
}

func (that *Room) Snapshot() *Snapshot {
	snapshot := &Snapshot{
		Code:      that.code,
		Grid:      that.grid,
		Started:   that.started,
		Turn:      that.turn,
		GameOver:  that.gameOver,
		Winner:    that.winner,
		MoveCount: that.moves,
	}

	if len(that.players) > 0 {
		snapshot.Players = map[Side]string{Red: that.players[Red], Black: that.players[Black]}
	}

	if that.forced != nil {
		forced := *that.forced
		snapshot.Forced = &forced
	}

	if that.lastMove != nil {
		last := *that.lastMove
		snapshot.LastMove = &last
	}

	return snapshot
}
