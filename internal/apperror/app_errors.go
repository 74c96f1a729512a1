package apperror

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrWrongGame    = errors.New("room hosts a different game")

	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")

	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrNotYourPiece      = errors.New("no piece of yours on that square")
	ErrIllegalMove       = errors.New("move is not legal for this piece")
	ErrCaptureAvailable  = errors.New("a capture is available and must be played")
	ErrMustContinueChain = errors.New("capture chain must continue from the forced square")
)
