package entity

import "encoding/json"

// GameKind tags the concrete game hosted by a room.
type GameKind string

const (
	KindTicTacToe GameKind = "tictactoe"
	KindCheckers  GameKind = "checkers"
	KindBlackjack GameKind = "blackjack"
)

// RoomState is the one capability every per-game session state satisfies.
// The dispatcher keys live rooms by this code; uniqueness across live rooms
// is enforced by the owning registry, not by the state itself.
type RoomState interface {
	RoomCode() string
}

// RoomSnapshot is the persisted form of a room: the game-specific public
// state as raw JSON under a kind tag, enough to rebuild a full snapshot
// for any consumer.
type RoomSnapshot struct {
	Code  string          `json:"code"`
	Kind  GameKind        `json:"kind"`
	State json.RawMessage `json:"state"`
}
