package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gamehub-backend/internal/board"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the union of fields client actions may send; each
// handler reads only what its action needs.
type RequestPayload struct {
	Player *entity.Player  `json:"player,omitempty"`
	Kind   entity.GameKind `json:"kind,omitempty"`
	Code   string          `json:"code,omitempty"`
	Cell   *int            `json:"cell,omitempty"`
	From   *board.Cell     `json:"from,omitempty"`
	To     *board.Cell     `json:"to,omitempty"`
}

type ResponsePayload struct {
	Player *entity.Player       `json:"player,omitempty"`
	Room   *entity.RoomSnapshot `json:"room,omitempty"`
	Error  string               `json:"error,omitempty"`
}
