package blackjack

import "errors"

// SeatCount is the fixed table size.
const SeatCount = 4

var (
	ErrEmptyRoomCode = errors.New("room code must not be empty")
	ErrNilEngine     = errors.New("engine must not be nil")
)

// Room wraps a blackjack table with room identity and seat bookkeeping.
// Everything card-related belongs to the engine.
type Room struct {
	code   string
	engine Engine
	seats  [SeatCount]string
}

func New(code string, engine Engine) (*Room, error) {
	if code == "" {
		return nil, ErrEmptyRoomCode
	}

	if engine == nil {
		return nil, ErrNilEngine
	}

	return &Room{
		code:   code,
		engine: engine,
	}, nil
}

func (that *Room) RoomCode() string {
	return that.code
}

// GameStarted derives from the engine phase; it is never stored.
func (that *Room) GameStarted() bool {
	return that.engine.Phase() != PhaseLobby
}

// GetOrAssignSeatForPlayer returns the player's seat, claiming the first
// empty one when unseated. With all four seats taken it returns seat 0
// without claiming it; callers are expected to have capped occupancy at
// SeatCount before seating, so that path is a fallback, not a feature.
func (that *Room) GetOrAssignSeatForPlayer(playerID string) int {
	if seat, ok := that.TryGetSeatIndex(playerID); ok {
		return seat
	}

	for i, occupant := range that.seats {
		if occupant == "" {
			that.seats[i] = playerID
			return i
		}
	}

	return 0
}

// UnseatPlayer clears every seat bound to the player, normally at most one.
func (that *Room) UnseatPlayer(playerID string) {
	for i, occupant := range that.seats {
		if occupant == playerID {
			that.seats[i] = ""
		}
	}
}

func (that *Room) TryGetSeatIndex(playerID string) (int, bool) {
	for i, occupant := range that.seats {
		if occupant == playerID {
			return i, true
		}
	}

	return 0, false
}

func (that *Room) SeatedCount() int {
	count := 0
	for _, occupant := range that.seats {
		if occupant != "" {
			count++
		}
	}

	return count
}

// Snapshot is the read-only view consumers render from.
type Snapshot struct {
	Code        string            `json:"code"`
	Seats       [SeatCount]string `json:"seats"`
	SeatedCount int               `json:"seated_count"`
	Phase       Phase             `json:"phase"`
	GameStarted bool              `json:"game_started"`
}

func (that *Room) Snapshot() *Snapshot {
	return &Snapshot{
		Code:        that.code,
		Seats:       that.seats,
		SeatedCount: that.SeatedCount(),
		Phase:       that.engine.Phase(),
		GameStarted: that.GameStarted(),
	}
}
