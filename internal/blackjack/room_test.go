package blackjack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/cards"
)

type stubEngine struct {
	phase Phase
}

func (that *stubEngine) Phase() Phase {
	return that.phase
}

func newTestRoom(t *testing.T) (*Room, *stubEngine) {
	t.Helper()

	engine := &stubEngine{phase: PhaseLobby}

	room, err := New("1234", engine)
	require.NoError(t, err)

	return room, engine
}

func TestNew(t *testing.T) {
	t.Run("Rejects an empty room code", func(t *testing.T) {
		_, err := New("", &stubEngine{})

		require.ErrorIs(t, err, ErrEmptyRoomCode)
	})

	t.Run("Rejects a nil engine", func(t *testing.T) {
		_, err := New("1234", nil)

		require.ErrorIs(t, err, ErrNilEngine)
	})
}

func TestRoom_GetOrAssignSeatForPlayer(t *testing.T) {
	t.Run("Fills seats in join order and is idempotent", func(t *testing.T) {
		room, _ := newTestRoom(t)

		// When: four distinct players take seats
		for i, playerID := range []string{"p1", "p2", "p3", "p4"} {
			assert.Equal(t, i, room.GetOrAssignSeatForPlayer(playerID))
		}

		require.Equal(t, SeatCount, room.SeatedCount())

		// Then: an already-seated player gets the same seat back
		assert.Equal(t, 1, room.GetOrAssignSeatForPlayer("p2"))
		assert.Equal(t, SeatCount, room.SeatedCount())
	})

	t.Run("Full table falls back to seat 0 without displacing its occupant", func(t *testing.T) {
		room, _ := newTestRoom(t)
		for _, playerID := range []string{"p1", "p2", "p3", "p4"} {
			room.GetOrAssignSeatForPlayer(playerID)
		}

		// When: a fifth caller slips past the occupancy cap
		seat := room.GetOrAssignSeatForPlayer("p5")

		// Then: the fallback seat is reported but not claimed
		assert.Equal(t, 0, seat)

		existing, ok := room.TryGetSeatIndex("p1")
		require.True(t, ok)
		assert.Equal(t, 0, existing)

		_, ok = room.TryGetSeatIndex("p5")
		assert.False(t, ok)
	})

	t.Run("Claims a freed seat", func(t *testing.T) {
		room, _ := newTestRoom(t)
		for _, playerID := range []string{"p1", "p2", "p3"} {
			room.GetOrAssignSeatForPlayer(playerID)
		}

		room.UnseatPlayer("p2")

		require.Equal(t, 2, room.SeatedCount())
		assert.Equal(t, 1, room.GetOrAssignSeatForPlayer("p4"))
	})
}

func TestRoom_UnseatPlayer(t *testing.T) {
	room, _ := newTestRoom(t)
	room.GetOrAssignSeatForPlayer("p1")
	room.GetOrAssignSeatForPlayer("p2")

	room.UnseatPlayer("p1")

	_, ok := room.TryGetSeatIndex("p1")
	assert.False(t, ok)
	assert.Equal(t, 1, room.SeatedCount())

	// unknown player is a no-op
	room.UnseatPlayer("ghost")
	assert.Equal(t, 1, room.SeatedCount())
}

func TestRoom_GameStarted(t *testing.T) {
	room, engine := newTestRoom(t)

	// Then: the room never stores the flag, it reads the engine phase
	assert.False(t, room.GameStarted())

	engine.phase = PhaseDealing
	assert.True(t, room.GameStarted())

	engine.phase = PhaseSettled
	assert.True(t, room.GameStarted())

	engine.phase = PhaseLobby
	assert.False(t, room.GameStarted())
}

func TestTableEngine(t *testing.T) {
	engine := NewTableEngine(rand.New(rand.NewSource(7))) //nolint:gosec // deterministic test seed

	// Then: a fresh engine waits in the lobby with a full shoe
	require.Equal(t, PhaseLobby, engine.Phase())
	require.Equal(t, cards.DeckSize, engine.Shoe().Count())

	// When: a round runs and the table returns to the lobby
	engine.AdvanceTo(PhaseDealing)
	engine.Shoe().DrawMany(10)
	require.Equal(t, cards.DeckSize-10, engine.Shoe().Count())

	engine.AdvanceTo(PhaseLobby)

	// Then: the shoe is rebuilt for the next round
	assert.Equal(t, cards.DeckSize, engine.Shoe().Count())
}
