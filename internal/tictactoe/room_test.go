package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
)

func newStartedRoom(t *testing.T) *Room {
	t.Helper()

	room, err := New("1234")
	require.NoError(t, err)

	mark, err := room.Join("p1")
	require.NoError(t, err)
	require.Equal(t, MarkX, mark)

	mark, err = room.Join("p2")
	require.NoError(t, err)
	require.Equal(t, MarkO, mark)

	return room
}

func TestNew(t *testing.T) {
	t.Run("Creates an empty room", func(t *testing.T) {
		room, err := New("1234")

		require.NoError(t, err)
		assert.Equal(t, "1234", room.RoomCode())
		assert.False(t, room.IsGameOver())
		assert.Empty(t, room.CurrentPlayerID())
	})

	t.Run("Rejects an empty room code", func(t *testing.T) {
		_, err := New("")

		require.ErrorIs(t, err, ErrEmptyRoomCode)
	})
}

func TestRoom_Join(t *testing.T) {
	t.Run("First joiner takes X and opens the game", func(t *testing.T) {
		room := newStartedRoom(t)

		// Then: the host plays first by default
		assert.Equal(t, "p1", room.CurrentPlayerID())
	})

	t.Run("Rejoin returns the bound mark", func(t *testing.T) {
		room := newStartedRoom(t)

		mark, err := room.Join("p2")

		require.NoError(t, err)
		assert.Equal(t, MarkO, mark)
	})

	t.Run("Third player is rejected", func(t *testing.T) {
		room := newStartedRoom(t)

		_, err := room.Join("p3")

		require.ErrorIs(t, err, apperror.ErrRoomFull)
	})

	t.Run("First-turn policy is swappable", func(t *testing.T) {
		room, err := New("1234")
		require.NoError(t, err)

		// Given: a policy handing the opening move to O
		room.UseFirstTurnPolicy(func(_, playerO string) string { return playerO })

		_, err = room.Join("p1")
		require.NoError(t, err)
		_, err = room.Join("p2")
		require.NoError(t, err)

		assert.Equal(t, "p2", room.CurrentPlayerID())
	})
}

func TestRoom_MakeTurn(t *testing.T) {
	t.Run("Turn alternates between the bound players", func(t *testing.T) {
		room := newStartedRoom(t)

		require.NoError(t, room.MakeTurn("p1", 0))
		assert.Equal(t, "p2", room.CurrentPlayerID())

		require.NoError(t, room.MakeTurn("p2", 4))
		assert.Equal(t, "p1", room.CurrentPlayerID())
	})

	t.Run("Rejects a move before the game starts", func(t *testing.T) {
		room, err := New("1234")
		require.NoError(t, err)
		_, err = room.Join("p1")
		require.NoError(t, err)

		require.ErrorIs(t, room.MakeTurn("p1", 0), apperror.ErrGameIsNotStarted)
	})

	t.Run("Rejects an occupied cell and leaves state unchanged", func(t *testing.T) {
		room := newStartedRoom(t)
		require.NoError(t, room.MakeTurn("p1", 0))

		before := *room.Snapshot()

		err := room.MakeTurn("p2", 0)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *room.Snapshot())
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		room := newStartedRoom(t)

		require.ErrorIs(t, room.MakeTurn("p2", 0), apperror.ErrNotYourTurn)
	})

	t.Run("Rejects an invalid cell index", func(t *testing.T) {
		room := newStartedRoom(t)

		require.ErrorIs(t, room.MakeTurn("p1", -1), ErrInvalidCell)
		require.ErrorIs(t, room.MakeTurn("p1", 9), ErrInvalidCell)
	})
}

func TestRoom_WinningLines(t *testing.T) {
	// Then: three in a row ends the game with the correct winner for all
	// 8 winning lines
	for _, combo := range WinCombos {
		room := newStartedRoom(t)

		// Given: two filler cells for O outside the line
		var fillers []int
		for cell := 0; cell < 9 && len(fillers) < 2; cell++ {
			if cell != combo[0] && cell != combo[1] && cell != combo[2] {
				fillers = append(fillers, cell)
			}
		}

		// When: X completes the line while O plays the fillers
		require.NoError(t, room.MakeTurn("p1", combo[0]))
		require.NoError(t, room.MakeTurn("p2", fillers[0]))
		require.NoError(t, room.MakeTurn("p1", combo[1]))
		require.NoError(t, room.MakeTurn("p2", fillers[1]))
		require.NoError(t, room.MakeTurn("p1", combo[2]))

		require.True(t, room.IsGameOver(), "line %v", combo)
		assert.Equal(t, "p1", room.Winner())
		assert.False(t, room.IsDraw())
		assert.Empty(t, room.CurrentPlayerID())

		// Then: the finished game rejects further moves
		require.ErrorIs(t, room.MakeTurn("p2", fillers[0]), apperror.ErrGameFinished)
	}
}

func TestRoom_Draw(t *testing.T) {
	room := newStartedRoom(t)

	// When: both players fill the board without completing a line
	moves := []struct {
		player string
		cell   int
	}{
		{"p1", 0}, {"p2", 1}, {"p1", 2},
		{"p2", 4}, {"p1", 3}, {"p2", 5},
		{"p1", 7}, {"p2", 6}, {"p1", 8},
	}
	for _, move := range moves {
		require.NoError(t, room.MakeTurn(move.player, move.cell))
	}

	// Then: the game ends in a draw with no winner
	require.True(t, room.IsGameOver())
	assert.True(t, room.IsDraw())
	assert.Empty(t, room.Winner())
}
