package blackjack

import (
	"math/rand"

	"github.com/rocketscienceinc/gamehub-backend/internal/cards"
)

// Phase is the coarse state the room reads off the dealing engine.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhaseDealing Phase = "dealing"
	PhasePlaying Phase = "playing"
	PhaseSettled Phase = "settled"
)

// Engine is the dealing/scoring collaborator behind a blackjack room. The
// room itself only ever reads the phase; all card and bet logic lives on
// the other side of this contract.
type Engine interface {
	Phase() Phase
}

// TableEngine is the minimal in-process engine: it owns the table's shoe
// and its phase, nothing more. Dealing and scoring plug in behind the
// Engine contract.
type TableEngine struct {
	phase Phase
	shoe  *cards.Deck
}

func NewTableEngine(rng *rand.Rand) *TableEngine {
	return &TableEngine{
		phase: PhaseLobby,
		shoe:  cards.NewDeck(rng),
	}
}

func (that *TableEngine) Phase() Phase {
	return that.phase
}

// AdvanceTo moves the engine to the given phase; returning to the lobby
// rebuilds the shoe for the next round.
func (that *TableEngine) AdvanceTo(phase Phase) {
	if phase == PhaseLobby && that.phase != PhaseLobby {
		that.shoe.Reset()
	}

	that.phase = phase
}

// Shoe exposes the table-local deck; every room owns its own.
func (that *TableEngine) Shoe() *cards.Deck {
	return that.shoe
}
