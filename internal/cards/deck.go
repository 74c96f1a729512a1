package cards

import "math/rand"

// DeckSize is the canonical stock size after a Reset.
const DeckSize = 52

// Deck owns the remaining stock and the random source driving shuffles.
// The source is injected once at construction so decks of different rooms
// stay independent and tests can seed determinism.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

func NewDeck(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	deck.Reset()

	return deck
}

// Reset rebuilds the 52 canonical (suit, rank) pairs in fixed order, then
// shuffles the stock in place.
func (that *Deck) Reset() {
	that.cards = that.cards[:0]
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			that.cards = append(that.cards, Card{Suit: suit, Rank: rank})
		}
	}

	that.Shuffle()
}

// Shuffle runs a Fisher–Yates pass over the current stock: every index from
// the last down to 1 swaps with a uniformly chosen index at or below it.
func (that *Deck) Shuffle() {
	for i := len(that.cards) - 1; i > 0; i-- {
		j := that.rng.Intn(i + 1)
		that.cards[i], that.cards[j] = that.cards[j], that.cards[i]
	}
}

// TryDraw removes the last card of the stock, the top of the deck.
// ok is false when the stock is empty.
func (that *Deck) TryDraw() (Card, bool) {
	if len(that.cards) == 0 {
		return Card{}, false
	}

	card := that.cards[len(that.cards)-1]
	that.cards = that.cards[:len(that.cards)-1]

	return card, true
}

// DrawMany removes up to n cards from the top, stopping early when the
// stock empties. It never errors; callers check the returned length.
func (that *Deck) DrawMany(n int) []Card {
	drawn := make([]Card, 0, n)
	for len(drawn) < n {
		card, ok := that.TryDraw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}

	return drawn
}

func (that *Deck) Count() int {
	return len(that.cards)
}
