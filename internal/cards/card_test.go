package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	assert.Equal(t, "A♠", Card{Suit: Spades, Rank: Ace}.String())
	assert.Equal(t, "10♦", Card{Suit: Diamonds, Rank: Ten}.String())
	assert.Equal(t, "J♣", Card{Suit: Clubs, Rank: Jack}.String())
	assert.Equal(t, "2♥", Card{Suit: Hearts, Rank: Two}.String())
}
