package engine

import "math/bits"

// Suit constants — packed into the high bits of Card as suit*NumRanks+rank.
const (
	SuitClubs    uint8 = 0
	SuitSpades   uint8 = 1
	SuitDiamonds uint8 = 2
	SuitHearts   uint8 = 3
)

// Rank constants — indices into the reduced 7-rank deck. The game is played
// with every other rank removed, so the deck is 4 suits × 7 ranks = 28 cards.
const (
	RankTwo   uint8 = 0
	RankFour  uint8 = 1
	RankSix   uint8 = 2
	RankEight uint8 = 3
	RankTen   uint8 = 4
	RankQueen uint8 = 5
	RankAce   uint8 = 6
)

const (
	NumSuits = 4
	NumRanks = 7
	DeckSize = NumSuits * NumRanks

	// MaxHandSize is the cap enforced by state validation. The deal gives each
	// player 13 cards with 2 held out.
	MaxHandSize = 13
	HandSize    = 13
	NumHeldOut  = DeckSize - 2*HandSize
)

// Card is a packed uint8: suit*NumRanks + rank. Valid cards are in [0, DeckSize).
type Card uint8

// EmptyCard represents the absence of a card (a nop play, an empty slot).
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card(suit*NumRanks + rank)
}

// Suit returns the suit of the card.
func (c Card) Suit() uint8 { return uint8(c) / NumRanks }

// Rank returns the rank index of the card.
func (c Card) Rank() uint8 { return uint8(c) % NumRanks }

// Value returns the face value of the card: 2, 4, 6, 8, 10, 12 (queen) or
// 14 (ace). Higher value wins a trick within a suit.
func (c Card) Value() uint8 { return 2 * (c.Rank() + 1) }

// QueenOfSpades is the high-penalty card.
var QueenOfSpades = NewCard(SuitSpades, RankQueen)

// TwoOfClubs is the globally lowest club and the nominal opening lead.
var TwoOfClubs = NewCard(SuitClubs, RankTwo)

// IsPenalty reports whether the card scores against whoever takes it:
// any heart, or the queen of spades.
func (c Card) IsPenalty() bool {
	return c.Suit() == SuitHearts || c == QueenOfSpades
}

var suitNames = [NumSuits]string{"C", "S", "D", "H"}
var rankNames = [NumRanks]string{"2", "4", "6", "8", "10", "Q", "A"}

// String renders the card as rank+suit, e.g. "QS", "10H".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return rankNames[c.Rank()] + suitNames[c.Suit()]
}

// ---------------------------------------------------------------------------
// CardSet — bitmask over the 28-card deck
// ---------------------------------------------------------------------------

// CardSet is a set of cards packed into a uint32 bitmask, bit i = Card(i).
// All set operations are value-returning; a CardSet is never mutated in place.
type CardSet uint32

// AllCards is the full 28-card deck.
const AllCards CardSet = (1 << DeckSize) - 1

// AllHearts is the set of all heart cards.
const AllHearts CardSet = ((1 << NumRanks) - 1) << (SuitHearts * NumRanks)

// NewCardSet builds a set from the given cards.
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s |= 1 << uint32(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s CardSet) Has(c Card) bool {
	return c != EmptyCard && s>>uint32(c)&1 == 1
}

// Add returns the set with c added.
func (s CardSet) Add(c Card) CardSet { return s | 1<<uint32(c) }

// Remove returns the set with c removed.
func (s CardSet) Remove(c Card) CardSet { return s &^ (1 << uint32(c)) }

// Len returns the number of cards in the set.
func (s CardSet) Len() int { return bits.OnesCount32(uint32(s)) }

// IsEmpty reports whether the set has no cards.
func (s CardSet) IsEmpty() bool { return s == 0 }

// Suited returns the subset of the given suit.
func (s CardSet) Suited(suit uint8) CardSet {
	return s & (((1 << NumRanks) - 1) << (CardSet(suit) * NumRanks))
}

// Lowest returns the lowest-indexed card in the set, or EmptyCard if empty.
// Within one suit this is the lowest rank.
func (s CardSet) Lowest() Card {
	if s == 0 {
		return EmptyCard
	}
	return Card(bits.TrailingZeros32(uint32(s)))
}

// Cards returns the set contents in ascending card order. Allocates; intended
// for enumeration and tests, not the sampling hot path.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for s != 0 {
		c := Card(bits.TrailingZeros32(uint32(s)))
		out = append(out, c)
		s = s.Remove(c)
	}
	return out
}

// Pick returns the n-th card of the set in ascending order. Panics if n is out
// of range; callers index with a value drawn in [0, Len()).
func (s CardSet) Pick(n int) Card {
	for s != 0 {
		c := Card(bits.TrailingZeros32(uint32(s)))
		if n == 0 {
			return c
		}
		n--
		s = s.Remove(c)
	}
	panic("engine: CardSet.Pick index out of range")
}

// String renders the set as a space-separated card list.
func (s CardSet) String() string {
	if s == 0 {
		return "{}"
	}
	out := ""
	for _, c := range s.Cards() {
		if out != "" {
			out += " "
		}
		out += c.String()
	}
	return "{" + out + "}"
}
