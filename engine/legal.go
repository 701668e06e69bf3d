package engine

// Pure legality rules. Both entry points guarantee a non-empty result
// whenever the relevant hand is non-empty; the forced-play exceptions below
// exist exactly to preserve that contract.

// LowestClub returns the lowest club in the hand, or EmptyCard if it has none.
func LowestClub(hand CardSet) Card {
	return hand.Suited(SuitClubs).Lowest()
}

// LeadPlays returns the set of cards the current leader may legally lead
// with. On the first trick the leader must open with their lowest club; a
// leader somehow dealt no clubs falls back to their full hand rather than
// being stuck. After that, any card is playable except that hearts cannot be
// led until broken — unless the hand holds nothing but hearts.
func LeadPlays(s State) CardSet {
	hand := s.LeaderHand()

	if s.IsFirstTrick() {
		if c := LowestClub(hand); c != EmptyCard {
			return NewCardSet(c)
		}
		return hand
	}

	if !s.HeartsBroken() {
		if plays := hand &^ AllHearts; !plays.IsEmpty() {
			return plays
		}
	}
	return hand
}

// FollowPlays returns the set of cards the follower may legally answer the
// lead with. Holding any card of the lead suit forces following suit.
// Otherwise any card goes, except that on the first trick penalty cards
// (hearts and the queen of spades) may not be discarded — unless the hand
// holds only penalty cards.
func FollowPlays(lead Card, hand CardSet, isFirstTrick bool) CardSet {
	sameSuit := hand.Suited(lead.Suit())
	if !sameSuit.IsEmpty() {
		return sameSuit
	}

	if isFirstTrick {
		if plays := hand &^ AllHearts &^ NewCardSet(QueenOfSpades); !plays.IsEmpty() {
			return plays
		}
	}
	return hand
}
