// Package engine implements a two-player reduced-deck Hearts game as a
// POMDP: state, legality rules, and the transition / observation / reward
// models an external planner samples from.
//
// Everything in this package is a flat value type with no hidden shared
// state. Randomness comes from an explicit *RNG handle threaded through
// every sampling call, so runs are reproducible under a fixed seed.
package engine

import "fmt"

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	// FlagFirstTrick is set until the opening trick has been resolved.
	FlagFirstTrick uint8 = 1 << 0
	// FlagAgentLeads is set when the agent plays first in the current trick.
	FlagAgentLeads uint8 = 1 << 1
	// FlagHeartsBroken is set once any heart has been played. Monotone: never
	// cleared within a hand.
	FlagHeartsBroken uint8 = 1 << 2
	// FlagAgentTookAll / FlagOpponentTookAll track moonshot eligibility. Both
	// start set; a side loses its flag once the other side wins a trick
	// containing a penalty card. Monotone: never re-set within a hand.
	FlagAgentTookAll    uint8 = 1 << 3
	FlagOpponentTookAll uint8 = 1 << 4
)

// State is the complete POMDP state: both hands, the held-out cards, the
// trick in progress, and the hand-level flags. It is a flat value type —
// copied with =, compared with ==, and never mutated in place; every
// transition produces a fresh value.
type State struct {
	AgentHand    CardSet
	OpponentHand CardSet
	HeldOut      CardSet

	// Current trick. EmptyCard means no play (a nop, or not played yet).
	AgentPlay    Card
	OpponentPlay Card

	// OpponentPartialPlay is the opponent's pre-committed lead for the NEXT
	// trick, materialized by the transition lookahead when the opponent wins
	// the current trick. It has already been removed from OpponentHand.
	OpponentPartialPlay Card

	Flags uint8
}

func (s State) IsFirstTrick() bool         { return s.Flags&FlagFirstTrick != 0 }
func (s State) AgentLeads() bool           { return s.Flags&FlagAgentLeads != 0 }
func (s State) HeartsBroken() bool         { return s.Flags&FlagHeartsBroken != 0 }
func (s State) AgentTookAllPenalties() bool {
	return s.Flags&FlagAgentTookAll != 0
}
func (s State) OpponentTookAllPenalties() bool {
	return s.Flags&FlagOpponentTookAll != 0
}

// IsTerminal reports whether the hand is over: every card has been played.
func (s State) IsTerminal() bool {
	return s.AgentHand.IsEmpty() && s.OpponentHand.IsEmpty() &&
		s.OpponentPartialPlay == EmptyCard
}

// LeadPlay returns the card played first in the current trick, or EmptyCard.
func (s State) LeadPlay() Card {
	if s.AgentLeads() {
		return s.AgentPlay
	}
	return s.OpponentPlay
}

// SecondPlay returns the card played second in the current trick, or EmptyCard.
func (s State) SecondPlay() Card {
	if s.AgentLeads() {
		return s.OpponentPlay
	}
	return s.AgentPlay
}

// LeaderHand returns the hand of the player leading the current trick.
func (s State) LeaderHand() CardSet {
	if s.AgentLeads() {
		return s.AgentHand
	}
	return s.OpponentHand
}

// FollowerHand returns the hand of the player following in the current trick.
func (s State) FollowerHand() CardSet {
	if s.AgentLeads() {
		return s.OpponentHand
	}
	return s.AgentHand
}

// PlayedCards returns every card already out of both hands and the held-out
// pool. A pre-committed opponent lead counts as played: it is face up.
func (s State) PlayedCards() CardSet {
	return AllCards &^ s.AgentHand &^ s.OpponentHand &^ s.HeldOut
}

// Validate checks the fatal invariant class: the three card pools must
// partition the deck (together with any pre-committed opponent lead), hands
// must respect the size cap, and simultaneous plays must differ. A violation
// indicates an upstream bug, never a recoverable condition.
func (s State) Validate() error {
	if s.AgentHand.Len() > MaxHandSize {
		return fmt.Errorf("agent hand has %d cards, max %d", s.AgentHand.Len(), MaxHandSize)
	}
	if s.OpponentHand.Len() > MaxHandSize {
		return fmt.Errorf("opponent hand has %d cards, max %d", s.OpponentHand.Len(), MaxHandSize)
	}
	if s.AgentHand&s.OpponentHand != 0 {
		return fmt.Errorf("hands overlap: %v", s.AgentHand&s.OpponentHand)
	}
	if s.AgentHand&s.HeldOut != 0 || s.OpponentHand&s.HeldOut != 0 {
		return fmt.Errorf("held-out cards overlap a hand")
	}
	if s.OpponentPartialPlay != EmptyCard {
		if s.AgentHand.Has(s.OpponentPartialPlay) || s.OpponentHand.Has(s.OpponentPartialPlay) ||
			s.HeldOut.Has(s.OpponentPartialPlay) {
			return fmt.Errorf("partial play %v still in a card pool", s.OpponentPartialPlay)
		}
	}
	if s.AgentPlay != EmptyCard && s.AgentPlay == s.OpponentPlay {
		return fmt.Errorf("both players played %v", s.AgentPlay)
	}
	return nil
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — explicit handle, no global state
// ---------------------------------------------------------------------------

// RNG is a seedable xorshift64 pseudorandom source. Every sampling operation
// in this package takes one explicitly, so simulations are reproducible and
// independent planner workers can hold independent streams.
type RNG struct {
	state uint64
}

// NewRNG returns an RNG seeded with the given value.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return &RNG{state: seed}
}

func (r *RNG) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// IntN returns a random int in [0, n). Panics if n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		panic("engine: RNG.IntN with non-positive bound")
	}
	return int(r.next() % uint64(n))
}

// PickCard draws one card uniformly from the set. Panics on an empty set.
func (r *RNG) PickCard(s CardSet) Card {
	return s.Pick(r.IntN(s.Len()))
}

// ---------------------------------------------------------------------------
// Deal
// ---------------------------------------------------------------------------

// Deal produces a fresh hand-start state: the deck is shuffled and split
// 13 / 13 / 2, and the holder of the globally lowest club leads the first
// trick. When the opponent leads, their opening club is pre-committed to
// OpponentPartialPlay immediately, so the agent's first decision point
// already sees a fully formed lead.
func Deal(rng *RNG) State {
	// Fisher-Yates over the full deck.
	var deck [DeckSize]Card
	for i := range deck {
		deck[i] = Card(i)
	}
	for i := DeckSize - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	var agent, opponent, heldOut CardSet
	for i, c := range deck {
		switch {
		case i < HandSize:
			agent = agent.Add(c)
		case i < 2*HandSize:
			opponent = opponent.Add(c)
		default:
			heldOut = heldOut.Add(c)
		}
	}

	agentClub := agent.Suited(SuitClubs).Lowest()
	opponentClub := opponent.Suited(SuitClubs).Lowest()
	agentLeads := true
	if agentClub == EmptyCard {
		agentLeads = false
	} else if opponentClub != EmptyCard {
		agentLeads = agentClub < opponentClub
	}

	s := State{
		AgentHand:           agent,
		OpponentHand:        opponent,
		HeldOut:             heldOut,
		AgentPlay:           EmptyCard,
		OpponentPlay:        EmptyCard,
		OpponentPartialPlay: EmptyCard,
		Flags:               FlagFirstTrick | FlagAgentTookAll | FlagOpponentTookAll,
	}
	if agentLeads {
		s.Flags |= FlagAgentLeads
	} else {
		// The opponent opens: commit their lowest club as the partial play.
		s.OpponentPartialPlay = opponentClub
		s.OpponentHand = opponent.Remove(opponentClub)
	}
	return s
}
