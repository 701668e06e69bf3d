// Package agent implements the belief side of the Hearts POMDP: the exact
// uniform prior over hidden opponent hands, particle reinvigoration, and a
// POMCP planner that searches over the engine models.
package agent

import (
	"github.com/djpetti/hearts-pomdp/engine"
)

// WeightedState is one hypothesized full state with its prior probability.
type WeightedState struct {
	State  engine.State
	Weight float64
}

// InitialBelief enumerates the exact uniform prior over the opponent's
// hidden hand. From the agent's perspective the opponent's cards and the
// held-out cards are indistinguishable, so the prior ranges over every
// C(n, k) way of choosing the opponent's k cards from the n-card hidden
// pool, each with equal mass. Every particle keeps the pool partitioned:
// whatever is not hypothesized into the opponent's hand is held out.
func InitialBelief(s engine.State) []WeightedState {
	pool := s.OpponentHand | s.HeldOut
	k := s.OpponentHand.Len()

	hands := combinations(pool.Cards(), k)
	weight := 1 / float64(len(hands))

	out := make([]WeightedState, 0, len(hands))
	for _, hand := range hands {
		particle := s
		particle.OpponentHand = hand
		particle.HeldOut = pool &^ hand
		out = append(out, WeightedState{State: particle, Weight: weight})
	}
	return out
}

// combinations returns every k-subset of the given cards as a CardSet.
func combinations(cards []engine.Card, k int) []engine.CardSet {
	if k == 0 {
		return []engine.CardSet{0}
	}
	if k > len(cards) {
		return nil
	}
	var out []engine.CardSet
	// Either the first card is in the subset, or it isn't.
	for _, rest := range combinations(cards[1:], k-1) {
		out = append(out, rest.Add(cards[0]))
	}
	return append(out, combinations(cards[1:], k)...)
}

// Reinvigorate draws one fresh particle consistent with the revealed state:
// the hidden hand is redrawn uniformly without replacement from the current
// hidden pool at its current size, and the held-out set becomes the pool
// remainder. This replaces generic particle perturbation, which would break
// the disjointness and size invariants of the deal.
func Reinvigorate(revealed engine.State, rng *engine.RNG) engine.State {
	pool := revealed.OpponentHand | revealed.HeldOut
	k := revealed.OpponentHand.Len()

	var hand engine.CardSet
	remaining := pool
	for i := 0; i < k; i++ {
		c := rng.PickCard(remaining)
		hand = hand.Add(c)
		remaining = remaining.Remove(c)
	}

	particle := revealed
	particle.OpponentHand = hand
	particle.HeldOut = pool &^ hand
	return particle
}

// Belief is a particle approximation of the agent's belief: a bag of full
// states, each consistent with the public information.
type Belief struct {
	Particles []engine.State
}

// NewBelief draws n particles from the weighted prior.
func NewBelief(prior []WeightedState, n int, rng *engine.RNG) *Belief {
	particles := make([]engine.State, n)
	for i := range particles {
		particles[i] = sampleWeighted(prior, rng)
	}
	return &Belief{Particles: particles}
}

func sampleWeighted(prior []WeightedState, rng *engine.RNG) engine.State {
	// The prior is uniform by construction; an index draw is exact. Guard the
	// general case anyway so non-uniform priors still sample correctly.
	target := float64(rng.IntN(1 << 20)) / float64(1<<20)
	acc := 0.0
	for _, ws := range prior {
		acc += ws.Weight
		if target < acc {
			return ws.State
		}
	}
	return prior[len(prior)-1].State
}

// Sample returns one particle uniformly at random.
func (b *Belief) Sample(rng *engine.RNG) engine.State {
	return b.Particles[rng.IntN(len(b.Particles))]
}

// Update regenerates every particle from the newly revealed true state,
// after a real move has been applied in the environment.
func (b *Belief) Update(revealed engine.State, rng *engine.RNG) {
	for i := range b.Particles {
		b.Particles[i] = Reinvigorate(revealed, rng)
	}
}
