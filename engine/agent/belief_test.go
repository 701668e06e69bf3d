package agent

import (
	"math"
	"testing"

	"github.com/djpetti/hearts-pomdp/engine"
)

func TestInitialBeliefEnumeratesAllHands(t *testing.T) {
	s := engine.Deal(engine.NewRNG(1))
	prior := InitialBelief(s)

	// C(hidden pool, hand size): pool is the opponent's hand plus the two
	// held-out cards.
	pool := s.OpponentHand | s.HeldOut
	n, k := pool.Len(), s.OpponentHand.Len()
	want := binomial(n, k)
	if len(prior) != want {
		t.Fatalf("prior has %d states, want C(%d,%d) = %d", len(prior), n, k, want)
	}

	seen := map[engine.CardSet]bool{}
	for _, ws := range prior {
		p := ws.State
		if math.Abs(ws.Weight-1/float64(want)) > 1e-12 {
			t.Fatalf("particle weight %v, want uniform %v", ws.Weight, 1/float64(want))
		}
		if p.OpponentHand.Len() != k {
			t.Fatalf("hypothesized hand has %d cards, want %d", p.OpponentHand.Len(), k)
		}
		if p.OpponentHand|p.HeldOut != pool {
			t.Fatal("particle does not partition the hidden pool")
		}
		if p.OpponentHand&p.HeldOut != 0 {
			t.Fatal("particle hand overlaps its held-out set")
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("particle invalid: %v", err)
		}
		// Public fields must be untouched.
		if p.AgentHand != s.AgentHand || p.Flags != s.Flags ||
			p.OpponentPartialPlay != s.OpponentPartialPlay {
			t.Fatal("particle changed a public field")
		}
		if seen[p.OpponentHand] {
			t.Fatalf("duplicate hypothesized hand %v", p.OpponentHand)
		}
		seen[p.OpponentHand] = true
	}
}

func binomial(n, k int) int {
	if k > n {
		return 0
	}
	out := 1
	for i := 0; i < k; i++ {
		out = out * (n - i) / (i + 1)
	}
	return out
}

func TestInitialBeliefWeightsSumToOne(t *testing.T) {
	prior := InitialBelief(engine.Deal(engine.NewRNG(4)))
	sum := 0.0
	for _, ws := range prior {
		sum += ws.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("prior mass sums to %v, want 1", sum)
	}
}

func TestReinvigorateRespectsInvariants(t *testing.T) {
	revealed := engine.Deal(engine.NewRNG(7))
	pool := revealed.OpponentHand | revealed.HeldOut
	rng := engine.NewRNG(99)

	for i := 0; i < 100; i++ {
		p := Reinvigorate(revealed, rng)
		if p.OpponentHand.Len() != revealed.OpponentHand.Len() {
			t.Fatalf("redrawn hand has %d cards, want %d",
				p.OpponentHand.Len(), revealed.OpponentHand.Len())
		}
		if p.OpponentHand|p.HeldOut != pool {
			t.Fatal("redraw does not partition the hidden pool")
		}
		if p.OpponentHand&revealed.AgentHand != 0 {
			t.Fatal("redraw overlaps the agent's hand")
		}
		if p.AgentHand != revealed.AgentHand || p.Flags != revealed.Flags {
			t.Fatal("redraw changed a public field")
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("redrawn particle invalid: %v", err)
		}
	}
}

func TestBeliefSampleAndUpdate(t *testing.T) {
	s := engine.Deal(engine.NewRNG(2))
	rng := engine.NewRNG(5)
	b := NewBelief(InitialBelief(s), 64, rng)

	if len(b.Particles) != 64 {
		t.Fatalf("belief has %d particles, want 64", len(b.Particles))
	}
	for i := 0; i < 20; i++ {
		p := b.Sample(rng)
		if p.AgentHand != s.AgentHand {
			t.Fatal("sampled particle disagrees with the public state")
		}
	}

	// Advance the true state one transition, then update: every particle
	// must be consistent with the new public information.
	var tm engine.TransitionModel
	a := engine.Action{Card: engine.LeadPlays(s).Lowest()}
	if !s.AgentLeads() {
		a = engine.Action{Card: engine.FollowPlays(s.OpponentPartialPlay, s.AgentHand, true).Lowest()}
	}
	next := tm.Sample(s, a, rng)
	b.Update(next, rng)

	for _, p := range b.Particles {
		if p.AgentHand != next.AgentHand {
			t.Fatal("updated particle has a stale agent hand")
		}
		if p.OpponentHand.Len() != next.OpponentHand.Len() {
			t.Fatal("updated particle has a stale opponent hand size")
		}
		if p.OpponentHand|p.HeldOut != next.OpponentHand|next.HeldOut {
			t.Fatal("updated particle has a stale hidden pool")
		}
	}
}

func TestCombinationsSmall(t *testing.T) {
	cards := []engine.Card{0, 1, 2, 3}
	got := combinations(cards, 2)
	if len(got) != 6 {
		t.Fatalf("C(4,2) enumeration returned %d subsets, want 6", len(got))
	}
	seen := map[engine.CardSet]bool{}
	for _, s := range got {
		if s.Len() != 2 {
			t.Fatalf("subset %v has %d cards, want 2", s, s.Len())
		}
		if seen[s] {
			t.Fatalf("duplicate subset %v", s)
		}
		seen[s] = true
	}
}
