package agent

import (
	"math"

	"github.com/djpetti/hearts-pomdp/engine"
)

// PlannerConfig holds the search parameters for the POMCP planner.
type PlannerConfig struct {
	// MaxDepth bounds the lookahead in model transitions. One transition can
	// cover two real plies when the opponent wins a trick, so a depth equal
	// to the hand size always reaches the end of the hand.
	MaxDepth int
	// Simulations is the fixed per-decision simulation budget.
	Simulations int
	// ExplorationConst is the UCB1 exploration coefficient.
	ExplorationConst float64
	// Discount is the per-step reward discount. Hearts hands are short and
	// finite, so 1.0 is the natural choice.
	Discount float64
}

// DefaultPlannerConfig mirrors the search settings the agent plays with.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		MaxDepth:         engine.HandSize,
		Simulations:      2000,
		ExplorationConst: 40,
		Discount:         1.0,
	}
}

// Planner is a POMCP planner over the engine's models: Monte-Carlo tree
// search where each simulation starts from a belief particle, descends an
// action/observation tree with UCB1, and finishes with a uniform-policy
// rollout. Synchronous and allocation-light; the caller owns the RNG.
type Planner struct {
	Config PlannerConfig

	transition  engine.TransitionModel
	observation engine.ObservationModel
	reward      engine.RewardModel
	policy      engine.PolicyModel
}

// NewPlanner builds a planner over the given reward model.
func NewPlanner(cfg PlannerConfig, reward engine.RewardModel) *Planner {
	return &Planner{Config: cfg, reward: reward}
}

// beliefNode is a history node: visit count plus per-action statistics.
type beliefNode struct {
	visits  int
	actions map[engine.Action]*actionNode
}

type actionNode struct {
	visits   int
	value    float64
	children map[engine.Observation]*beliefNode
}

func newBeliefNode() *beliefNode {
	return &beliefNode{actions: make(map[engine.Action]*actionNode)}
}

// Plan runs the full simulation budget from the current belief and returns
// the action with the highest estimated value. With an empty hand there is
// nothing to plan; the nop action comes back.
func (p *Planner) Plan(b *Belief, rng *engine.RNG) engine.Action {
	root := newBeliefNode()
	for i := 0; i < p.Config.Simulations; i++ {
		s := b.Sample(rng)
		p.simulate(s, root, 0, rng)
	}

	// Fixed iteration order keeps tie-breaks deterministic under a seed.
	best := engine.Nop()
	bestValue := math.Inf(-1)
	for _, a := range engine.EnumerateActions() {
		if n, ok := root.actions[a]; ok && n.visits > 0 && n.value > bestValue {
			best, bestValue = a, n.value
		}
	}
	return best
}

// candidateActions returns the actions worth trying from this state: one per
// card still in hand. The agent's own hand is public to itself, so the
// candidate set is identical across particles of the same belief.
func candidateActions(s engine.State) []engine.Action {
	hand := s.AgentHand.Cards()
	out := make([]engine.Action, len(hand))
	for i, c := range hand {
		out[i] = engine.Action{Card: c}
	}
	return out
}

// selectAction picks an untried action if any remain, otherwise the UCB1
// argmax.
func (p *Planner) selectAction(s engine.State, n *beliefNode) engine.Action {
	candidates := candidateActions(s)

	for _, a := range candidates {
		if _, tried := n.actions[a]; !tried {
			return a
		}
	}

	best := engine.Nop()
	bestScore := math.Inf(-1)
	logN := math.Log(float64(n.visits) + 1)
	for _, a := range candidates {
		an := n.actions[a]
		score := an.value + p.Config.ExplorationConst*math.Sqrt(logN/float64(an.visits))
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best
}

func (p *Planner) simulate(s engine.State, n *beliefNode, depth int, rng *engine.RNG) float64 {
	if depth >= p.Config.MaxDepth || s.IsTerminal() {
		return 0
	}

	a := p.selectAction(s, n)
	an, tried := n.actions[a]
	if !tried {
		an = &actionNode{children: make(map[engine.Observation]*beliefNode)}
		n.actions[a] = an
	}

	next := p.transition.Sample(s, a, rng)
	obs := p.observation.Sample(next, a)
	total := p.reward.Sample(s, a, next)

	child, expanded := an.children[obs]
	if !expanded {
		an.children[obs] = newBeliefNode()
		total += p.Config.Discount * p.rollout(next, depth+1, rng)
	} else {
		total += p.Config.Discount * p.simulate(next, child, depth+1, rng)
	}

	n.visits++
	an.visits++
	an.value += (total - an.value) / float64(an.visits)
	return total
}

// rollout plays out the rest of the horizon with the uniform policy.
func (p *Planner) rollout(s engine.State, depth int, rng *engine.RNG) float64 {
	total := 0.0
	discount := 1.0
	for depth < p.Config.MaxDepth && !s.IsTerminal() {
		a := p.policy.Sample(s, rng)
		next := p.transition.Sample(s, a, rng)
		total += discount * p.reward.Sample(s, a, next)
		discount *= p.Config.Discount
		s = next
		depth++
	}
	return total
}
