package engine

// Action is a single agent decision: play one card, or do nothing. The
// action space nominally contains every card in the deck; most are illegal
// in any given state, and the transition model folds those into the nop
// outcome rather than erroring.
type Action struct {
	Card Card // EmptyCard denotes the nop action
}

// Nop returns the do-nothing action.
func Nop() Action { return Action{Card: EmptyCard} }

// IsNop reports whether the action plays no card.
func (a Action) IsNop() bool { return a.Card == EmptyCard }

func (a Action) String() string {
	if a.IsNop() {
		return "nop"
	}
	return a.Card.String()
}

// EnumerateActions returns the full action space: one play per deck card,
// plus the nop. The nop is last.
func EnumerateActions() []Action {
	out := make([]Action, 0, DeckSize+1)
	for c := Card(0); c < DeckSize; c++ {
		out = append(out, Action{Card: c})
	}
	return append(out, Nop())
}

// PolicyModel is the rollout policy: uniform over the cards still in the
// agent's hand. Sampling from the hand instead of the whole action space
// keeps rollouts from wasting steps on guaranteed nops.
type PolicyModel struct{}

// Sample draws a rollout action for the given state.
func (PolicyModel) Sample(s State, rng *RNG) Action {
	if s.AgentHand.IsEmpty() {
		return Nop()
	}
	return Action{Card: rng.PickCard(s.AgentHand)}
}
