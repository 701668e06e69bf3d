package engine

// Observation is the publicly knowable projection of a State: everything the
// agent can see directly, with the opponent's hand contents reduced to a
// count. This is the partial-observability boundary — all uncertainty lives
// in the belief over the hidden hand, never in the observation channel.
type Observation struct {
	AgentHand           CardSet
	AgentPlay           Card
	OpponentPlay        Card
	OpponentPartialPlay Card
	Flags               uint8
	OpponentHandSize    uint8
}

// Project maps a state to its observation. Deterministic: equal states
// always project to equal observations.
func Project(s State) Observation {
	return Observation{
		AgentHand:           s.AgentHand,
		AgentPlay:           s.AgentPlay,
		OpponentPlay:        s.OpponentPlay,
		OpponentPartialPlay: s.OpponentPartialPlay,
		Flags:               s.Flags,
		OpponentHandSize:    uint8(s.OpponentHand.Len()),
	}
}

// ObservationModel is the deterministic observation channel.
type ObservationModel struct{}

// Sample returns the observation for the sampled next state. The channel has
// no randomness of its own; the signature mirrors the other models so the
// planner treats all three uniformly.
func (ObservationModel) Sample(next State, _ Action) Observation {
	return Project(next)
}

// Probability returns 1 when the observation is exactly the projection of
// the next state, 0 otherwise.
func (ObservationModel) Probability(o Observation, next State, _ Action) float64 {
	if Project(next) == o {
		return 1
	}
	return 0
}
