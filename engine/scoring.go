package engine

// RewardConfig holds the tunable scoring constants. The defaults keep the
// classic per-card weights; all four are deliberately exposed rather than
// baked in so experiments can rescale them.
type RewardConfig struct {
	// HeartValue is the (negative) reward per heart taken in a trick.
	HeartValue float64
	// QueenValue is the (negative) reward for taking the queen of spades.
	QueenValue float64
	// NopPenalty is the reward for an illegal or absent play. Large and
	// negative: the agent can always find a legal play, so a nop is always a
	// mistake worth steering hard away from.
	NopPenalty float64
	// MoonshotBonus is the end-of-hand reward for taking every penalty card,
	// and the matching penalty for being on the other side of it.
	MoonshotBonus float64
}

// DefaultRewardConfig returns the standard scoring weights.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		HeartValue:    -1,
		QueenValue:    -13,
		NopPenalty:    -20,
		MoonshotBonus: 20,
	}
}

// RewardModel scores a transition from the agent's perspective. Per-trick
// scoring is zero-sum: the winner of a painted trick takes its (negative)
// points and the loser is credited the same magnitude. A completed moonshot
// overrides the final trick's ordinary reward.
type RewardModel struct {
	Config RewardConfig
}

// NewRewardModel returns a reward model with the given config.
func NewRewardModel(cfg RewardConfig) RewardModel {
	return RewardModel{Config: cfg}
}

// trickPoints sums the penalty value of the two cards in the resolved trick.
func (m RewardModel) trickPoints(next State) float64 {
	points := 0.0
	for _, c := range [2]Card{next.AgentPlay, next.OpponentPlay} {
		if c.Suit() == SuitHearts {
			points += m.Config.HeartValue
		}
		if c == QueenOfSpades {
			points += m.Config.QueenValue
		}
	}
	return points
}

// Sample returns the reward for the transition state -> next under action.
// Deterministic; the signature mirrors the stochastic models.
func (m RewardModel) Sample(s State, a Action, next State) float64 {
	if next.AgentPlay == EmptyCard || next.OpponentPlay == EmptyCard {
		return m.Config.NopPenalty
	}

	// FlagAgentLeads in next names the winner of the trick just resolved.
	agentWon := next.Flags&FlagAgentLeads != 0
	points := m.trickPoints(next)
	reward := points
	if !agentWon {
		reward = -points
	}

	if next.IsTerminal() {
		// Moonshot: exactly one side still holds its took-all-penalties flag.
		switch {
		case next.AgentTookAllPenalties() && !next.OpponentTookAllPenalties():
			return m.Config.MoonshotBonus
		case next.OpponentTookAllPenalties() && !next.AgentTookAllPenalties():
			return -m.Config.MoonshotBonus
		}
	}
	return reward
}
