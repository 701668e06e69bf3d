package engine

// TransitionModel samples and evaluates state transitions. One transition
// advances one full agent decision: the agent's play, the opponent's
// (uniformly random) response if the agent led, trick resolution, and — when
// the opponent wins and therefore leads next — the opponent's pre-committed
// lead for the following trick.
//
// Sample and Probability agree exactly: for any (state, action), summing
// Probability over the finite support of Sample yields 1.
type TransitionModel struct{}

// Sample draws a next state for the given state and action. An absent or
// illegal action produces the nop transition: both plays cleared, every
// other field untouched. Illegal plays are an ordinary in-band outcome, not
// an error; the reward model penalizes them.
func (TransitionModel) Sample(s State, a Action, rng *RNG) State {
	if s.AgentLeads() {
		return sampleAgentLeads(s, a, rng)
	}
	return sampleAgentFollows(s, a, rng)
}

// Probability evaluates the exact likelihood that Sample(state, action)
// produces next: the product of the uniform follower draw and, when the
// opponent wins the trick, the uniform lookahead lead draw — provided every
// deterministically derived field of next matches.
func (TransitionModel) Probability(next, s State, a Action) float64 {
	if s.AgentLeads() {
		return probabilityAgentLeads(next, s, a)
	}
	return probabilityAgentFollows(next, s, a)
}

// nopState clears both plays and leaves everything else alone.
func nopState(s State) State {
	s.AgentPlay = EmptyCard
	s.OpponentPlay = EmptyCard
	return s
}

// rollOver begins every non-nop transition: the opponent's pre-committed
// lead becomes the current trick's opponent play, and the first-trick flag
// drops.
func rollOver(s State) State {
	s.OpponentPlay = s.OpponentPartialPlay
	s.OpponentPartialPlay = EmptyCard
	s.Flags &^= FlagFirstTrick
	return s
}

// agentWonTrick resolves the current trick. The higher value wins when both
// cards share the lead suit; an off-suit discard never wins. Only valid when
// both plays are set. FlagAgentLeads must still describe who led this trick.
func agentWonTrick(s State) bool {
	lead, second := s.LeadPlay(), s.SecondPlay()
	leadWins := true
	if lead.Suit() == second.Suit() {
		leadWins = lead.Value() > second.Value()
	}
	return leadWins == s.AgentLeads()
}

// resolveTrick applies the deterministic post-trick updates: heartbreak,
// moonshot bookkeeping, and next-trick leadership. Heartbreak lands before
// any lookahead so the opponent's next lead is drawn under the updated rule.
func resolveTrick(next State) State {
	if next.AgentPlay.Suit() == SuitHearts || next.OpponentPlay.Suit() == SuitHearts {
		next.Flags |= FlagHeartsBroken
	}

	agentWon := agentWonTrick(next)

	if next.AgentPlay.IsPenalty() || next.OpponentPlay.IsPenalty() {
		// The side that lost a painted trick can no longer claim every
		// penalty card.
		if agentWon {
			next.Flags &^= FlagOpponentTookAll
		} else {
			next.Flags &^= FlagAgentTookAll
		}
	}

	if agentWon {
		next.Flags |= FlagAgentLeads
	} else {
		next.Flags &^= FlagAgentLeads
	}
	return next
}

// applyLookahead commits the opponent's lead for the next trick.
func applyLookahead(next State, lead Card) State {
	next.OpponentHand = next.OpponentHand.Remove(lead)
	next.OpponentPartialPlay = lead
	if lead.Suit() == SuitHearts {
		next.Flags |= FlagHeartsBroken
	}
	return next
}

func sampleAgentLeads(s State, a Action, rng *RNG) State {
	if a.IsNop() || !LeadPlays(s).Has(a.Card) {
		return nopState(s)
	}

	next := rollOver(s)
	next.AgentPlay = a.Card
	next.AgentHand = next.AgentHand.Remove(a.Card)

	follows := FollowPlays(a.Card, next.OpponentHand, s.IsFirstTrick())
	if follows.IsEmpty() {
		panic("engine: follower has no legal plays; hand sizes are out of sync")
	}
	next.OpponentPlay = rng.PickCard(follows)
	next.OpponentHand = next.OpponentHand.Remove(next.OpponentPlay)

	next = resolveTrick(next)
	if !next.AgentLeads() {
		if leads := LeadPlays(next); !leads.IsEmpty() {
			next = applyLookahead(next, rng.PickCard(leads))
		}
	}
	return next
}

func sampleAgentFollows(s State, a Action, rng *RNG) State {
	next := rollOver(s)
	lead := next.OpponentPlay
	if lead == EmptyCard {
		// The opponent nop'ed on the previous step; nothing to follow.
		return nopState(s)
	}

	follows := FollowPlays(lead, s.AgentHand, s.IsFirstTrick())
	if follows.IsEmpty() {
		panic("engine: agent has no legal follow plays from a non-empty hand")
	}
	if !follows.Has(a.Card) {
		return nopState(s)
	}
	next.AgentPlay = a.Card
	next.AgentHand = next.AgentHand.Remove(a.Card)

	next = resolveTrick(next)
	if !next.AgentLeads() {
		if leads := LeadPlays(next); !leads.IsEmpty() {
			next = applyLookahead(next, rng.PickCard(leads))
		}
	}
	return next
}

func probabilityAgentLeads(next, s State, a Action) float64 {
	if a.IsNop() || !LeadPlays(s).Has(a.Card) {
		if next == nopState(s) {
			return 1
		}
		return 0
	}

	mid := rollOver(s)
	mid.AgentPlay = a.Card
	mid.AgentHand = mid.AgentHand.Remove(a.Card)

	follows := FollowPlays(a.Card, mid.OpponentHand, s.IsFirstTrick())
	if !follows.Has(next.OpponentPlay) {
		return 0
	}
	p := 1 / float64(follows.Len())
	mid.OpponentPlay = next.OpponentPlay
	mid.OpponentHand = mid.OpponentHand.Remove(next.OpponentPlay)

	return p * finishProbability(next, resolveTrick(mid))
}

func probabilityAgentFollows(next, s State, a Action) float64 {
	mid := rollOver(s)
	lead := mid.OpponentPlay

	nop := lead == EmptyCard
	if !nop {
		follows := FollowPlays(lead, s.AgentHand, s.IsFirstTrick())
		nop = !follows.Has(a.Card)
	}
	if nop {
		if next == nopState(s) {
			return 1
		}
		return 0
	}

	mid.AgentPlay = a.Card
	mid.AgentHand = mid.AgentHand.Remove(a.Card)

	return finishProbability(next, resolveTrick(mid))
}

// finishProbability accounts for the lookahead draw (if any) and verifies
// that the fully reconstructed state matches the proposed next state.
func finishProbability(next, mid State) float64 {
	p := 1.0
	if !mid.AgentLeads() {
		if leads := LeadPlays(mid); !leads.IsEmpty() {
			if !leads.Has(next.OpponentPartialPlay) {
				return 0
			}
			p = 1 / float64(leads.Len())
			mid = applyLookahead(mid, next.OpponentPartialPlay)
		}
	}
	if mid != next {
		return 0
	}
	return p
}
