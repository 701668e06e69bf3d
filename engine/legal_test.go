package engine

import "testing"

func TestLowestClub(t *testing.T) {
	hand := NewCardSet(
		NewCard(SuitClubs, RankSix),
		NewCard(SuitClubs, RankAce),
		NewCard(SuitHearts, RankTwo),
	)
	if got := LowestClub(hand); got != NewCard(SuitClubs, RankSix) {
		t.Errorf("LowestClub = %v, want 6C", got)
	}
	if got := LowestClub(AllHearts); got != EmptyCard {
		t.Errorf("LowestClub of heart-only hand = %v, want EmptyCard", got)
	}
}

func TestLeadPlaysFirstTrick(t *testing.T) {
	s := State{
		AgentHand: NewCardSet(TwoOfClubs, NewCard(SuitClubs, RankAce), QueenOfSpades),
		Flags:     FlagFirstTrick | FlagAgentLeads,
	}
	plays := LeadPlays(s)
	if plays != NewCardSet(TwoOfClubs) {
		t.Errorf("first-trick lead plays = %v, want {2C}", plays)
	}
}

func TestLeadPlaysFirstTrickNoClubsFallback(t *testing.T) {
	hand := NewCardSet(NewCard(SuitDiamonds, RankTwo), NewCard(SuitSpades, RankFour))
	s := State{AgentHand: hand, Flags: FlagFirstTrick | FlagAgentLeads}
	if got := LeadPlays(s); got != hand {
		t.Errorf("clubless first-trick leader should fall back to full hand, got %v", got)
	}
}

func TestLeadPlaysHeartsNotBroken(t *testing.T) {
	heart := NewCard(SuitHearts, RankFour)
	diamond := NewCard(SuitDiamonds, RankSix)
	s := State{
		AgentHand: NewCardSet(heart, diamond),
		Flags:     FlagAgentLeads,
	}
	plays := LeadPlays(s)
	if plays.Has(heart) {
		t.Error("hearts should not be leadable before they are broken")
	}
	if !plays.Has(diamond) {
		t.Error("non-heart should be leadable")
	}
}

func TestLeadPlaysHeartsBroken(t *testing.T) {
	heart := NewCard(SuitHearts, RankFour)
	s := State{
		AgentHand: NewCardSet(heart, NewCard(SuitDiamonds, RankSix)),
		Flags:     FlagAgentLeads | FlagHeartsBroken,
	}
	if !LeadPlays(s).Has(heart) {
		t.Error("hearts should be leadable once broken")
	}
}

func TestLeadPlaysOnlyHeartsException(t *testing.T) {
	hand := NewCardSet(NewCard(SuitHearts, RankTwo), NewCard(SuitHearts, RankAce))
	s := State{AgentHand: hand, Flags: FlagAgentLeads}
	if got := LeadPlays(s); got != hand {
		t.Errorf("heart-only hand must be allowed to lead hearts, got %v", got)
	}
}

func TestLeadPlaysOpponentLeader(t *testing.T) {
	oppHand := NewCardSet(NewCard(SuitSpades, RankSix))
	s := State{
		AgentHand:    NewCardSet(NewCard(SuitDiamonds, RankTwo)),
		OpponentHand: oppHand,
		Flags:        0, // opponent leads
	}
	if got := LeadPlays(s); got != oppHand {
		t.Errorf("LeadPlays should use the leader's hand, got %v", got)
	}
}

func TestFollowPlaysMustFollowSuit(t *testing.T) {
	hand := NewCardSet(
		NewCard(SuitClubs, RankFour),
		NewCard(SuitClubs, RankTen),
		NewCard(SuitHearts, RankTwo),
	)
	plays := FollowPlays(TwoOfClubs, hand, false)
	want := NewCardSet(NewCard(SuitClubs, RankFour), NewCard(SuitClubs, RankTen))
	if plays != want {
		t.Errorf("FollowPlays = %v, want %v", plays, want)
	}
}

func TestFollowPlaysOffSuit(t *testing.T) {
	hand := NewCardSet(NewCard(SuitHearts, RankTwo), NewCard(SuitDiamonds, RankFour))
	plays := FollowPlays(TwoOfClubs, hand, false)
	if plays != hand {
		t.Errorf("void follower may play anything after the first trick, got %v", plays)
	}
}

func TestFollowPlaysFirstTrickExcludesPenalties(t *testing.T) {
	diamond := NewCard(SuitDiamonds, RankFour)
	hand := NewCardSet(NewCard(SuitHearts, RankTwo), QueenOfSpades, diamond)
	plays := FollowPlays(TwoOfClubs, hand, true)
	if plays != NewCardSet(diamond) {
		t.Errorf("first-trick discard must exclude penalties, got %v", plays)
	}
}

func TestFollowPlaysFirstTrickOnlyPenaltiesException(t *testing.T) {
	hand := NewCardSet(NewCard(SuitHearts, RankTwo), QueenOfSpades)
	plays := FollowPlays(TwoOfClubs, hand, true)
	if plays != hand {
		t.Errorf("penalty-only hand must still have a legal discard, got %v", plays)
	}

	// The queen alone must also be playable — the exception covers her too.
	queenOnly := NewCardSet(QueenOfSpades)
	if got := FollowPlays(TwoOfClubs, queenOnly, true); got != queenOnly {
		t.Errorf("queen-only hand must be allowed to discard her, got %v", got)
	}
}

// TestLegalSetsNeverEmpty exercises the non-empty contract across random
// deals: any non-empty hand always has at least one legal play.
func TestLegalSetsNeverEmpty(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		s := Deal(NewRNG(seed))
		if LeadPlays(s).IsEmpty() {
			t.Errorf("seed %d: empty lead set for a fresh deal", seed)
		}
		lead := s.OpponentPartialPlay
		if lead == EmptyCard {
			lead = LeadPlays(s).Lowest()
		}
		if FollowPlays(lead, s.FollowerHand(), true).IsEmpty() {
			t.Errorf("seed %d: empty follow set for a full hand", seed)
		}
	}
}
