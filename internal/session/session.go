// Package session drives complete hands of Hearts: it owns the true game
// state, the agent's belief and planner, and the RNG, and advances them
// together one decision at a time. All mutable run state lives here, passed
// explicitly — nothing module-level.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/djpetti/hearts-pomdp/engine"
	"github.com/djpetti/hearts-pomdp/engine/agent"
)

// Config holds what a session needs beyond its models.
type Config struct {
	Seed      uint64
	Particles int
	Planner   agent.PlannerConfig
	Reward    engine.RewardConfig
}

// Summary reports the outcome of one completed hand.
type Summary struct {
	HandID        uuid.UUID
	Steps         int
	Nops          int
	AgentScore    float64
	OpponentScore float64
	AgentMoonshot bool
	OppMoonshot   bool
}

// Session plays hands with the POMCP agent against the model's stochastic
// opponent. Safe to call from a single goroutine; each session owns its RNG.
type Session struct {
	ID  uuid.UUID
	log *logrus.Entry

	cfg        Config
	rng        *engine.RNG
	transition engine.TransitionModel
	reward     engine.RewardModel
	planner    *agent.Planner
}

// New creates a session. A zero seed is replaced by the session ID's low
// bits so independent runs diverge.
func New(cfg Config, logger *logrus.Logger) *Session {
	id := uuid.New()
	seed := cfg.Seed
	if seed == 0 {
		b := id[:]
		for i := 0; i < 8; i++ {
			seed = seed<<8 | uint64(b[i])
		}
	}
	return &Session{
		ID:      id,
		log:     logger.WithField("session_id", id),
		cfg:     cfg,
		rng:     engine.NewRNG(seed),
		reward:  engine.NewRewardModel(cfg.Reward),
		planner: agent.NewPlanner(cfg.Planner, engine.NewRewardModel(cfg.Reward)),
	}
}

// PlayHand deals one hand and plays it to the end: plan, apply the chosen
// action to the true state, observe, reinvigorate the belief, repeat. The
// context cancels between decisions; planning itself is synchronous.
func (s *Session) PlayHand(ctx context.Context) (Summary, error) {
	state := engine.Deal(s.rng)
	if err := state.Validate(); err != nil {
		return Summary{}, fmt.Errorf("deal produced an invalid state: %w", err)
	}

	prior := agent.InitialBelief(state)
	belief := agent.NewBelief(prior, s.cfg.Particles, s.rng)

	summary := Summary{HandID: uuid.New()}
	log := s.log.WithField("hand_id", summary.HandID)
	log.WithFields(logrus.Fields{
		"agent_hand":  state.AgentHand.String(),
		"agent_leads": state.AgentLeads(),
		"prior_size":  len(prior),
	}).Info("hand dealt")

	// A nop leaves the state unchanged, so a planner that keeps choosing
	// illegal plays would never finish the hand. Bound the decision count.
	maxSteps := engine.HandSize * 10

	for !state.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("hand interrupted: %w", err)
		}
		if summary.Steps >= maxSteps {
			return summary, fmt.Errorf("no progress after %d decisions", summary.Steps)
		}

		action := s.planner.Plan(belief, s.rng)
		next := s.transition.Sample(state, action, s.rng)
		if err := next.Validate(); err != nil {
			return summary, fmt.Errorf("transition produced an invalid state: %w", err)
		}
		reward := s.reward.Sample(state, action, next)

		summary.Steps++
		summary.AgentScore += reward
		if next.AgentPlay == engine.EmptyCard {
			summary.Nops++
		}

		log.WithFields(logrus.Fields{
			"step":          summary.Steps,
			"action":        action.String(),
			"agent_play":    next.AgentPlay.String(),
			"opponent_play": next.OpponentPlay.String(),
			"reward":        reward,
			"hearts_broken": next.HeartsBroken(),
		}).Debug("trick step")

		state = next
		belief.Update(state, s.rng)
	}

	// Per-trick rewards are zero-sum between the two seats.
	summary.OpponentScore = -summary.AgentScore
	summary.AgentMoonshot = state.AgentTookAllPenalties() && !state.OpponentTookAllPenalties()
	summary.OppMoonshot = state.OpponentTookAllPenalties() && !state.AgentTookAllPenalties()

	log.WithFields(logrus.Fields{
		"steps":       summary.Steps,
		"nops":        summary.Nops,
		"agent_score": summary.AgentScore,
		"moonshot":    summary.AgentMoonshot || summary.OppMoonshot,
	}).Info("hand complete")
	return summary, nil
}

// Run plays the configured number of hands and returns their summaries.
func (s *Session) Run(ctx context.Context, hands int) ([]Summary, error) {
	out := make([]Summary, 0, hands)
	for i := 0; i < hands; i++ {
		summary, err := s.PlayHand(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, summary)
	}
	return out, nil
}
