package session

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djpetti/hearts-pomdp/engine"
	"github.com/djpetti/hearts-pomdp/engine/agent"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(seed uint64) Config {
	planner := agent.DefaultPlannerConfig()
	planner.Simulations = 100 // keep tests fast
	return Config{
		Seed:      seed,
		Particles: 50,
		Planner:   planner,
		Reward:    engine.DefaultRewardConfig(),
	}
}

func TestPlayHandRunsToCompletion(t *testing.T) {
	s := New(testConfig(21), testLogger())

	summary, err := s.PlayHand(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, summary.HandID)
	// Every successful decision plays exactly one agent card; nops repeat a
	// decision without progress.
	assert.Equal(t, engine.HandSize+summary.Nops, summary.Steps)
	assert.Equal(t, summary.AgentScore, -summary.OpponentScore)
	assert.False(t, summary.AgentMoonshot && summary.OppMoonshot)
}

func TestRunMultipleHands(t *testing.T) {
	s := New(testConfig(5), testLogger())

	summaries, err := s.Run(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.NotEqual(t, summaries[0].HandID, summaries[1].HandID)
}

func TestRunHonorsCancellation(t *testing.T) {
	s := New(testConfig(9), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, 1)
	assert.Error(t, err)
}

func TestSessionsWithSameSeedAgree(t *testing.T) {
	a := New(testConfig(77), testLogger())
	b := New(testConfig(77), testLogger())

	sa, err := a.PlayHand(context.Background())
	require.NoError(t, err)
	sb, err := b.PlayHand(context.Background())
	require.NoError(t, err)

	assert.Equal(t, sa.Steps, sb.Steps)
	assert.Equal(t, sa.AgentScore, sb.AgentScore)
}

func TestZeroSeedDiverges(t *testing.T) {
	// Zero selects a per-session seed from the session ID.
	a := New(testConfig(0), testLogger())
	b := New(testConfig(0), testLogger())
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.rng, b.rng)
}
