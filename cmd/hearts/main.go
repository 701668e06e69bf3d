// Command hearts plays hands of two-player reduced-deck Hearts with the
// POMCP agent and reports per-hand scores.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/djpetti/hearts-pomdp/internal/config"
	"github.com/djpetti/hearts-pomdp/internal/session"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("invalid log level")
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := session.New(session.Config{
		Seed:      cfg.Seed,
		Particles: cfg.Particles,
		Planner:   cfg.PlannerConfig(),
		Reward:    cfg.RewardConfig(),
	}, logger)

	summaries, err := sess.Run(ctx, cfg.Hands)
	if err != nil {
		logger.WithError(err).Fatal("run aborted")
	}

	total := 0.0
	nops := 0
	for _, s := range summaries {
		total += s.AgentScore
		nops += s.Nops
	}
	logger.WithFields(logrus.Fields{
		"hands":       len(summaries),
		"agent_total": total,
		"nops":        nops,
	}).Info("run complete")
}
