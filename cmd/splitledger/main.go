package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/seed"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	registry := prometheus.NewRegistry()
	engine := ledger.New(memory.New(),
		ledger.WithLogger(logger),
		ledger.WithMetrics(metrics.New(registry)),
	)

	if cfg.SeedMockData {
		if err := seed.Load(engine); err != nil {
			slog.Error("Failed to load seed data", "error", err)
			os.Exit(1)
		}
		slog.Info("Seed data loaded", "groups", len(engine.ListGroups()))
	}

	user, err := engine.GetUser(cfg.CurrentUserID)
	if errors.Is(err, ledger.ErrNotFound) {
		// Nothing seeded; sign in as a bare user with no groups
		user = models.User{ID: cfg.CurrentUserID, Name: "You"}
	} else if err != nil {
		slog.Error("Failed to resolve current user", "user_id", cfg.CurrentUserID, "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	sessions := auth.NewSessions(user, cfg.LoginDelay, tokens, logger)

	email := user.Email
	if email == "" {
		email = user.ID + "@example.com"
	}
	session, err := sessions.Login(email, "demo")
	if err != nil {
		slog.Error("Login failed", "error", err)
		os.Exit(1)
	}
	defer sessions.Logout()

	if err := report(engine, session.User.ID); err != nil {
		slog.Error("Failed to build report", "user_id", session.User.ID, "error", err)
		os.Exit(1)
	}
	if err := logCounters(registry); err != nil {
		slog.Error("Failed to gather metrics", "error", err)
		os.Exit(1)
	}
}

// logCounters logs every non-zero counter the session recorded.
func logCounters(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value := m.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			args := []any{"metric", mf.GetName(), "value", value}
			for _, lp := range m.GetLabel() {
				args = append(args, lp.GetName(), lp.GetValue())
			}
			slog.Info("Counter", args...)
		}
	}
	return nil
}

// report logs what the home, groups and friends screens would show.
func report(engine *ledger.Engine, viewerID string) error {
	summaries, err := engine.Summary(viewerID)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		slog.Info("Balance summary",
			"currency", s.Currency,
			"owed", s.Owed.StringFixed(2),
			"owes", s.Owes.StringFixed(2),
			"net", s.Net.StringFixed(2),
		)
	}

	groups, err := engine.ListGroupsFor(viewerID)
	if err != nil {
		return err
	}
	for _, g := range groups {
		slog.Info("Group",
			"group_id", g.ID,
			"name", g.Name,
			"members", len(g.Members),
			"balance", g.Balance.StringFixed(2),
			"total_spent", g.TotalSpent.StringFixed(2),
		)

		plan, err := engine.SettlementPlan(g.ID)
		if err != nil {
			return err
		}
		for _, edge := range plan {
			slog.Info("Settlement",
				"group_id", g.ID,
				"from", edge.From,
				"to", edge.To,
				"amount", edge.Amount.StringFixed(2),
			)
		}
	}

	friends, err := engine.Friends(viewerID)
	if err != nil {
		return err
	}
	for _, f := range friends {
		slog.Info("Friend",
			"user_id", f.User.ID,
			"name", f.User.Name,
			"balance", f.Balance.StringFixed(2),
			"currency", f.Currency,
		)
	}
	return nil
}
