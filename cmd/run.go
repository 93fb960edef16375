package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/quizly/internal/app"
	"github.com/abhisek/quizly/internal/auth"
	"github.com/abhisek/quizly/internal/faults"
	"github.com/abhisek/quizly/internal/session"
)

// runApp opens the stores, builds dependencies, and launches the TUI. A
// non-nil play selector skips the splash and opens a quiz straight away.
func runApp(cmd *cobra.Command, play *session.Selector) error {
	ctx := cmd.Context()
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.bank.Initialize(ctx); err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	sessCfg := session.DefaultConfig()
	sessCfg.Budget = cfg.BudgetSeconds()
	sessCfg.FeedbackDelay = cfg.FeedbackDuration()
	sessCfg.FetchTimeout = cfg.FetchTimeoutDuration()

	return app.Run(app.Options{
		Auth:      auth.NewService(d.store.AccountRepo(), auth.WithHashCost(bcrypt.DefaultCost)),
		Bank:      d.bank,
		Questions: d.questionSource(ctx),
		EventRepo: d.store.EventRepo(),
		Faults:    faults.NewInjector(cfg.TestMode),
		Session:   sessCfg,
		Play:      play,
	})
}
