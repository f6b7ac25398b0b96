// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program cfo keeps a personal finance ledger and answers questions about it
// with the help of a language model.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/creachadair/cfo/config"
	"github.com/creachadair/cfo/llm"
	"github.com/creachadair/cfo/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newStreamer constructs the model client for the ask command.
var newStreamer = llm.New

// env is the state shared by all commands.
type env struct {
	verbose    bool
	configPath string
	dbPath     string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := new(env)
	root := &cobra.Command{
		Use:   "cfo",
		Short: "A personal finance ledger with a virtual CFO",
		Long: `cfo records transactions, bills, cards, loans, and savings goals in a local
database, computes a financial health report, plans debt payoff, and answers
questions about your finances using a language model.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if e.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			log, err := zc.Build()
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			e.log = log

			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			if e.dbPath != "" {
				cfg.Database = e.dbPath
			}
			e.cfg = cfg
			log.Debug("loaded config", zap.String("path", e.configPath), zap.String("database", cfg.Database))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVarP(&e.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&e.configPath, "config", config.DefaultPath(), "Configuration file (JWCC or YAML)")
	pf.StringVar(&e.dbPath, "db", "", "Ledger database (overrides the configuration)")

	root.AddCommand(
		closeCmd(),
		askCmd(e),
		txCmd(e),
		importCmd(e),
		healthCmd(e),
		debtCmd(e),
		loanCmd(),
		scoreCmd(e),
	)
	return root
}

// openStore opens the configured ledger database.
func (e *env) openStore() (*store.Store, error) {
	return store.Open(e.cfg.Database, e.log)
}

// withStore calls f with the open ledger database, and closes it after.
func (e *env) withStore(ctx context.Context, f func(context.Context, *store.Store) error) error {
	s, err := e.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return f(ctx, s)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
