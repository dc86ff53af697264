package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/verbdrill/internal/platform"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a drill on the terminal",
	Long: `Start a drill on the terminal. Each round shows a word and a change; type the
resulting form. Answer 'exit' or close the input to stop; that last round is still scored.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) {
	cfg, pattern := loadConfig(cmd)

	opts, err := platform.FromConfig(cfg)
	if err != nil {
		fatal("Error reading session settings", err)
	}

	s, err := platform.New(pattern, append(opts, platform.WithLogger(slog.Default()))...)
	if err != nil {
		fatal("Error starting drill", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A blocked terminal read never sees ctx, so an interrupt ends the process here.
	interrupted := context.AfterFunc(ctx, func() {
		slog.Info("drill interrupted", "session", s.ID())
		os.Exit(130)
	})
	defer interrupted()

	_, err = s.Run(ctx, os.Stdin, os.Stdout)
	slog.Debug("session state", "state", s.State())
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal("Drill stopped", err)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	flags := playCmd.Flags()
	flags.Uint64("seed", 0, "Seed for the random source (0 picks one from the clock)")
	flags.StringSlice("mutations", nil, "Enabled mutations, e.g. change-gender,change-tense (default: the standard five)")
	flags.Int("max-attempts", 64, "Random mutation draws per round before scanning the list")
	flags.String("fallback", "change-concrete", "Mutation used when no enabled one applies")
	flags.Bool("strict", false, "Stop with an error when the dictionary lacks a needed form")

	_ = settings.BindPFlag("session.seed", flags.Lookup("seed"))
	_ = settings.BindPFlag("session.mutations", flags.Lookup("mutations"))
	_ = settings.BindPFlag("session.max_attempts", flags.Lookup("max-attempts"))
	_ = settings.BindPFlag("session.fallback", flags.Lookup("fallback"))
	_ = settings.BindPFlag("session.strict", flags.Lookup("strict"))
}
