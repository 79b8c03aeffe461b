package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/pkg/bot"
	"github.com/aretw0/goban/pkg/gtp"
	"github.com/spf13/cobra"
)

var gtpCmd = &cobra.Command{
	Use:   "gtp",
	Short: "Run a Go Text Protocol console on stdin/stdout",
	Long: `Speaks GTP version 2 so that graphical clients (Sabaki, GoGui) and tournament
managers can drive the rules engine. genmove plays a random legal move that
never fills its own eye.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rs, err := cfg.GameRuleset()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetUint64("seed")

		engine := gtp.New(
			gtp.WithRuleset(rs),
			gtp.WithBot(bot.NewRandom(seed)),
			gtp.WithVersion(strings.TrimSpace(goban.Version)),
			gtp.WithLogger(logger),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return engine.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(gtpCmd)
	gtpCmd.Flags().Uint64("seed", 1, "Seed of the random move generator")
}
