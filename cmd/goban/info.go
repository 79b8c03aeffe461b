package main

import (
	"fmt"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/internal/presentation/tui"
	"github.com/aretw0/goban/internal/service"
	"github.com/aretw0/goban/pkg/sgf"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.sgf>",
	Short: "Show the game properties and final position of a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rs, err := cfg.GameRuleset()
		if err != nil {
			return err
		}

		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		trees, err := sgf.ParseBytes(data, sgf.WithRuleset(rs))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(out)
		}
		render := tui.NewRenderer(out)
		for i, tree := range trees {
			g := goban.FromTree(tree)
			title := args[0]
			if len(trees) > 1 {
				title = fmt.Sprintf("%s (game %d of %d)", args[0], i+1, len(trees))
			}
			md := tui.GameReport(title, service.Summarize(g), service.Describe(g).Board)
			rendered, err := render(md)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Bool("banner", false, "Print the goban banner first")
}
