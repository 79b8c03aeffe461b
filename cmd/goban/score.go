package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/sgf"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <file.sgf>",
	Short: "Score a record that ended with consecutive passes",
	Long: `Counts the final position of the main line. Mark dead groups with --dead, giving
one SGF point per group. With --finish the result is recorded and the updated
record is printed instead.`,
	Args: cobra.ExactArgs(1),
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
		g := goban.FromTree(trees[0])

		deadFlags, _ := cmd.Flags().GetStringSlice("dead")
		dead := make([]domain.Coord, 0, len(deadFlags))
		for _, p := range deadFlags {
			c, err := sgf.DecodePoint(p, g.Size())
			if err != nil {
				return fmt.Errorf("dead stone %q: %w", p, err)
			}
			dead = append(dead, c)
		}

		out := cmd.OutOrStdout()
		if finish, _ := cmd.Flags().GetBool("finish"); finish {
			if _, err := g.Finish(dead...); err != nil {
				return err
			}
			fmt.Fprintln(out, g.ExportSGF())
			return nil
		}

		score, err := g.Score(dead...)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Score  any    `json:"score"`
				Result string `json:"result"`
			}{score, score.Result()})
		}

		fmt.Fprintf(out, "Rules:  %s scoring, komi %g\n", score.Rule, score.Komi)
		fmt.Fprintf(out, "Black:  %g (stones %d, territory %d, prisoners %d)\n", score.Black, score.BlackStones, score.BlackTerritory, score.BlackPrisoners)
		fmt.Fprintf(out, "White:  %g (stones %d, territory %d, prisoners %d)\n", score.White, score.WhiteStones, score.WhiteTerritory, score.WhitePrisoners)
		fmt.Fprintf(out, "Dame:   %d\n", score.Dame)
		fmt.Fprintf(out, "Result: %s\n", score.Result())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringSlice("dead", nil, "SGF point of a dead group (repeatable or comma separated)")
	scoreCmd.Flags().Bool("finish", false, "Record the result and print the updated SGF")
	scoreCmd.Flags().Bool("json", false, "Print the score as JSON")
}
