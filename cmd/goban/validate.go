package main

import (
	"fmt"

	"github.com/aretw0/goban/internal/dto"
	"github.com/aretw0/goban/internal/presentation/tui"
	"github.com/aretw0/goban/internal/service"
	"github.com/aretw0/goban/pkg/sgf"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.sgf>...",
	Short: "Check SGF records for syntax and rule errors",
	Long: `Parses each record and replays every move of every variation through the rules.
Lenient mode (the default) accepts ko and suicide violations found in historical
records; --strict rejects them. Use "-" to read from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := cfg.GameOptions()
		if err != nil {
			return err
		}
		svc := service.New(opts...)
		out := cmd.OutOrStdout()

		failed := 0
		for _, path := range args {
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			text, err := sgf.ToUTF8(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			resp := svc.Validate(dto.ValidateRequest{SGF: text, Strict: strict})
			if !resp.Valid {
				failed++
				if resp.Line > 0 {
					fmt.Fprintf(out, "%s:%d:%d: %s %s\n", path, resp.Line, resp.Column, tui.Status(out, false, "invalid"), resp.Error)
				} else {
					fmt.Fprintf(out, "%s: %s %s\n", path, tui.Status(out, false, "invalid"), resp.Error)
				}
				continue
			}
			moves := 0
			for _, g := range resp.Games {
				moves += g.Moves
			}
			fmt.Fprintf(out, "%s: %s (%d games, %d main-line moves)\n", path, tui.Status(out, true, "valid"), len(resp.Games), moves)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d records invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Reject ko and suicide violations")
}
