package main

import (
	"fmt"

	"github.com/aretw0/goban/internal/presentation/graph"
	"github.com/aretw0/goban/pkg/sgf"
	"github.com/spf13/cobra"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree <file.sgf>",
	Short: "Export the variation tree as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph TD) with one node per move. Alternatives to the main line are drawn with dotted arrows.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		trees, err := sgf.ParseBytes(data)
		if err != nil {
			return err
		}

		index, _ := cmd.Flags().GetInt("game")
		if index < 1 || index > len(trees) {
			return fmt.Errorf("game %d out of range: the collection holds %d", index, len(trees))
		}
		tree := trees[index-1]

		var overlay *graph.GraphOverlay
		if highlight, _ := cmd.Flags().GetBool("highlight"); highlight {
			line := tree.MainLine()
			if overlay, err = graph.OverlayFor(tree, line[len(line)-1].ID()); err != nil {
				return err
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tree, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Int("game", 1, "Game of the collection to draw (1-based)")
	treeCmd.Flags().Bool("highlight", false, "Highlight the main line")
}
