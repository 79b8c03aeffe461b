package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/goban"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goban",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "goban version %s\n", strings.TrimSpace(goban.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
