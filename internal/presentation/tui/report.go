package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/goban/internal/dto"
)

// GameReport renders a game summary and the board at the cursor as markdown.
func GameReport(title string, sum dto.GameSummary, board []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("| Property | Value |\n|---|---|\n")
	row := func(k string, v any) {
		fmt.Fprintf(&sb, "| %s | %v |\n", k, v)
	}
	row("Board", fmt.Sprintf("%dx%d", sum.Size, sum.Size))
	row("Rules", sum.Ruleset)
	row("Komi", sum.Komi)
	if sum.Handicap > 0 {
		row("Handicap", sum.Handicap)
	}
	if sum.BlackName != "" {
		row("Black", sum.BlackName)
	}
	if sum.WhiteName != "" {
		row("White", sum.WhiteName)
	}
	row("Moves", sum.Moves)
	row("Variations", sum.Branches)
	row("Phase", sum.Phase)
	if sum.Result != "" {
		row("Result", sum.Result)
	} else {
		row("To move", sum.ToMove)
	}

	if len(board) > 0 {
		sb.WriteString("\n```\n")
		for _, line := range board {
			sb.WriteString(strings.Join(strings.Split(line, ""), " "))
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n")
	}
	if sum.Comment != "" {
		fmt.Fprintf(&sb, "\n> %s\n", strings.ReplaceAll(sum.Comment, "\n", "\n> "))
	}
	return sb.String()
}
