package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/goban/internal/dto"
	"github.com/aretw0/goban/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameReport(t *testing.T) {
	md := tui.GameReport("game.sgf", dto.GameSummary{
		Size:      9,
		Ruleset:   "Japanese",
		Komi:      6.5,
		Moves:     2,
		Handicap:  2,
		BlackName: "Shusaku",
		Phase:     "playing",
		ToMove:    "black",
		Comment:   "first line\nsecond line",
	}, []string{"X.O", "..."})

	assert.Contains(t, md, "# game.sgf")
	assert.Contains(t, md, "| Board | 9x9 |")
	assert.Contains(t, md, "| Handicap | 2 |")
	assert.Contains(t, md, "| Black | Shusaku |")
	assert.Contains(t, md, "| To move | black |")
	assert.NotContains(t, md, "| White |")
	assert.Contains(t, md, "```\nX . O\n. . .\n```")
	assert.Contains(t, md, "> first line\n> second line")
}

func TestNewRenderer_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, tui.IsTerminal(&buf))

	render := tui.NewRenderer(&buf)
	out, err := render("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)
}

func TestNewStyledRenderer(t *testing.T) {
	render, err := tui.NewStyledRenderer("notty")
	require.NoError(t, err)
	out, err := render("# Result\n\nB+3.5")
	require.NoError(t, err)
	assert.Contains(t, out, "B+3.5")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
	assert.NotEmpty(t, tui.Status(&buf, true, "valid"))
}
