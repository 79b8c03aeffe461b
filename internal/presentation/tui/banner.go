package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the goban ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Wood tones, dark to light
	lines := []struct{ text, color string }{
		{"   __ _  ___ | |__   __ _ _ __", "#92400e"},
		{"  / _` |/ _ \\| '_ \\ / _` | '_ \\", "#b45309"},
		{" | (_| | (_) | |_) | (_| | | | |", "#d97706"},
		{"  \\__, |\\___/|_.__/ \\__,_|_| |_|", "#f59e0b"},
		{"  |___/", "#fbbf24"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors a short status word: green for ok, red otherwise.
func Status(w io.Writer, ok bool, text string) string {
	out := termenv.NewOutput(w)
	color := "#ef4444"
	if ok {
		color = "#22c55e"
	}
	return out.String(text).Foreground(out.Color(color)).Bold().String()
}
