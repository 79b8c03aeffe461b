package rules_test

import (
	"testing"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var splitBoard = []string{
	".X.O.",
	".X.O.",
	".X.O.",
	".X.O.",
	".X.O.",
}

func TestComputeScore(t *testing.T) {
	b := board.MustParse(splitBoard...)

	tests := []struct {
		name     string
		rules    domain.Ruleset
		captures domain.Captures
		black    float64
		white    float64
		result   string
	}{
		{
			name:   "Area With Komi",
			rules:  domain.Ruleset{Scoring: domain.ScoringArea, Komi: 0.5},
			black:  10,
			white:  10.5,
			result: "W+0.5",
		},
		{
			name:     "Territory Counts Prisoners",
			rules:    domain.Ruleset{Scoring: domain.ScoringTerritory, Komi: 0.5},
			captures: domain.Captures{Black: 2},
			black:    7,
			white:    5.5,
			result:   "B+1.5",
		},
		{
			name:   "Draw",
			rules:  domain.Ruleset{Scoring: domain.ScoringArea},
			black:  10,
			white:  10,
			result: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := rules.ComputeScore(b, tt.captures, tt.rules)
			require.NoError(t, err)
			assert.Equal(t, tt.black, s.Black)
			assert.Equal(t, tt.white, s.White)
			assert.Equal(t, tt.result, s.Result())
			assert.Equal(t, 5, s.Dame)
		})
	}
}

func TestComputeScore_DeadStones(t *testing.T) {
	b := board.MustParse(
		"OX.O.",
		".X.O.",
		".X.O.",
		".X.O.",
		".X.O.",
	)
	rs := domain.Ruleset{Scoring: domain.ScoringTerritory, Komi: 0.5}

	alive, err := rules.ComputeScore(b, domain.Captures{}, rs)
	require.NoError(t, err)
	assert.Zero(t, alive.BlackTerritory, "the white stone spoils black's area")

	// Listing the same group twice must not double count.
	s, err := rules.ComputeScore(b, domain.Captures{}, rs, domain.C(0, 0), domain.C(0, 0), domain.C(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, s.BlackTerritory)
	assert.Equal(t, 1, s.BlackPrisoners)
	assert.Equal(t, "B+0.5", s.Result())

	area, err := rules.ComputeScore(b, domain.Captures{}, domain.Ruleset{Scoring: domain.ScoringArea, Komi: 0.5}, domain.C(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "W+0.5", area.Result())

	_, err = rules.ComputeScore(b, domain.Captures{}, rs, domain.C(7, 7))
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)

	assert.Equal(t, domain.WhiteStone, b.At(domain.C(0, 0)), "scoring does not modify the board")
}

func TestScore_Winner(t *testing.T) {
	w, ok := rules.Score{Black: 3, White: 1}.Winner()
	assert.True(t, ok)
	assert.Equal(t, domain.Black, w)

	_, ok = rules.Score{Black: 1, White: 1}.Winner()
	assert.False(t, ok)
}
