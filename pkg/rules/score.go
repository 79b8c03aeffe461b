package rules

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
)

// Score is the numeric result of a finished game.
type Score struct {
	Rule           domain.ScoringRule `json:"rule"`
	Komi           float64            `json:"komi"`
	Black          float64            `json:"black"`
	White          float64            `json:"white"`
	BlackStones    int                `json:"black_stones"`
	WhiteStones    int                `json:"white_stones"`
	BlackTerritory int                `json:"black_territory"`
	WhiteTerritory int                `json:"white_territory"`
	// Prisoners include captures made during play and dead stones removed at scoring.
	BlackPrisoners int `json:"black_prisoners"`
	WhitePrisoners int `json:"white_prisoners"`
	Dame           int `json:"dame"`
}

// ComputeScore counts the final position. Every group containing one of the
// dead coordinates is removed first and credited to the opponent as prisoners;
// dead coordinates on empty intersections are ignored.
func ComputeScore(b *board.Board, captures domain.Captures, rs domain.Ruleset, dead ...domain.Coord) (Score, error) {
	s := Score{
		Rule:           rs.Scoring,
		Komi:           rs.Komi,
		BlackPrisoners: captures.Black,
		WhitePrisoners: captures.White,
	}

	var removed []domain.Coord
	for _, c := range dead {
		g, err := b.GroupAt(c)
		if err != nil {
			return Score{}, fmt.Errorf("dead stone: %w", err)
		}
		// Groups are disjoint, so one stone identifies a group already removed.
		if g.IsEmpty() || slices.Contains(removed, g.Stones[0]) {
			continue
		}
		removed = append(removed, g.Stones...)
		if g.Color == domain.Black {
			s.WhitePrisoners += len(g.Stones)
		} else {
			s.BlackPrisoners += len(g.Stones)
		}
	}
	if len(removed) > 0 {
		b = b.WithPointsCleared(removed...)
	}

	s.BlackStones = b.Count(domain.BlackStone)
	s.WhiteStones = b.Count(domain.WhiteStone)
	for _, r := range b.Regions() {
		owner, ok := r.Owner()
		switch {
		case !ok:
			s.Dame += len(r.Points)
		case owner == domain.Black:
			s.BlackTerritory += len(r.Points)
		default:
			s.WhiteTerritory += len(r.Points)
		}
	}

	switch rs.Scoring {
	case domain.ScoringTerritory:
		s.Black = float64(s.BlackTerritory + s.BlackPrisoners)
		s.White = float64(s.WhiteTerritory+s.WhitePrisoners) + rs.Komi
	default:
		s.Black = float64(s.BlackStones + s.BlackTerritory)
		s.White = float64(s.WhiteStones+s.WhiteTerritory) + rs.Komi
	}
	return s, nil
}

// Margin returns Black minus White.
func (s Score) Margin() float64 { return s.Black - s.White }

// Winner returns the leading player. ok is false on a draw.
func (s Score) Winner() (p domain.Player, ok bool) {
	switch m := s.Margin(); {
	case m > 0:
		return domain.Black, true
	case m < 0:
		return domain.White, true
	}
	return 0, false
}

// Result renders the score in SGF RE format: "B+3.5", "W+0.5" or "0" for a draw.
func (s Score) Result() string {
	winner, ok := s.Winner()
	if !ok {
		return "0"
	}
	m := s.Margin()
	if m < 0 {
		m = -m
	}
	return winner.String() + "+" + strconv.FormatFloat(m, 'f', -1, 64)
}

// ResignationResult returns the SGF RE value for a game lost by resignation.
func ResignationResult(loser domain.Player) string {
	return loser.Opponent().String() + "+R"
}
