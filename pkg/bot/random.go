// Package bot provides move generators for playing against the engine.
package bot

import (
	"math/rand/v2"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/rules"
)

// Engine chooses a move for player in a position.
type Engine interface {
	GenMove(pos rules.Position, player domain.Player, rs domain.Ruleset) domain.Move
}

// Random plays a uniformly random legal move, never filling one of its own
// eyes, and passes when no such move is left. It is not safe for concurrent use.
type Random struct {
	rng        *rand.Rand
	candidates []domain.Coord
}

// NewRandom returns a Random bot with a deterministic seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Name identifies the engine in GTP.
func (r *Random) Name() string { return "random" }

// GenMove shuffles the empty points lazily: each draw swaps a random remaining
// candidate into place and tries it, so a position with few legal moves is
// not shuffled in full.
func (r *Random) GenMove(pos rules.Position, player domain.Player, rs domain.Ruleset) domain.Move {
	r.candidates = r.candidates[:0]
	for c, p := range pos.Board.All() {
		if p == domain.Empty {
			r.candidates = append(r.candidates, c)
		}
	}

	n := len(r.candidates)
	for tried := 0; tried < n; tried++ {
		swap := tried + r.rng.IntN(n-tried)
		r.candidates[tried], r.candidates[swap] = r.candidates[swap], r.candidates[tried]
		c := r.candidates[tried]

		if IsEye(pos.Board, c, player) {
			continue
		}
		mv := domain.PlayAt(player, c)
		if rules.Check(pos, mv, rs) == nil {
			return mv
		}
	}
	return domain.Pass(player)
}

// IsEye reports whether c is an empty point whose orthogonal neighbours are
// all stones of player and that is not a false eye: at most one diagonal may
// be held by the opponent, and none when c is on the edge.
func IsEye(b *board.Board, c domain.Coord, player domain.Player) bool {
	if b.At(c) != domain.Empty {
		return false
	}
	own := player.Stone()
	for _, n := range b.Neighbors(c) {
		if b.At(n) != own {
			return false
		}
	}

	enemy := player.Opponent().Stone()
	falsePoints, atEdge := 0, false
	for _, d := range [...]domain.Coord{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}} {
		diag := domain.C(c.Row+d.Row, c.Col+d.Col)
		switch {
		case !b.InBounds(diag):
			atEdge = true
		case b.At(diag) == enemy:
			falsePoints++
		}
	}
	if atEdge {
		falsePoints++
	}
	return falsePoints < 2
}
