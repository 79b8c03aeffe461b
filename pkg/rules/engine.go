// Package rules validates and applies moves.
//
// The engine is a set of pure functions over immutable boards: Apply takes a
// Position, a Move and a Ruleset and returns the resulting Outcome or an
// *IllegalMoveError. Nothing is mutated in place.
package rules

import (
	"fmt"
	"slices"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
)

// Position is the context a move is validated against.
type Position struct {
	Board  *board.Board
	Ko     domain.KoState
	Passes int
	// Previous holds the earlier boards of the same line (root first). It is
	// only consulted under positional superko.
	Previous []*board.Board
}

// Outcome is the result of a successfully applied move.
type Outcome struct {
	Board *board.Board
	// Captured lists the opponent stones removed by the move.
	Captured []domain.Coord
	// SelfCaptured lists the mover's own stones removed by an allowed suicide.
	SelfCaptured []domain.Coord
	Ko           domain.KoState
	Passes       int
	// Scoring is true when consecutive passes reached the ruleset threshold.
	Scoring  bool
	Resigned bool
}

// Credit adds the outcome's captures to c. Captured stones count for the
// mover; self-captured stones count for the opponent.
func (o Outcome) Credit(c domain.Captures, mover domain.Player) domain.Captures {
	c = c.Add(mover, len(o.Captured))
	return c.Add(mover.Opponent(), len(o.SelfCaptured))
}

// IllegalMoveError reports why a move was rejected. Reason is one of the
// domain sentinels (ErrOutOfBounds, ErrOccupied, ErrSuicide, ErrKoViolation).
type IllegalMoveError struct {
	Move   domain.Move
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %v", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error { return e.Reason }

func illegal(mv domain.Move, reason error) error {
	return &IllegalMoveError{Move: mv, Reason: reason}
}

// Apply validates mv against pos under rs and returns the resulting outcome.
func Apply(pos Position, mv domain.Move, rs domain.Ruleset) (Outcome, error) {
	if pos.Board == nil {
		return Outcome{}, fmt.Errorf("rules: position has no board")
	}
	switch mv.Kind {
	case domain.KindPass:
		passes := pos.Passes + 1
		return Outcome{Board: pos.Board, Passes: passes, Scoring: passes >= rs.Passes()}, nil
	case domain.KindResign:
		return Outcome{Board: pos.Board, Passes: pos.Passes, Resigned: true}, nil
	case domain.KindPlay:
		return play(pos, mv, rs)
	}
	return Outcome{}, fmt.Errorf("rules: unknown move kind %d", mv.Kind)
}

func play(pos Position, mv domain.Move, rs domain.Ruleset) (Outcome, error) {
	b := pos.Board
	target, err := b.PointAt(mv.Coord)
	if err != nil {
		return Outcome{}, illegal(mv, err)
	}
	if target != domain.Empty {
		return Outcome{}, illegal(mv, domain.ErrOccupied)
	}

	placed, err := b.WithStonePlaced(mv.Coord, mv.Player.Stone())
	if err != nil {
		return Outcome{}, illegal(mv, err)
	}

	// Remove every adjacent opponent group left without liberties.
	var captured []domain.Coord
	opponent := mv.Player.Opponent().Stone()
	for _, n := range placed.Neighbors(mv.Coord) {
		if placed.At(n) != opponent || slices.Contains(captured, n) {
			continue
		}
		g, _ := placed.GroupAt(n)
		if g.LibertyCount() == 0 {
			captured = append(captured, g.Stones...)
		}
	}
	after := placed
	if len(captured) > 0 {
		after = placed.WithPointsCleared(captured...)
	}

	own, _ := after.GroupAt(mv.Coord)
	var self []domain.Coord
	if own.LibertyCount() == 0 {
		if !rs.SuicideAllowed {
			return Outcome{}, illegal(mv, domain.ErrSuicide)
		}
		self = own.Stones
		after = after.WithPointsCleared(self...)
	}

	if pos.Ko.Forbids(mv.Coord) && len(captured) == 1 {
		return Outcome{}, illegal(mv, domain.ErrKoViolation)
	}
	if rs.Ko == domain.KoPositionalSuperko && repeats(after, pos) {
		return Outcome{}, illegal(mv, domain.ErrKoViolation)
	}

	var ko domain.KoState
	if len(captured) == 1 && len(own.Stones) == 1 && own.LibertyCount() == 1 {
		ko = domain.KoAt(captured[0])
	}

	assertLiberties(after)

	return Outcome{
		Board:        after,
		Captured:     captured,
		SelfCaptured: self,
		Ko:           ko,
	}, nil
}

func repeats(b *board.Board, pos Position) bool {
	if b.Equal(pos.Board) {
		return true
	}
	h := b.Hash()
	for _, prev := range pos.Previous {
		if prev.Hash() == h && prev.Equal(b) {
			return true
		}
	}
	return false
}

// assertLiberties panics when a group without liberties survives a move.
// That can only happen through a defect in this package.
func assertLiberties(b *board.Board) {
	for _, g := range b.Groups() {
		if g.LibertyCount() == 0 {
			panic(fmt.Sprintf("rules: %s group at %s has no liberties\n%s", g.Color, g.Stones[0], b))
		}
	}
}

// Check reports whether mv would be accepted, without returning the outcome.
func Check(pos Position, mv domain.Move, rs domain.Ruleset) error {
	_, err := Apply(pos, mv, rs)
	return err
}

// LegalMoves lists every intersection where player may place a stone, in
// row-major order. Passing is always legal and is not included.
func LegalMoves(pos Position, player domain.Player, rs domain.Ruleset) []domain.Coord {
	var legal []domain.Coord
	for c, p := range pos.Board.All() {
		if p != domain.Empty {
			continue
		}
		if Check(pos, domain.PlayAt(player, c), rs) == nil {
			legal = append(legal, c)
		}
	}
	return legal
}
