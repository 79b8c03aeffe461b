// Package board implements an immutable Go board.
//
// Every operation that changes stones returns a new *Board; a Board that has
// been handed out is never modified, so it can be shared freely between game
// tree nodes and goroutines.
package board

import (
	"fmt"
	"iter"
	"strings"

	"github.com/aretw0/goban/pkg/domain"
)

// MaxSize is the largest board addressable by SGF coordinates (a-z, A-Z).
const MaxSize = 52

// Board is a square grid of intersections.
type Board struct {
	size  int
	cells []domain.Point
	hash  uint64
}

// New returns an empty board of the given size.
func New(size int) (*Board, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidBoardSize, size)
	}
	return &Board{size: size, cells: make([]domain.Point, size*size)}, nil
}

// MustNew is like New but panics on an invalid size.
func MustNew(size int) *Board {
	b, err := New(size)
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the number of lines on each side.
func (b *Board) Size() int { return b.size }

// InBounds reports whether c addresses an intersection of this board.
func (b *Board) InBounds(c domain.Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

func (b *Board) index(c domain.Coord) int {
	return c.Row*b.size + c.Col
}

func (b *Board) coord(i int) domain.Coord {
	return domain.Coord{Row: i / b.size, Col: i % b.size}
}

func (b *Board) checkBounds(c domain.Coord) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %s on %dx%d board", domain.ErrOutOfBounds, c, b.size, b.size)
	}
	return nil
}

// PointAt returns the state of the intersection at c.
func (b *Board) PointAt(c domain.Coord) (domain.Point, error) {
	if err := b.checkBounds(c); err != nil {
		return domain.Empty, err
	}
	return b.cells[b.index(c)], nil
}

// At is PointAt without the bounds error; out-of-bounds coordinates read as Empty.
func (b *Board) At(c domain.Coord) domain.Point {
	if !b.InBounds(c) {
		return domain.Empty
	}
	return b.cells[b.index(c)]
}

// Neighbors returns the orthogonally adjacent intersections of c that lie on the board.
func (b *Board) Neighbors(c domain.Coord) []domain.Coord {
	out := make([]domain.Coord, 0, 4)
	for _, n := range [4]domain.Coord{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	} {
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// All iterates over every intersection in row-major order.
func (b *Board) All() iter.Seq2[domain.Coord, domain.Point] {
	return func(yield func(domain.Coord, domain.Point) bool) {
		for i, p := range b.cells {
			if !yield(b.coord(i), p) {
				return
			}
		}
	}
}

func (b *Board) clone() *Board {
	cells := make([]domain.Point, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells, hash: b.hash}
}

// set writes p at index i and keeps the zobrist hash current. Only used on fresh clones.
func (b *Board) set(i int, p domain.Point) {
	keys := zobristKeys(b.size)
	b.hash ^= keys.of(i, b.cells[i])
	b.cells[i] = p
	b.hash ^= keys.of(i, p)
}

// WithStonePlaced returns a copy of the board with p written at c.
// No legality checks are performed; that is the rules engine's job.
func (b *Board) WithStonePlaced(c domain.Coord, p domain.Point) (*Board, error) {
	if err := b.checkBounds(c); err != nil {
		return nil, err
	}
	next := b.clone()
	next.set(b.index(c), p)
	return next, nil
}

// WithPointsCleared returns a copy of the board with every listed intersection emptied.
// It panics on an out-of-bounds coordinate, which callers derive from this board.
func (b *Board) WithPointsCleared(cs ...domain.Coord) *Board {
	next := b.clone()
	for _, c := range cs {
		if !b.InBounds(c) {
			panic(fmt.Sprintf("board: clear out of bounds %s", c))
		}
		next.set(b.index(c), domain.Empty)
	}
	return next
}

// WithSetup applies SGF-style setup: black and white stones are added and the
// empty list is cleared, in that order.
func (b *Board) WithSetup(black, white, empty []domain.Coord) (*Board, error) {
	next := b.clone()
	apply := func(cs []domain.Coord, p domain.Point) error {
		for _, c := range cs {
			if err := b.checkBounds(c); err != nil {
				return err
			}
			next.set(b.index(c), p)
		}
		return nil
	}
	if err := apply(black, domain.BlackStone); err != nil {
		return nil, err
	}
	if err := apply(white, domain.WhiteStone); err != nil {
		return nil, err
	}
	if err := apply(empty, domain.Empty); err != nil {
		return nil, err
	}
	return next, nil
}

// Hash returns the zobrist hash of the stone configuration.
// The empty board hashes to zero on every size.
func (b *Board) Hash() uint64 { return b.hash }

// Equal reports whether both boards have the same size and stones.
func (b *Board) Equal(o *Board) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil || b.size != o.size || b.hash != o.hash {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of intersections holding p.
func (b *Board) Count(p domain.Point) int {
	n := 0
	for _, q := range b.cells {
		if q == p {
			n++
		}
	}
	return n
}

// String renders the board one row per line: "." empty, "X" black, "O" white.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.cells) + b.size)
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			sb.WriteString(b.cells[r*b.size+c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds a board from rows in the String format. Spaces are ignored, so
// "X . O" and "X.O" are equivalent. The number of rows sets the size.
func Parse(rows ...string) (*Board, error) {
	b, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != b.size {
			return nil, fmt.Errorf("row %d has %d points, want %d", r, len(row), b.size)
		}
		for c, ch := range row {
			var p domain.Point
			switch ch {
			case '.', '+':
				p = domain.Empty
			case 'X', 'x', 'B', '#':
				p = domain.BlackStone
			case 'O', 'o', 'W':
				p = domain.WhiteStone
			default:
				return nil, fmt.Errorf("row %d: unexpected character %q", r, ch)
			}
			if p != domain.Empty {
				b.set(r*b.size+c, p)
			}
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests and fixtures.
func MustParse(rows ...string) *Board {
	b, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return b
}
