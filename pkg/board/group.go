package board

import (
	"slices"

	"github.com/aretw0/goban/pkg/domain"
)

// Group is a maximal set of orthogonally connected stones of one color.
// Stones and Liberties are sorted in row-major order.
type Group struct {
	Color     domain.Player  `json:"color"`
	Stones    []domain.Coord `json:"stones"`
	Liberties []domain.Coord `json:"liberties"`
}

// IsEmpty reports whether the group has no stones (GroupAt on an empty point).
func (g Group) IsEmpty() bool { return len(g.Stones) == 0 }

// LibertyCount returns the number of distinct empty intersections adjacent to the group.
func (g Group) LibertyCount() int { return len(g.Liberties) }

// Contains reports whether c is one of the group's stones.
func (g Group) Contains(c domain.Coord) bool {
	return slices.Contains(g.Stones, c)
}

// GroupAt returns the group containing c, or an empty Group when c is empty.
func (b *Board) GroupAt(c domain.Coord) (Group, error) {
	if err := b.checkBounds(c); err != nil {
		return Group{}, err
	}
	visited := make([]bool, len(b.cells))
	return b.floodGroup(b.index(c), visited), nil
}

// Groups returns every group on the board, ordered by their first stone.
func (b *Board) Groups() []Group {
	visited := make([]bool, len(b.cells))
	var groups []Group
	for i, p := range b.cells {
		if p == domain.Empty || visited[i] {
			continue
		}
		groups = append(groups, b.floodGroup(i, visited))
	}
	return groups
}

// floodGroup collects the group at start. visited is shared so Groups can skip
// stones already assigned; liberties use their own marker set.
func (b *Board) floodGroup(start int, visited []bool) Group {
	color, ok := b.cells[start].Player()
	if !ok {
		return Group{}
	}
	own := b.cells[start]

	g := Group{Color: color}
	libSeen := make(map[int]struct{})
	stack := []int{start}
	visited[start] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := b.coord(i)
		g.Stones = append(g.Stones, c)
		for _, n := range b.Neighbors(c) {
			j := b.index(n)
			switch b.cells[j] {
			case domain.Empty:
				if _, seen := libSeen[j]; !seen {
					libSeen[j] = struct{}{}
					g.Liberties = append(g.Liberties, n)
				}
			case own:
				if !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	sortCoords(g.Stones)
	sortCoords(g.Liberties)
	return g
}

func sortCoords(cs []domain.Coord) {
	slices.SortFunc(cs, func(a, b domain.Coord) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
