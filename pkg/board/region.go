package board

import "github.com/aretw0/goban/pkg/domain"

// Region is a maximal set of connected empty intersections together with the
// colors of the stones that border it.
type Region struct {
	Points       []domain.Coord `json:"points"`
	BordersBlack bool           `json:"borders_black"`
	BordersWhite bool           `json:"borders_white"`
}

// Owner returns the player whose stones alone surround the region.
// ok is false for neutral regions (dame) and for regions touching no stone.
func (r Region) Owner() (p domain.Player, ok bool) {
	switch {
	case r.BordersBlack && !r.BordersWhite:
		return domain.Black, true
	case r.BordersWhite && !r.BordersBlack:
		return domain.White, true
	}
	return 0, false
}

// Regions partitions the empty intersections into connected regions.
func (b *Board) Regions() []Region {
	visited := make([]bool, len(b.cells))
	var regions []Region
	for start, p := range b.cells {
		if p != domain.Empty || visited[start] {
			continue
		}
		var r Region
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c := b.coord(i)
			r.Points = append(r.Points, c)
			for _, n := range b.Neighbors(c) {
				j := b.index(n)
				switch b.cells[j] {
				case domain.Empty:
					if !visited[j] {
						visited[j] = true
						stack = append(stack, j)
					}
				case domain.BlackStone:
					r.BordersBlack = true
				case domain.WhiteStone:
					r.BordersWhite = true
				}
			}
		}
		sortCoords(r.Points)
		regions = append(regions, r)
	}
	return regions
}
