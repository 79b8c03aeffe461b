package board

import (
	"fmt"

	"github.com/aretw0/goban/pkg/domain"
)

// layout returns the edge distance of the corner star points and the center line.
func layout(size int) (edge, mid, far int) {
	edge = 2
	if size >= 13 {
		edge = 3
	}
	return edge, size / 2, size - 1 - edge
}

// StarPoints returns the conventional hoshi of a board: four corner points on
// boards from 7x7, tengen on odd boards, and side points on odd boards from 15x15.
func StarPoints(size int) []domain.Coord {
	if size < 7 {
		if size%2 == 1 && size >= 5 {
			return []domain.Coord{{Row: size / 2, Col: size / 2}}
		}
		return nil
	}
	edge, mid, far := layout(size)
	pts := []domain.Coord{
		{Row: edge, Col: edge}, {Row: edge, Col: far},
		{Row: far, Col: edge}, {Row: far, Col: far},
	}
	if size%2 == 1 {
		if size >= 15 {
			pts = append(pts,
				domain.Coord{Row: edge, Col: mid}, domain.Coord{Row: mid, Col: edge},
				domain.Coord{Row: mid, Col: far}, domain.Coord{Row: far, Col: mid},
			)
		}
		pts = append(pts, domain.Coord{Row: mid, Col: mid})
	}
	sortCoords(pts)
	return pts
}

// MaxHandicap returns the largest fixed handicap defined for the size.
func MaxHandicap(size int) int {
	switch {
	case size < 7:
		return 0
	case size%2 == 0 || size == 7:
		return 4
	default:
		return 9
	}
}

// HandicapPoints returns the fixed handicap placement for n stones, in the
// order of the GTP fixed_handicap command.
func HandicapPoints(size, n int) ([]domain.Coord, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 2 || n > MaxHandicap(size) {
		return nil, fmt.Errorf("handicap %d not available on %dx%d", n, size, size)
	}
	edge, mid, far := layout(size)
	var (
		lowerLeft  = domain.Coord{Row: far, Col: edge}
		upperRight = domain.Coord{Row: edge, Col: far}
		upperLeft  = domain.Coord{Row: edge, Col: edge}
		lowerRight = domain.Coord{Row: far, Col: far}
		left       = domain.Coord{Row: mid, Col: edge}
		right      = domain.Coord{Row: mid, Col: far}
		bottom     = domain.Coord{Row: far, Col: mid}
		top        = domain.Coord{Row: edge, Col: mid}
		center     = domain.Coord{Row: mid, Col: mid}
	)
	corners := []domain.Coord{lowerLeft, upperRight, upperLeft, lowerRight}
	switch n {
	case 2, 3, 4:
		return corners[:n], nil
	case 5:
		return append(corners, center), nil
	case 6:
		return append(corners, left, right), nil
	case 7:
		return append(corners, left, right, center), nil
	case 8:
		return append(corners, left, right, bottom, top), nil
	default:
		return append(corners, left, right, bottom, top, center), nil
	}
}
