package board

import (
	"fmt"

	"github.com/aretw0/goban/pkg/domain"
)

// Diff lists the intersections whose state differs between from and to, in
// row-major order. A nil from is treated as an empty board of to's size.
func Diff(from, to *Board) ([]domain.Change, error) {
	if to == nil {
		return nil, fmt.Errorf("diff target is nil")
	}
	if from == nil {
		from = MustNew(to.size)
	}
	if from.size != to.size {
		return nil, fmt.Errorf("cannot diff %dx%d against %dx%d", from.size, from.size, to.size, to.size)
	}
	var changes []domain.Change
	for i := range to.cells {
		if from.cells[i] != to.cells[i] {
			changes = append(changes, domain.Change{
				Coord: to.coord(i),
				From:  from.cells[i],
				To:    to.cells[i],
			})
		}
	}
	return changes, nil
}
