package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/goban/pkg/domain"
)

// MaxSize is the largest board GTP vertices can address (A..Z without I).
const MaxSize = 25

const columns = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// Vertex renders c as a GTP vertex: column letter (I skipped), then the row
// counted from the bottom edge.
func Vertex(c domain.Coord, size int) string {
	return string(columns[c.Col]) + strconv.Itoa(size-c.Row)
}

// ParseVertex reads a GTP vertex. pass is true for "pass".
func ParseVertex(s string, size int) (c domain.Coord, pass bool, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return domain.Coord{}, true, nil
	}
	if len(s) < 2 {
		return domain.Coord{}, false, fmt.Errorf("invalid vertex %q", s)
	}
	col := strings.IndexByte(columns, s[0])
	n, err := strconv.Atoi(s[1:])
	if col < 0 || err != nil {
		return domain.Coord{}, false, fmt.Errorf("invalid vertex %q", s)
	}
	c = domain.C(size-n, col)
	if c.Row < 0 || c.Row >= size || c.Col >= size {
		return domain.Coord{}, false, fmt.Errorf("%w: %s", domain.ErrOutOfBounds, s)
	}
	return c, false, nil
}
