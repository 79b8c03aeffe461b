package sgf

import (
	"fmt"
	"strings"

	"github.com/aretw0/goban/pkg/domain"
)

func letter(i int) byte {
	if i < 26 {
		return byte('a' + i)
	}
	return byte('A' + i - 26)
}

func unletter(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	}
	return 0, false
}

// EncodePoint renders c as two letters, column first ("aa" is the top-left corner).
func EncodePoint(c domain.Coord) string {
	return string([]byte{letter(c.Col), letter(c.Row)})
}

// DecodePoint parses a two-letter point and checks it against the board size.
func DecodePoint(s string, size int) (domain.Coord, error) {
	if len(s) != 2 {
		return domain.Coord{}, fmt.Errorf("invalid point %q", s)
	}
	col, ok1 := unletter(s[0])
	row, ok2 := unletter(s[1])
	if !ok1 || !ok2 {
		return domain.Coord{}, fmt.Errorf("invalid point %q", s)
	}
	c := domain.Coord{Row: row, Col: col}
	if row >= size || col >= size {
		return c, fmt.Errorf("%w: point %q on %dx%d board", domain.ErrOutOfBounds, s, size, size)
	}
	return c, nil
}

// decodeMove parses a B/W value. An empty value is a pass, and so is "tt" on
// boards up to 19x19, where it cannot address a real point.
func decodeMove(v string, size int) (c domain.Coord, pass bool, err error) {
	if v == "" || (v == "tt" && size <= 19) {
		return domain.Coord{}, true, nil
	}
	c, err = DecodePoint(v, size)
	return c, false, err
}

// decodePointList expands a list of points, including compressed rectangles
// written as "aa:cc".
func decodePointList(values []string, size int) ([]domain.Coord, error) {
	var out []domain.Coord
	for _, v := range values {
		from, to, compressed := strings.Cut(v, ":")
		a, err := DecodePoint(from, size)
		if err != nil {
			return nil, err
		}
		if !compressed {
			out = append(out, a)
			continue
		}
		b, err := DecodePoint(to, size)
		if err != nil {
			return nil, err
		}
		for r := min(a.Row, b.Row); r <= max(a.Row, b.Row); r++ {
			for c := min(a.Col, b.Col); c <= max(a.Col, b.Col); c++ {
				out = append(out, domain.Coord{Row: r, Col: c})
			}
		}
	}
	return out, nil
}

func encodePointList(cs []domain.Coord) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = EncodePoint(c)
	}
	return out
}
