package domain

import (
	"fmt"
	"strings"
)

// Player identifies the side to move.
type Player uint8

const (
	Black Player = iota + 1
	White
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

// Stone returns the Point occupied by a stone of this player.
func (p Player) Stone() Point {
	if p == Black {
		return BlackStone
	}
	return WhiteStone
}

// String returns the SGF color letter ("B" or "W").
func (p Player) String() string {
	switch p {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return "?"
	}
}

// Name returns the lower-case color name.
func (p Player) Name() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "unknown"
	}
}

// ParsePlayer accepts "B", "W", "black" or "white" in any case.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return 0, fmt.Errorf("invalid player %q", s)
}

// Point is the state of a single intersection.
type Point uint8

const (
	Empty Point = iota
	BlackStone
	WhiteStone
)

// Player reports the owner of a stone. ok is false for Empty.
func (p Point) Player() (pl Player, ok bool) {
	switch p {
	case BlackStone:
		return Black, true
	case WhiteStone:
		return White, true
	}
	return 0, false
}

func (p Point) String() string {
	switch p {
	case BlackStone:
		return "X"
	case WhiteStone:
		return "O"
	default:
		return "."
	}
}

// Coord addresses an intersection. Row 0 is the top edge and Col 0 the left edge.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Captures counts the stones each player has captured.
type Captures struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Of returns the capture count of p.
func (c Captures) Of(p Player) int {
	if p == Black {
		return c.Black
	}
	return c.White
}

// Add returns a copy with n stones credited to p.
func (c Captures) Add(p Player, n int) Captures {
	if p == Black {
		c.Black += n
	} else {
		c.White += n
	}
	return c
}
