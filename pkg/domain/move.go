package domain

import "fmt"

// MoveKind distinguishes stone placement from passing and resigning.
type MoveKind uint8

const (
	KindPlay MoveKind = iota
	KindPass
	KindResign
)

func (k MoveKind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindResign:
		return "resign"
	default:
		return "play"
	}
}

// Move is a single action by a player. Coord is only meaningful for KindPlay.
type Move struct {
	Kind   MoveKind `json:"kind"`
	Player Player   `json:"player"`
	Coord  Coord    `json:"coord"`
}

// PlayAt returns a stone placement.
func PlayAt(p Player, c Coord) Move {
	return Move{Kind: KindPlay, Player: p, Coord: c}
}

// Pass returns a pass by p.
func Pass(p Player) Move {
	return Move{Kind: KindPass, Player: p}
}

// Resign returns a resignation by p.
func Resign(p Player) Move {
	return Move{Kind: KindResign, Player: p}
}

// IsPlay reports whether the move places a stone.
func (m Move) IsPlay() bool { return m.Kind == KindPlay }

// Equal compares moves, ignoring Coord for passes and resignations.
func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind || m.Player != o.Player {
		return false
	}
	return m.Kind != KindPlay || m.Coord == o.Coord
}

func (m Move) String() string {
	if m.Kind == KindPlay {
		return fmt.Sprintf("%s %s", m.Player, m.Coord)
	}
	return fmt.Sprintf("%s %s", m.Player, m.Kind)
}

// KoState records the single intersection where an immediate recapture is forbidden.
type KoState struct {
	Point  Coord `json:"point"`
	Active bool  `json:"active"`
}

// KoAt returns an active ko restriction at c.
func KoAt(c Coord) KoState {
	return KoState{Point: c, Active: true}
}

// Forbids reports whether the ko restriction applies to c.
func (k KoState) Forbids(c Coord) bool {
	return k.Active && k.Point == c
}
