package gametree

import (
	"slices"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
)

// Property is an SGF property the tree does not interpret. It is kept verbatim
// so that exporting a loaded record reproduces it.
type Property struct {
	Ident  string   `json:"ident"`
	Values []string `json:"values"`
}

// Setup lists stones added or removed without a move (SGF AB, AW, AE).
type Setup struct {
	Black []domain.Coord `json:"black,omitempty"`
	White []domain.Coord `json:"white,omitempty"`
	Empty []domain.Coord `json:"empty,omitempty"`
}

// IsZero reports whether the setup changes nothing.
func (s Setup) IsZero() bool {
	return len(s.Black) == 0 && len(s.White) == 0 && len(s.Empty) == 0
}

// Node is one position in a game tree. Nodes are created and modified only
// through their Tree; the accessors below return copies of slices.
type Node struct {
	id        domain.NodeID
	parent    domain.NodeID
	hasParent bool
	children  []domain.NodeID

	board    *board.Board
	captures domain.Captures
	ko       domain.KoState
	passes   int
	move     domain.Move
	hasMove  bool
	setup    Setup
	comment  string
	props    []Property

	hasComment bool
}

// ID returns the node's identifier in its tree.
func (n *Node) ID() domain.NodeID { return n.id }

// Parent returns the parent ID. ok is false for the root.
func (n *Node) Parent() (id domain.NodeID, ok bool) { return n.parent, n.hasParent }

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool { return !n.hasParent }

// Children returns the child IDs; the first one is the main line.
func (n *Node) Children() []domain.NodeID { return slices.Clone(n.children) }

// Board returns the position after this node's setup and move.
func (n *Node) Board() *board.Board { return n.board }

// Captures returns the cumulative stones captured by each player.
func (n *Node) Captures() domain.Captures { return n.captures }

// Ko returns the ko restriction in force for the next move.
func (n *Node) Ko() domain.KoState { return n.ko }

// Passes returns the number of consecutive passes ending at this node.
func (n *Node) Passes() int { return n.passes }

// Move returns the move that produced this node. ok is false for the root and
// for setup-only nodes.
func (n *Node) Move() (mv domain.Move, ok bool) { return n.move, n.hasMove }

// Setup returns the setup stones placed at this node.
func (n *Node) Setup() Setup { return n.setup }

// Comment returns the node comment (SGF C).
func (n *Node) Comment() string { return n.comment }

// HasComment reports whether the node carries a comment, possibly empty.
func (n *Node) HasComment() bool { return n.hasComment }

// Properties returns the opaque properties in their original order.
func (n *Node) Properties() []Property {
	return cloneProps(n.props)
}

// Property returns the values of an opaque property.
func (n *Node) Property(ident string) ([]string, bool) {
	for _, p := range n.props {
		if p.Ident == ident {
			return slices.Clone(p.Values), true
		}
	}
	return nil, false
}
