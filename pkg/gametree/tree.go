// Package gametree stores the branching history of a game.
//
// Nodes live in a store keyed by domain.NodeID. A node refers to its parent by
// ID, and the tree owns every node. IDs are assigned monotonically and never
// reused, so an ID removed by Truncate stays invalid and lookups fail with
// domain.ErrNodeNotFound instead of returning an unrelated node.
//
// A Tree is not safe for concurrent mutation; callers serialize access.
package gametree

import (
	"fmt"
	"slices"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/rules"
)

// Tree is a rooted tree of game positions.
type Tree struct {
	nodes  map[domain.NodeID]*Node
	root   domain.NodeID
	nextID domain.NodeID
	size   int
	rules  domain.Ruleset

	result     string
	resultNode domain.NodeID
}

// New creates a tree whose root holds an empty board of the given size.
func New(size int, rs domain.Ruleset) (*Tree, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	t := &Tree{
		nodes: make(map[domain.NodeID]*Node),
		size:  size,
		rules: rs,
	}
	root := t.newNode(&Node{board: b})
	t.root = root.id
	return t, nil
}

func (t *Tree) newNode(n *Node) *Node {
	n.id = t.nextID
	t.nextID++
	t.nodes[n.id] = n
	return n
}

// Size returns the board size shared by every node.
func (t *Tree) Size() int { return t.size }

// Ruleset returns the rules moves are validated against.
func (t *Tree) Ruleset() domain.Ruleset { return t.rules }

// Result returns the recorded game result (SGF RE), if any.
func (t *Tree) Result() string { return t.result }

// ResultNode returns the node the game ended at. It reports false when no
// result is recorded.
func (t *Tree) ResultNode() (domain.NodeID, bool) {
	return t.resultNode, t.result != ""
}

// SetResult records result as reached at id: a resignation or the node the
// game was scored at. An empty result clears it. Truncating id or one of its
// ancestors clears the result as well.
func (t *Tree) SetResult(id domain.NodeID, result string) error {
	if _, err := t.Node(id); err != nil {
		return err
	}
	t.result = result
	t.resultNode = id
	return nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodes[t.root] }

// Node looks up a node by ID.
func (t *Tree) Node(id domain.NodeID) (*Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrNodeNotFound, id)
	}
	return n, nil
}

// Children returns the children of id, main line first.
func (t *Tree) Children(id domain.NodeID) ([]*Node, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, len(n.children))
	for i, c := range n.children {
		out[i] = t.nodes[c]
	}
	return out, nil
}

// Child returns the i-th child of id.
func (t *Tree) Child(id domain.NodeID, i int) (*Node, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(n.children) {
		return nil, fmt.Errorf("%w: node %d has no child %d", domain.ErrNodeNotFound, id, i)
	}
	return t.nodes[n.children[i]], nil
}

// Path returns the nodes from the root to id, inclusive.
func (t *Tree) Path(id domain.NodeID) ([]*Node, error) {
	n, err := t.Node(id)
	if err != nil {
		return nil, err
	}
	var path []*Node
	for {
		path = append(path, n)
		if !n.hasParent {
			break
		}
		n = t.nodes[n.parent]
	}
	slices.Reverse(path)
	return path, nil
}

// MainLine follows the first child from the root to a leaf.
func (t *Tree) MainLine() []*Node {
	n := t.Root()
	line := []*Node{n}
	for len(n.children) > 0 {
		n = t.nodes[n.children[0]]
		line = append(line, n)
	}
	return line
}

// Walk visits every node depth-first, parents before children and children in
// order. Returning false from fn skips the node's subtree.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var visit func(id domain.NodeID, depth int)
	visit = func(id domain.NodeID, depth int) {
		n := t.nodes[id]
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	visit(t.root, 0)
}

// ToMove returns the player expected to move after id. It follows the last
// move on the path, honours an opaque PL property, and after a black-only
// setup (a handicap) gives the move to White.
func (t *Tree) ToMove(id domain.NodeID) (domain.Player, error) {
	n, err := t.Node(id)
	if err != nil {
		return 0, err
	}
	for {
		if pl, ok := n.Property("PL"); ok && len(pl) > 0 {
			if p, err := domain.ParsePlayer(pl[0]); err == nil {
				return p, nil
			}
		}
		if n.hasMove {
			return n.move.Player.Opponent(), nil
		}
		if len(n.setup.Black) > 0 && len(n.setup.White) == 0 {
			return domain.White, nil
		}
		if !n.hasParent {
			return domain.Black, nil
		}
		n = t.nodes[n.parent]
	}
}

// InScoringPhase reports whether consecutive passes at id reached the
// ruleset's threshold.
func (t *Tree) InScoringPhase(id domain.NodeID) (bool, error) {
	n, err := t.Node(id)
	if err != nil {
		return false, err
	}
	return n.passes >= t.rules.Passes(), nil
}

// position builds the rules context for a move played after n.
func (t *Tree) position(n *Node) rules.Position {
	pos := rules.Position{Board: n.board, Ko: n.ko, Passes: n.passes}
	if t.rules.Ko == domain.KoPositionalSuperko {
		for p := n; p.hasParent; {
			p = t.nodes[p.parent]
			pos.Previous = append(pos.Previous, p.board)
		}
		slices.Reverse(pos.Previous)
	}
	return pos
}

// AppendMove validates mv against the position at parent and appends the
// resulting node. When parent already has a child reached by the same move,
// that child is returned instead and the tree is unchanged.
func (t *Tree) AppendMove(parent domain.NodeID, mv domain.Move) (*Node, rules.Outcome, error) {
	p, err := t.Node(parent)
	if err != nil {
		return nil, rules.Outcome{}, err
	}
	out, err := rules.Apply(t.position(p), mv, t.rules)
	if err != nil {
		return nil, rules.Outcome{}, err
	}
	for _, c := range p.children {
		child := t.nodes[c]
		if child.hasMove && child.setup.IsZero() && child.move.Equal(mv) {
			return child, out, nil
		}
	}
	n := t.newNode(&Node{
		parent:    p.id,
		hasParent: true,
		board:     out.Board,
		captures:  out.Credit(p.captures, mv.Player),
		ko:        out.Ko,
		passes:    out.Passes,
		move:      mv,
		hasMove:   true,
	})
	p.children = append(p.children, n.id)
	return n, out, nil
}

// NodeSpec describes a node to append with AppendNode.
type NodeSpec struct {
	Setup      Setup
	Move       *domain.Move
	Comment    *string
	Properties []Property
	// Strict validates the move against the full ruleset. Otherwise ko is
	// ignored and suicide removes the group, as recorded games may require.
	Strict bool
}

// AppendNode appends a general node: setup stones are applied first, then the
// move, if any. Unlike AppendMove it never reuses an existing child, so a
// record with duplicate variations keeps them.
func (t *Tree) AppendNode(parent domain.NodeID, spec NodeSpec) (*Node, error) {
	p, err := t.Node(parent)
	if err != nil {
		return nil, err
	}
	n := &Node{
		parent:    p.id,
		hasParent: true,
		board:     p.board,
		captures:  p.captures,
		ko:        p.ko,
		setup:     spec.Setup,
		props:     cloneProps(spec.Properties),
	}
	if spec.Comment != nil {
		n.comment = *spec.Comment
		n.hasComment = true
	}
	if !spec.Setup.IsZero() {
		b, err := p.board.WithSetup(spec.Setup.Black, spec.Setup.White, spec.Setup.Empty)
		if err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
		n.board = b
		n.ko = domain.KoState{}
	}
	if spec.Move != nil {
		mv := *spec.Move
		pos := t.position(p)
		if !spec.Setup.IsZero() && t.rules.Ko == domain.KoPositionalSuperko {
			// The position before the setup is still part of the history.
			pos.Previous = append(pos.Previous, p.board)
		}
		pos.Board = n.board
		pos.Ko = n.ko
		rs := t.rules
		if !spec.Strict {
			rs.SuicideAllowed = true
			rs.Ko = domain.KoSimple
			pos.Ko = domain.KoState{}
			pos.Previous = nil
		}
		out, err := rules.Apply(pos, mv, rs)
		if err != nil {
			return nil, err
		}
		n.board = out.Board
		n.captures = out.Credit(p.captures, mv.Player)
		n.ko = out.Ko
		n.passes = out.Passes
		n.move = mv
		n.hasMove = true
	}
	n = t.newNode(n)
	p.children = append(p.children, n.id)
	return n, nil
}

// SetupRoot places setup stones on the root. It is only allowed while the
// root has no children, since every other board derives from it.
func (t *Tree) SetupRoot(s Setup) error {
	root := t.Root()
	if len(root.children) > 0 {
		return fmt.Errorf("cannot change root setup after moves were added")
	}
	b, err := board.MustNew(t.size).WithSetup(s.Black, s.White, s.Empty)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	root.board = b
	root.setup = s
	return nil
}

// SetComment replaces the comment of id. An empty comment is still kept, and
// exported as C[].
func (t *Tree) SetComment(id domain.NodeID, comment string) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	n.comment = comment
	n.hasComment = true
	return nil
}

// SetProperty sets an opaque property on id, replacing an existing one with
// the same identifier in place. No values removes the property.
func (t *Tree) SetProperty(id domain.NodeID, ident string, values ...string) error {
	n, err := t.Node(id)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(n.props, func(p Property) bool { return p.Ident == ident })
	switch {
	case len(values) == 0 && i >= 0:
		n.props = slices.Delete(n.props, i, i+1)
	case len(values) == 0:
	case i >= 0:
		n.props[i].Values = slices.Clone(values)
	default:
		n.props = append(n.props, Property{Ident: ident, Values: slices.Clone(values)})
	}
	return nil
}

// Truncate removes id and its whole subtree and returns the number of nodes
// removed. The root cannot be truncated.
func (t *Tree) Truncate(id domain.NodeID) (int, error) {
	n, err := t.Node(id)
	if err != nil {
		return 0, err
	}
	if !n.hasParent {
		return 0, domain.ErrTruncateRoot
	}
	parent := t.nodes[n.parent]
	parent.children = slices.DeleteFunc(parent.children, func(c domain.NodeID) bool { return c == id })

	removed := 0
	stack := []domain.NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.nodes[cur].children...)
		delete(t.nodes, cur)
		if cur == t.resultNode {
			t.result = ""
		}
		removed++
	}
	return removed, nil
}

// Promote makes id the main line at every level from the root down to it.
func (t *Tree) Promote(id domain.NodeID) error {
	path, err := t.Path(id)
	if err != nil {
		return err
	}
	for i := 1; i < len(path); i++ {
		parent, child := path[i-1], path[i].id
		j := slices.Index(parent.children, child)
		if j > 0 {
			parent.children = slices.Delete(parent.children, j, j+1)
			parent.children = slices.Insert(parent.children, 0, child)
		}
	}
	return nil
}

func cloneProps(props []Property) []Property {
	if len(props) == 0 {
		return nil
	}
	out := make([]Property, len(props))
	for i, p := range props {
		out[i] = Property{Ident: p.Ident, Values: slices.Clone(p.Values)}
	}
	return out
}
