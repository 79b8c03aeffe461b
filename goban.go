package goban

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/aretw0/goban/internal/logging"
	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/rules"
	"github.com/aretw0/goban/pkg/sgf"
)

// Game is the high-level entry point for the goban library.
// It pairs a game tree with a cursor (the current node) and exposes the
// operations a board UI needs. A Game is not safe for concurrent use.
type Game struct {
	tree    *gametree.Tree
	current domain.NodeID
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	// Construction-only settings.
	rules    domain.Ruleset
	komi     *float64
	handicap int
}

// Option defines a functional option for configuring the Game.
type Option func(*Game)

// WithRuleset selects the rules for a new game. Loaded games use the RU of
// the record and only fall back to this ruleset when RU is absent.
func WithRuleset(rs domain.Ruleset) Option {
	return func(g *Game) {
		g.rules = rs
	}
}

// WithKomi overrides the komi of the ruleset.
func WithKomi(komi float64) Option {
	return func(g *Game) {
		g.komi = &komi
	}
}

// WithHandicap places n fixed handicap stones for Black; White moves first.
func WithHandicap(n int) Option {
	return func(g *Game) {
		g.handicap = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Game) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the game.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

func newGame(opts []Option) *Game {
	g := &Game{rules: domain.DefaultRuleset()}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	if g.komi != nil {
		g.rules.Komi = *g.komi
	}
	return g
}

// New starts a game on an empty board of the given size.
func New(size int, opts ...Option) (*Game, error) {
	g := newGame(opts)
	tree, err := gametree.New(size, g.rules)
	if err != nil {
		return nil, err
	}
	if g.handicap > 0 {
		pts, err := board.HandicapPoints(size, g.handicap)
		if err != nil {
			return nil, err
		}
		if err := tree.SetupRoot(gametree.Setup{Black: pts}); err != nil {
			return nil, err
		}
		_ = tree.SetProperty(tree.Root().ID(), "HA", strconv.Itoa(g.handicap))
	}
	g.tree = tree
	g.current = tree.Root().ID()
	g.logger.Debug("Game created", "size", size, "ruleset", g.rules.String(), "handicap", g.handicap)
	return g, nil
}

// FromTree wraps an existing tree, with the cursor at the end of its main line.
// Ruleset, komi and handicap options are ignored; the tree carries its own.
func FromTree(tree *gametree.Tree, opts ...Option) *Game {
	g := newGame(opts)
	g.tree = tree
	line := tree.MainLine()
	g.current = line[len(line)-1].ID()
	return g
}

// Load parses an SGF record and returns its first game.
func Load(text string, opts ...Option) (*Game, error) {
	games, err := LoadAll(text, opts...)
	if err != nil {
		return nil, err
	}
	return games[0], nil
}

// LoadAll parses every game of an SGF collection.
func LoadAll(text string, opts ...Option) ([]*Game, error) {
	base := newGame(opts)
	trees, err := sgf.Parse(text, sgf.WithRuleset(base.rules), sgf.WithLogger(base.logger))
	if err != nil {
		return nil, err
	}
	games := make([]*Game, len(trees))
	for i, t := range trees {
		games[i] = FromTree(t, opts...)
	}
	return games, nil
}

// Tree returns the underlying game tree.
func (g *Game) Tree() *gametree.Tree { return g.tree }

// Current returns the node under the cursor.
func (g *Game) Current() *gametree.Node {
	n, _ := g.tree.Node(g.current)
	return n
}

// Board returns the position at the cursor.
func (g *Game) Board() *board.Board { return g.Current().Board() }

// Size returns the board size.
func (g *Game) Size() int { return g.tree.Size() }

// Ruleset returns the rules of the game.
func (g *Game) Ruleset() domain.Ruleset { return g.tree.Ruleset() }

// PointAt returns the state of an intersection at the cursor.
func (g *Game) PointAt(c domain.Coord) (domain.Point, error) { return g.Board().PointAt(c) }

// Captures returns the stones captured by each player up to the cursor.
func (g *Game) Captures() domain.Captures { return g.Current().Captures() }

// ToMove returns the player whose turn it is at the cursor.
func (g *Game) ToMove() domain.Player {
	p, _ := g.tree.ToMove(g.current)
	return p
}

// MoveNumber counts the moves from the root to the cursor.
func (g *Game) MoveNumber() int {
	path, _ := g.tree.Path(g.current)
	n := 0
	for _, node := range path {
		if _, ok := node.Move(); ok {
			n++
		}
	}
	return n
}

// Phase reports whether play continues, the game is being scored, or it is over.
// A game is over after a resignation, or at the node a result was recorded
// for. Other lines of the same tree keep playing.
func (g *Game) Phase() domain.Phase {
	if g.Result() != "" {
		return domain.PhaseFinished
	}
	if scoring, _ := g.tree.InScoringPhase(g.current); scoring {
		return domain.PhaseScoring
	}
	return domain.PhasePlaying
}

// Result returns the result reached at the cursor, or "" while the game at
// the cursor is not over.
func (g *Game) Result() string {
	if mv, ok := g.Current().Move(); ok && mv.Kind == domain.KindResign {
		return rules.ResignationResult(mv.Player)
	}
	if id, ok := g.tree.ResultNode(); ok && id == g.current {
		return g.tree.Result()
	}
	return ""
}

// Position returns the rules-engine view of the cursor: board, ko state,
// consecutive passes and, under superko, the earlier boards of the line.
func (g *Game) Position() rules.Position {
	cur := g.Current()
	pos := rules.Position{Board: cur.Board(), Ko: cur.Ko(), Passes: cur.Passes()}
	if g.tree.Ruleset().Ko == domain.KoPositionalSuperko {
		path, _ := g.tree.Path(g.current)
		for _, n := range path[:len(path)-1] {
			pos.Previous = append(pos.Previous, n.Board())
		}
	}
	return pos
}

// LegalMoves lists the intersections where the player to move may play.
func (g *Game) LegalMoves() []domain.Coord {
	if g.Phase() == domain.PhaseFinished {
		return nil
	}
	return rules.LegalMoves(g.Position(), g.ToMove(), g.tree.Ruleset())
}

// IsLegal reports why playing at c would be rejected, or nil.
func (g *Game) IsLegal(c domain.Coord) error {
	if g.Phase() == domain.PhaseFinished {
		return domain.ErrGameOver
	}
	return rules.Check(g.Position(), domain.PlayAt(g.ToMove(), c), g.tree.Ruleset())
}

// MoveResult describes an accepted move.
type MoveResult struct {
	Node     domain.NodeID  `json:"node"`
	Move     domain.Move    `json:"move"`
	Captured []domain.Coord `json:"captured,omitempty"`
	Ko       domain.KoState `json:"ko"`
	Phase    domain.Phase   `json:"phase"`
	// Reused is true when the move followed an existing variation.
	Reused bool `json:"reused"`
}

// Play places a stone for the player to move.
func (g *Game) Play(c domain.Coord) (MoveResult, error) {
	return g.Apply(domain.PlayAt(g.ToMove(), c))
}

// Pass passes for the player to move.
func (g *Game) Pass() (MoveResult, error) {
	return g.Apply(domain.Pass(g.ToMove()))
}

// Resign resigns for the player to move.
func (g *Game) Resign() (MoveResult, error) {
	return g.Apply(domain.Resign(g.ToMove()))
}

// Apply submits an explicit move, which may be for either player. On success
// the cursor advances to the resulting node.
func (g *Game) Apply(mv domain.Move) (MoveResult, error) {
	before := g.Phase()
	if before == domain.PhaseFinished {
		return MoveResult{}, domain.ErrGameOver
	}

	size := g.tree.Len()
	node, out, err := g.tree.AppendMove(g.current, mv)
	if err != nil {
		g.logger.Debug("Move rejected", "move", mv.String(), "err", err)
		if g.hooks.OnIllegalMove != nil {
			g.hooks.OnIllegalMove(&domain.IllegalMoveEvent{
				EventBase: domain.NewEventBase(domain.EventIllegalMove),
				Move:      mv,
				Err:       err,
			})
		}
		return MoveResult{}, err
	}
	g.current = node.ID()
	if out.Resigned {
		if err := g.tree.SetResult(node.ID(), rules.ResignationResult(mv.Player)); err != nil {
			return MoveResult{}, err
		}
	}

	res := MoveResult{
		Node:     node.ID(),
		Move:     mv,
		Captured: out.Captured,
		Ko:       out.Ko,
		Phase:    g.Phase(),
		Reused:   g.tree.Len() == size,
	}
	if g.hooks.OnMove != nil {
		g.hooks.OnMove(&domain.MoveEvent{
			EventBase: domain.NewEventBase(domain.EventMove),
			NodeID:    node.ID(),
			Move:      mv,
			Captured:  len(out.Captured),
			Reused:    res.Reused,
		})
	}
	g.firePhase(before, res.Phase)
	return res, nil
}

func (g *Game) firePhase(from, to domain.Phase) {
	if from == to {
		return
	}
	g.logger.Debug("Phase changed", "from", from, "to", to)
	if g.hooks.OnPhase != nil {
		g.hooks.OnPhase(&domain.PhaseEvent{
			EventBase: domain.NewEventBase(domain.EventPhase),
			From:      from,
			To:        to,
		})
	}
}

// Back moves the cursor to the parent node.
func (g *Game) Back() error {
	parent, ok := g.Current().Parent()
	if !ok {
		return fmt.Errorf("%w: already at the root", domain.ErrNodeNotFound)
	}
	g.current = parent
	return nil
}

// Forward moves the cursor to the i-th child (0 is the main line).
func (g *Game) Forward(i int) error {
	child, err := g.tree.Child(g.current, i)
	if err != nil {
		return err
	}
	g.current = child.ID()
	return nil
}

// ToRoot moves the cursor to the root.
func (g *Game) ToRoot() {
	g.current = g.tree.Root().ID()
}

// ToEnd follows the first child from the cursor to a leaf.
func (g *Game) ToEnd() {
	for {
		child, err := g.tree.Child(g.current, 0)
		if err != nil {
			return
		}
		g.current = child.ID()
	}
}

// GoTo moves the cursor to any node of the tree.
func (g *Game) GoTo(id domain.NodeID) error {
	if _, err := g.tree.Node(id); err != nil {
		return err
	}
	g.current = id
	return nil
}

// Undo removes the current node and its variations and moves the cursor to
// the parent.
func (g *Game) Undo() error {
	_, err := g.Truncate(g.current)
	return err
}

// Truncate removes a node and its subtree. When the cursor was inside the
// removed subtree it moves to the removed node's parent.
func (g *Game) Truncate(id domain.NodeID) (int, error) {
	target, err := g.tree.Node(id)
	if err != nil {
		return 0, err
	}
	parent, _ := target.Parent()
	path, _ := g.tree.Path(g.current)
	inside := slices.ContainsFunc(path, func(n *gametree.Node) bool { return n.ID() == id })

	removed, err := g.tree.Truncate(id)
	if err != nil {
		return 0, err
	}
	if inside {
		g.current = parent
	}
	g.logger.Debug("Truncated", "node", id, "removed", removed)
	if g.hooks.OnTruncate != nil {
		g.hooks.OnTruncate(&domain.TruncateEvent{
			EventBase: domain.NewEventBase(domain.EventTruncate),
			NodeID:    id,
			Removed:   removed,
		})
	}
	return removed, nil
}

// Score counts the position at the cursor. The game must be in the scoring
// phase; the dead coordinates mark groups removed before counting.
func (g *Game) Score(dead ...domain.Coord) (rules.Score, error) {
	if g.Phase() == domain.PhasePlaying {
		return rules.Score{}, domain.ErrNotInScoringPhase
	}
	cur := g.Current()
	return rules.ComputeScore(cur.Board(), cur.Captures(), g.tree.Ruleset(), dead...)
}

// Finish scores the game and records the result on the tree.
func (g *Game) Finish(dead ...domain.Coord) (rules.Score, error) {
	if g.Phase() != domain.PhaseScoring {
		if g.Phase() == domain.PhaseFinished {
			return rules.Score{}, domain.ErrGameOver
		}
		return rules.Score{}, domain.ErrNotInScoringPhase
	}
	s, err := g.Score(dead...)
	if err != nil {
		return s, err
	}
	if err := g.tree.SetResult(g.current, s.Result()); err != nil {
		return s, err
	}
	g.firePhase(domain.PhaseScoring, domain.PhaseFinished)
	return s, nil
}

// Diff lists the intersections that differ between two nodes.
func (g *Game) Diff(from, to domain.NodeID) ([]domain.Change, error) {
	a, err := g.tree.Node(from)
	if err != nil {
		return nil, err
	}
	b, err := g.tree.Node(to)
	if err != nil {
		return nil, err
	}
	return board.Diff(a.Board(), b.Board())
}

// ExportSGF serializes the whole tree.
func (g *Game) ExportSGF() string {
	return sgf.Serialize(g.tree)
}
