package goban_test

import (
	"testing"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, size int, opts ...goban.Option) *goban.Game {
	t.Helper()
	g, err := goban.New(size, opts...)
	require.NoError(t, err)
	return g
}

func TestGame_BasicPlay(t *testing.T) {
	g := newGame(t, 9)

	res, err := g.Play(domain.C(2, 2))
	require.NoError(t, err)
	assert.Equal(t, domain.Black, res.Move.Player)
	assert.Equal(t, domain.PhasePlaying, res.Phase)

	_, err = g.Play(domain.C(2, 3))
	require.NoError(t, err)

	p, err := g.PointAt(domain.C(2, 3))
	require.NoError(t, err)
	assert.Equal(t, domain.WhiteStone, p)
	assert.Equal(t, domain.Black, g.ToMove())

	current := g.Current().ID()
	_, err = g.Play(domain.C(2, 3))
	assert.ErrorIs(t, err, domain.ErrOccupied)
	assert.Equal(t, current, g.Current().ID(), "rejected move does not move the cursor")
	assert.Equal(t, 2, g.MoveNumber())
}

func TestGame_CornerCapture(t *testing.T) {
	g := newGame(t, 9)
	for _, mv := range []domain.Move{
		domain.PlayAt(domain.White, domain.C(0, 0)),
		domain.PlayAt(domain.Black, domain.C(0, 1)),
	} {
		_, err := g.Apply(mv)
		require.NoError(t, err)
	}
	require.Equal(t, domain.White, g.ToMove())

	res, err := g.Apply(domain.PlayAt(domain.Black, domain.C(1, 0)))
	require.NoError(t, err)
	assert.Equal(t, []domain.Coord{{Row: 0, Col: 0}}, res.Captured)
	assert.Equal(t, 1, g.Captures().Black)
	p, _ := g.PointAt(domain.C(0, 0))
	assert.Equal(t, domain.Empty, p)
}

func TestGame_DoublePassEntersScoring(t *testing.T) {
	g := newGame(t, 9)
	_, err := g.Score()
	assert.ErrorIs(t, err, domain.ErrNotInScoringPhase)

	_, err = g.Pass()
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlaying, g.Phase())

	res, err := g.Pass()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseScoring, res.Phase)

	s, err := g.Score()
	require.NoError(t, err)
	assert.Equal(t, "W+7.5", s.Result())

	final, err := g.Finish()
	require.NoError(t, err)
	assert.Equal(t, s, final)
	assert.Equal(t, domain.PhaseFinished, g.Phase())
	assert.Equal(t, "W+7.5", g.Tree().Result())

	_, err = g.Pass()
	assert.ErrorIs(t, err, domain.ErrGameOver)
	_, err = g.Finish()
	assert.ErrorIs(t, err, domain.ErrGameOver)
}

func TestGame_PlayResumesAfterSinglePass(t *testing.T) {
	g := newGame(t, 9)
	_, err := g.Pass()
	require.NoError(t, err)
	_, err = g.Play(domain.C(4, 4))
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlaying, g.Phase(), "passes must be consecutive")
}

func TestGame_Resign(t *testing.T) {
	g := newGame(t, 9)
	_, err := g.Play(domain.C(4, 4))
	require.NoError(t, err)

	res, err := g.Resign()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinished, res.Phase)
	assert.Equal(t, "B+R", g.Tree().Result())
	assert.Empty(t, g.LegalMoves())
	assert.ErrorIs(t, g.IsLegal(domain.C(0, 0)), domain.ErrGameOver)

	_, err = g.Play(domain.C(0, 0))
	assert.ErrorIs(t, err, domain.ErrGameOver)
}

func TestGame_FinishAfterUndo(t *testing.T) {
	g := newGame(t, 9)
	_, err := g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Finish()
	require.NoError(t, err)
	assert.Equal(t, "W+7.5", g.Result())

	require.NoError(t, g.Undo())
	assert.Equal(t, domain.PhasePlaying, g.Phase())
	assert.Empty(t, g.Result())
	assert.Empty(t, g.Tree().Result())

	_, err = g.Play(domain.C(4, 4))
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	res, err := g.Pass()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseScoring, res.Phase)

	s, err := g.Finish()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinished, g.Phase())
	assert.Equal(t, s.Result(), g.Result())
	assert.Equal(t, s.Result(), g.Tree().Result())
}

func TestGame_FinishInAnotherLine(t *testing.T) {
	g := newGame(t, 9)
	first, err := g.Play(domain.C(2, 2))
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Finish()
	require.NoError(t, err)

	require.NoError(t, g.GoTo(first.Node))
	assert.Equal(t, domain.PhasePlaying, g.Phase())
	_, err = g.Play(domain.C(6, 6))
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseScoring, g.Phase())
	_, err = g.Finish()
	require.NoError(t, err)
}

func TestGame_ResignUndone(t *testing.T) {
	g := newGame(t, 9)
	_, err := g.Play(domain.C(4, 4))
	require.NoError(t, err)
	_, err = g.Resign()
	require.NoError(t, err)
	assert.Contains(t, g.ExportSGF(), "RE[B+R]")

	require.NoError(t, g.Undo())
	assert.Equal(t, domain.PhasePlaying, g.Phase())
	_, err = g.Play(domain.C(2, 2))
	require.NoError(t, err)
	assert.NotContains(t, g.ExportSGF(), "RE[")
}

func TestGame_LoadedResultOnlyEndsMainLine(t *testing.T) {
	g, err := goban.Load("(;SZ[9]RE[B+12.5];B[cc];W[gg];B[];W[])")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFinished, g.Phase())
	assert.Equal(t, "B+12.5", g.Result())
	_, err = g.Finish()
	assert.ErrorIs(t, err, domain.ErrGameOver)

	line := g.Tree().MainLine()
	require.NoError(t, g.GoTo(line[1].ID()))
	assert.Equal(t, domain.PhasePlaying, g.Phase())
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseScoring, g.Phase())

	s, err := g.Finish()
	require.NoError(t, err)
	assert.Equal(t, s.Result(), g.Result())
}

func TestGame_NavigationAndVariations(t *testing.T) {
	g := newGame(t, 9)
	first, err := g.Play(domain.C(2, 2))
	require.NoError(t, err)
	_, err = g.Play(domain.C(6, 6))
	require.NoError(t, err)

	require.NoError(t, g.Back())
	assert.Equal(t, first.Node, g.Current().ID())

	alt, err := g.Play(domain.C(2, 6))
	require.NoError(t, err)
	assert.False(t, alt.Reused)

	require.NoError(t, g.Back())
	same, err := g.Play(domain.C(6, 6))
	require.NoError(t, err)
	assert.True(t, same.Reused, "replaying the main line move follows the existing child")

	g.ToRoot()
	assert.Error(t, g.Back())
	g.ToEnd()
	assert.Equal(t, same.Node, g.Current().ID())

	require.NoError(t, g.GoTo(first.Node))
	require.NoError(t, g.Forward(1))
	assert.Equal(t, alt.Node, g.Current().ID())
	assert.ErrorIs(t, g.Forward(0), domain.ErrNodeNotFound)
	assert.ErrorIs(t, g.GoTo(999), domain.ErrNodeNotFound)

	changes, err := g.Diff(same.Node, alt.Node)
	require.NoError(t, err)
	assert.Len(t, changes, 2)
}

func TestGame_Undo(t *testing.T) {
	var truncated []int
	g := newGame(t, 9, goban.WithLifecycleHooks(domain.LifecycleHooks{
		OnTruncate: func(e *domain.TruncateEvent) { truncated = append(truncated, e.Removed) },
	}))
	first, err := g.Play(domain.C(2, 2))
	require.NoError(t, err)
	second, err := g.Play(domain.C(6, 6))
	require.NoError(t, err)

	require.NoError(t, g.Undo())
	assert.Equal(t, first.Node, g.Current().ID())
	assert.ErrorIs(t, g.GoTo(second.Node), domain.ErrNodeNotFound)

	g.ToRoot()
	assert.ErrorIs(t, g.Undo(), domain.ErrTruncateRoot)

	require.NoError(t, g.GoTo(first.Node))
	_, err = g.Play(domain.C(6, 6))
	require.NoError(t, err)
	g.ToRoot()
	removed, err := g.Truncate(first.Node)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, g.Tree().Root().ID(), g.Current().ID())
	assert.Equal(t, []int{1, 2}, truncated)
}

func TestGame_Hooks(t *testing.T) {
	var moves, illegal int
	var phases []domain.Phase
	g := newGame(t, 9, goban.WithLifecycleHooks(domain.LifecycleHooks{
		OnMove:        func(*domain.MoveEvent) { moves++ },
		OnIllegalMove: func(*domain.IllegalMoveEvent) { illegal++ },
		OnPhase:       func(e *domain.PhaseEvent) { phases = append(phases, e.To) },
	}))

	_, _ = g.Play(domain.C(0, 0))
	_, _ = g.Play(domain.C(0, 0))
	_, _ = g.Pass()
	_, _ = g.Pass()
	_, _ = g.Finish()

	assert.Equal(t, 3, moves)
	assert.Equal(t, 1, illegal)
	assert.Equal(t, []domain.Phase{domain.PhaseScoring, domain.PhaseFinished}, phases)
}

func TestGame_Handicap(t *testing.T) {
	g := newGame(t, 19, goban.WithHandicap(4), goban.WithKomi(0.5))
	assert.Equal(t, 4, g.Board().Count(domain.BlackStone))
	assert.Equal(t, domain.White, g.ToMove())
	assert.Equal(t, 0.5, g.Ruleset().Komi)

	sgfText := g.ExportSGF()
	assert.Contains(t, sgfText, "HA[4]")
	assert.Contains(t, sgfText, "AB[dp][pd][dd][pp]")

	_, err := goban.New(19, goban.WithHandicap(12))
	assert.Error(t, err)
}

func TestGame_LegalMoves(t *testing.T) {
	g := newGame(t, 5)
	assert.Len(t, g.LegalMoves(), 25)
	_, err := g.Play(domain.C(0, 1))
	require.NoError(t, err)
	_, err = g.Pass()
	require.NoError(t, err)
	_, err = g.Play(domain.C(1, 0))
	require.NoError(t, err)

	// White to move: the corner is suicide.
	legal := g.LegalMoves()
	assert.NotContains(t, legal, domain.C(0, 0))
	assert.Len(t, legal, 22)
	assert.ErrorIs(t, g.IsLegal(domain.C(0, 0)), domain.ErrSuicide)
}

func TestGame_SGFRoundTrip(t *testing.T) {
	g := newGame(t, 9, goban.WithRuleset(domain.TrompTaylor()))
	for _, c := range []domain.Coord{{Row: 2, Col: 2}, {Row: 6, Col: 6}, {Row: 2, Col: 6}} {
		_, err := g.Play(c)
		require.NoError(t, err)
	}
	require.NoError(t, g.Back())
	_, err := g.Play(domain.C(6, 2))
	require.NoError(t, err)

	text := g.ExportSGF()
	loaded, err := goban.Load(text)
	require.NoError(t, err)

	assert.Equal(t, text, loaded.ExportSGF())
	assert.Equal(t, domain.TrompTaylor(), loaded.Ruleset())
	assert.Equal(t, 3, loaded.MoveNumber(), "cursor starts at the end of the main line")
	assert.Equal(t, domain.White, loaded.ToMove())

	games, err := goban.LoadAll(text + text)
	require.NoError(t, err)
	assert.Len(t, games, 2)

	_, err = goban.Load("(;B[aa")
	assert.Error(t, err)
}

func TestGame_ScoreWithDeadStones(t *testing.T) {
	sgfText := "(;SZ[5]RU[Japanese]KM[0.5]AB[ba][bb][bc][bd][be]AW[da][db][dc][dd][de][aa];B[];W[])"
	g, err := goban.Load(sgfText)
	require.NoError(t, err)
	require.Equal(t, domain.PhaseScoring, g.Phase())

	s, err := g.Score(domain.C(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "B+0.5", s.Result())
	assert.Equal(t, domain.ScoringTerritory, s.Rule)
	assert.Equal(t, 1, s.BlackPrisoners)
	assert.Equal(t, 5, s.BlackTerritory)
	assert.Equal(t, 5, s.WhiteTerritory)
	assert.Equal(t, 5, s.Dame)

	_, err = g.Score(domain.C(9, 9))
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)
}
