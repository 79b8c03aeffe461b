package board_test

import (
	"testing"

	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, 53} {
		_, err := board.New(size)
		assert.ErrorIs(t, err, domain.ErrInvalidBoardSize, "size %d", size)
	}
	b, err := board.New(19)
	require.NoError(t, err)
	assert.Equal(t, 19, b.Size())
	assert.Equal(t, 361, b.Count(domain.Empty))
}

func TestPointAt_OutOfBounds(t *testing.T) {
	b := board.MustNew(9)
	tests := []domain.Coord{{Row: -1, Col: 0}, {Row: 0, Col: 9}, {Row: 9, Col: 9}}
	for _, c := range tests {
		_, err := b.PointAt(c)
		assert.ErrorIs(t, err, domain.ErrOutOfBounds, "coord %s", c)
	}
	p, err := b.PointAt(domain.C(8, 8))
	require.NoError(t, err)
	assert.Equal(t, domain.Empty, p)
}

func TestWithStonePlaced_LeavesOriginalUntouched(t *testing.T) {
	b := board.MustNew(9)
	next, err := b.WithStonePlaced(domain.C(2, 2), domain.BlackStone)
	require.NoError(t, err)

	assert.Equal(t, domain.Empty, b.At(domain.C(2, 2)))
	assert.Equal(t, domain.BlackStone, next.At(domain.C(2, 2)))
	assert.NotEqual(t, b.Hash(), next.Hash())

	_, err = b.WithStonePlaced(domain.C(9, 0), domain.BlackStone)
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)
}

func TestGroupAt(t *testing.T) {
	b := board.MustParse(
		"XX...",
		"XO...",
		".O...",
		".....",
		"....X",
	)

	t.Run("Corner Group", func(t *testing.T) {
		g, err := b.GroupAt(domain.C(0, 0))
		require.NoError(t, err)
		assert.Equal(t, domain.Black, g.Color)
		assert.Equal(t, []domain.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}, g.Stones)
		assert.Equal(t, []domain.Coord{{Row: 0, Col: 2}, {Row: 2, Col: 0}}, g.Liberties)
		assert.Equal(t, 2, g.LibertyCount())
	})

	t.Run("Connected White", func(t *testing.T) {
		g, err := b.GroupAt(domain.C(2, 1))
		require.NoError(t, err)
		assert.Equal(t, domain.White, g.Color)
		assert.Len(t, g.Stones, 2)
		assert.True(t, g.Contains(domain.C(1, 1)))
		assert.Equal(t, 4, g.LibertyCount())
	})

	t.Run("Empty Point", func(t *testing.T) {
		g, err := b.GroupAt(domain.C(3, 3))
		require.NoError(t, err)
		assert.True(t, g.IsEmpty())
		assert.Zero(t, g.LibertyCount())
	})

	t.Run("Out Of Bounds", func(t *testing.T) {
		_, err := b.GroupAt(domain.C(5, 0))
		assert.ErrorIs(t, err, domain.ErrOutOfBounds)
	})
}

func TestGroups(t *testing.T) {
	b := board.MustParse(
		"X.O",
		"X.O",
		"..X",
	)
	groups := b.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, domain.Black, groups[0].Color)
	assert.Equal(t, domain.White, groups[1].Color)
	assert.Equal(t, []domain.Coord{{Row: 2, Col: 2}}, groups[2].Stones)
	assert.Equal(t, 1, groups[2].LibertyCount())
}

func TestRegions(t *testing.T) {
	b := board.MustParse(
		".X.O.",
		".X.O.",
		".X.O.",
		".X.O.",
		".X.O.",
	)
	regions := b.Regions()
	require.Len(t, regions, 3)

	owner, ok := regions[0].Owner()
	require.True(t, ok)
	assert.Equal(t, domain.Black, owner)
	assert.Len(t, regions[0].Points, 5)

	_, ok = regions[1].Owner()
	assert.False(t, ok, "middle column touches both colors")

	owner, ok = regions[2].Owner()
	require.True(t, ok)
	assert.Equal(t, domain.White, owner)

	empty := board.MustNew(3).Regions()
	require.Len(t, empty, 1)
	_, ok = empty[0].Owner()
	assert.False(t, ok)
}

func TestHash(t *testing.T) {
	empty := board.MustNew(9)
	assert.Zero(t, empty.Hash())

	a, _ := empty.WithStonePlaced(domain.C(0, 0), domain.BlackStone)
	a, _ = a.WithStonePlaced(domain.C(1, 1), domain.WhiteStone)

	b, _ := empty.WithStonePlaced(domain.C(1, 1), domain.WhiteStone)
	b, _ = b.WithStonePlaced(domain.C(0, 0), domain.BlackStone)

	assert.Equal(t, a.Hash(), b.Hash(), "hash is independent of placement order")
	assert.True(t, a.Equal(b))

	cleared := a.WithPointsCleared(domain.C(0, 0), domain.C(1, 1))
	assert.Zero(t, cleared.Hash())
	assert.True(t, cleared.Equal(empty))

	parsed := board.MustParse(
		"X........",
		".O.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	assert.Equal(t, a.Hash(), parsed.Hash())
}

func TestParseString_RoundTrip(t *testing.T) {
	rows := []string{"X.O", ".X.", "O.."}
	b := board.MustParse(rows...)
	assert.Equal(t, "X.O\n.X.\nO..\n", b.String())

	_, err := board.Parse("X.", "..", "...")
	assert.Error(t, err)
	_, err = board.Parse("X?", "..")
	assert.Error(t, err)
}

func TestWithSetup(t *testing.T) {
	b := board.MustParse("X..", "...", "..O")
	next, err := b.WithSetup(
		[]domain.Coord{{Row: 1, Col: 1}},
		[]domain.Coord{{Row: 0, Col: 2}},
		[]domain.Coord{{Row: 0, Col: 0}},
	)
	require.NoError(t, err)
	assert.Equal(t, "..O\n.X.\n..O\n", next.String())

	_, err = b.WithSetup([]domain.Coord{{Row: 3, Col: 3}}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)
}

func TestDiff(t *testing.T) {
	from := board.MustParse("X..", "...", "...")
	to := board.MustParse("...", ".O.", "...")

	changes, err := board.Diff(from, to)
	require.NoError(t, err)
	assert.Equal(t, []domain.Change{
		{Coord: domain.C(0, 0), From: domain.BlackStone, To: domain.Empty},
		{Coord: domain.C(1, 1), From: domain.Empty, To: domain.WhiteStone},
	}, changes)

	initial, err := board.Diff(nil, to)
	require.NoError(t, err)
	assert.Len(t, initial, 1)

	_, err = board.Diff(board.MustNew(9), to)
	assert.Error(t, err)
}

func TestStarPoints(t *testing.T) {
	assert.Len(t, board.StarPoints(19), 9)
	assert.Len(t, board.StarPoints(13), 5)
	assert.Equal(t, []domain.Coord{
		{Row: 2, Col: 2}, {Row: 2, Col: 6}, {Row: 4, Col: 4}, {Row: 6, Col: 2}, {Row: 6, Col: 6},
	}, board.StarPoints(9))
	assert.Empty(t, board.StarPoints(4))
}

func TestHandicapPoints(t *testing.T) {
	pts, err := board.HandicapPoints(19, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.Coord{{Row: 15, Col: 3}, {Row: 3, Col: 15}}, pts)

	pts, err = board.HandicapPoints(19, 9)
	require.NoError(t, err)
	assert.Len(t, pts, 9)
	assert.Contains(t, pts, domain.C(9, 9))

	_, err = board.HandicapPoints(19, 1)
	assert.Error(t, err)
	_, err = board.HandicapPoints(8, 5)
	assert.Error(t, err)

	pts, err = board.HandicapPoints(9, 0)
	require.NoError(t, err)
	assert.Empty(t, pts)
}
