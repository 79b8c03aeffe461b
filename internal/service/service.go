// Package service implements the stateless game operations shared by the
// HTTP and MCP adapters: every call rebuilds the game from the request.
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/internal/dto"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/sgf"
)

// ErrBadRequest marks errors caused by malformed input rather than by the rules.
var ErrBadRequest = errors.New("bad request")

// Service holds the options applied to every game it opens.
type Service struct {
	opts []goban.Option
}

// New creates a Service. The options (hooks, logger, default ruleset) are
// passed to every game.
func New(opts ...goban.Option) *Service {
	return &Service{opts: opts}
}

// Open builds the game a request refers to.
func (s *Service) Open(req dto.GameRequest) (*goban.Game, error) {
	opts := append([]goban.Option(nil), s.opts...)
	if req.Ruleset != "" {
		rs, err := domain.ParseRuleset(req.Ruleset)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		opts = append(opts, goban.WithRuleset(rs))
	}
	if req.Komi != nil {
		opts = append(opts, goban.WithKomi(*req.Komi))
	}

	if req.SGF == "" {
		size := req.Size
		if size == 0 {
			size = 19
		}
		g, err := goban.New(size, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return g, nil
	}
	g, err := goban.Load(req.SGF, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return g, nil
}

// Validate parses and replays a collection. It never fails: problems are
// reported in the response.
func (s *Service) Validate(req dto.ValidateRequest) dto.ValidateResponse {
	trees, err := sgf.Parse(req.SGF, sgf.WithStrict(req.Strict))
	if err != nil {
		resp := dto.ValidateResponse{Error: err.Error()}
		var syn *sgf.SyntaxError
		if errors.As(err, &syn) {
			resp.Line, resp.Column = syn.Line, syn.Column
		}
		return resp
	}
	resp := dto.ValidateResponse{Valid: true}
	for _, t := range trees {
		resp.Games = append(resp.Games, Summarize(goban.FromTree(t, s.opts...)))
	}
	return resp
}

// Summarize describes a game for listings.
func Summarize(g *goban.Game) dto.GameSummary {
	t := g.Tree()
	root := t.Root()
	sum := dto.GameSummary{
		Size:    t.Size(),
		Ruleset: t.Ruleset().String(),
		Komi:    t.Ruleset().Komi,
		Nodes:   t.Len(),
		Result:  t.Result(),
		ToMove:  g.ToMove().Name(),
		Phase:   string(g.Phase()),
		Comment: root.Comment(),
	}
	for _, n := range t.MainLine() {
		if _, ok := n.Move(); ok {
			sum.Moves++
		}
	}
	t.Walk(func(n *gametree.Node, _ int) bool {
		if len(n.Children()) > 1 {
			sum.Branches++
		}
		return true
	})
	if v, ok := root.Property("HA"); ok {
		sum.Handicap, _ = strconv.Atoi(v[0])
	}
	if v, ok := root.Property("PB"); ok {
		sum.BlackName = v[0]
	}
	if v, ok := root.Property("PW"); ok {
		sum.WhiteName = v[0]
	}
	return sum
}

// Play applies one move at the end of the main line.
func (s *Service) Play(req dto.PlayRequest) (dto.PlayResponse, error) {
	g, err := s.Open(req.GameRequest)
	if err != nil {
		return dto.PlayResponse{}, err
	}
	player := g.ToMove()
	if req.Player != "" {
		if player, err = domain.ParsePlayer(req.Player); err != nil {
			return dto.PlayResponse{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}
	mv, err := ParseMove(req.Move, player, g.Size())
	if err != nil {
		return dto.PlayResponse{}, err
	}

	res, err := g.Apply(mv)
	if err != nil {
		return dto.PlayResponse{}, err
	}
	resp := dto.PlayResponse{
		Position: Describe(g),
		Move:     FormatMove(mv),
		Captured: points(res.Captured),
		Reused:   res.Reused,
	}
	return resp, nil
}

// Legal lists the legal placements for the player to move.
func (s *Service) Legal(req dto.GameRequest) (dto.LegalResponse, error) {
	g, err := s.Open(req)
	if err != nil {
		return dto.LegalResponse{}, err
	}
	return dto.LegalResponse{
		ToMove: g.ToMove().Name(),
		Moves:  points(g.LegalMoves()),
	}, nil
}

// Score counts a game in the scoring phase.
func (s *Service) Score(req dto.ScoreRequest) (dto.ScoreResponse, error) {
	g, err := s.Open(req.GameRequest)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	dead := make([]domain.Coord, 0, len(req.Dead))
	for _, p := range req.Dead {
		c, err := sgf.DecodePoint(p, g.Size())
		if err != nil {
			return dto.ScoreResponse{}, fmt.Errorf("%w: dead stone %q: %w", ErrBadRequest, p, err)
		}
		dead = append(dead, c)
	}
	score, err := g.Score(dead...)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	return dto.ScoreResponse{Score: score, Result: score.Result()}, nil
}

// Describe renders the position at the cursor.
func Describe(g *goban.Game) dto.Position {
	caps := g.Captures()
	pos := dto.Position{
		SGF:        g.ExportSGF(),
		Board:      strings.Split(strings.TrimSuffix(g.Board().String(), "\n"), "\n"),
		ToMove:     g.ToMove().Name(),
		Phase:      string(g.Phase()),
		MoveNumber: g.MoveNumber(),
		Captures:   dto.Captures{Black: caps.Black, White: caps.White},
	}
	if ko := g.Current().Ko(); ko.Active {
		pos.Ko = sgf.EncodePoint(ko.Point)
	}
	return pos
}

// ParseMove reads an SGF point, "pass" or "resign" for player.
func ParseMove(s string, player domain.Player, size int) (domain.Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return domain.Move{}, fmt.Errorf("%w: move is required", ErrBadRequest)
	case "pass":
		return domain.Pass(player), nil
	case "resign":
		return domain.Resign(player), nil
	}
	c, err := sgf.DecodePoint(strings.TrimSpace(s), size)
	if err != nil {
		return domain.Move{}, fmt.Errorf("%w: move %q: %w", ErrBadRequest, s, err)
	}
	return domain.PlayAt(player, c), nil
}

// FormatMove is the inverse of ParseMove.
func FormatMove(mv domain.Move) string {
	switch mv.Kind {
	case domain.KindPass:
		return "pass"
	case domain.KindResign:
		return "resign"
	}
	return sgf.EncodePoint(mv.Coord)
}

func points(cs []domain.Coord) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = sgf.EncodePoint(c)
	}
	return out
}
