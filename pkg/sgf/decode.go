package sgf

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/goban/internal/logging"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
)

// Option configures decoding.
type Option func(*decoder)

// WithStrict validates every move against the full ruleset of the record.
// By default ko is not enforced and suicide removes the group, so that
// historical records with unusual moves still load.
func WithStrict(strict bool) Option {
	return func(d *decoder) {
		d.strict = strict
	}
}

// WithRuleset sets the ruleset used when a record has no RU property.
func WithRuleset(rs domain.Ruleset) Option {
	return func(d *decoder) {
		d.rules = rs
	}
}

// WithLogger configures a logger for decode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *decoder) {
		d.logger = logger
	}
}

type decoder struct {
	strict bool
	rules  domain.Ruleset
	logger *slog.Logger
}

func newDecoder(opts []Option) *decoder {
	d := &decoder{rules: domain.DefaultRuleset(), logger: logging.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse decodes every game in an SGF collection.
// Syntax errors are returned as *SyntaxError.
func Parse(text string, opts ...Option) ([]*gametree.Tree, error) {
	raws, err := ParseRaw(text)
	if err != nil {
		return nil, err
	}
	d := newDecoder(opts)
	trees := make([]*gametree.Tree, 0, len(raws))
	for i, raw := range raws {
		t, err := d.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("sgf: game %d: %w", i+1, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// ParseOne decodes the first game of a collection.
func ParseOne(text string, opts ...Option) (*gametree.Tree, error) {
	trees, err := Parse(text, opts...)
	if err != nil {
		return nil, err
	}
	return trees[0], nil
}

// rootOnly lists the properties consumed by the tree itself rather than kept opaque.
var rootOnly = map[string]bool{"FF": true, "GM": true, "SZ": true, "CA": true, "RU": true, "KM": true, "RE": true}

func (d *decoder) decode(raw *RawTree) (*gametree.Tree, error) {
	root := raw.Nodes[0]

	if v, ok := root.Get("GM"); ok && strings.TrimSpace(v[0]) != "1" {
		return nil, fmt.Errorf("%w: GM[%s]", domain.ErrUnsupportedGame, v[0])
	}

	size := 19
	if v, ok := root.Get("SZ"); ok {
		cols, rows, rect := strings.Cut(strings.TrimSpace(v[0]), ":")
		if rect && rows != cols {
			return nil, fmt.Errorf("%w: rectangular board SZ[%s]", domain.ErrInvalidBoardSize, v[0])
		}
		n, err := strconv.Atoi(cols)
		if err != nil {
			return nil, fmt.Errorf("%w: SZ[%s]", domain.ErrInvalidBoardSize, v[0])
		}
		size = n
	}

	rs := d.rules
	if v, ok := root.Get("RU"); ok {
		parsed, err := domain.ParseRuleset(v[0])
		if err != nil {
			d.logger.Debug("Unrecognized ruleset, using defaults", "ru", v[0], "err", err)
			parsed = domain.DefaultRuleset()
			parsed.Name = v[0]
		}
		rs = parsed
	}
	if v, ok := root.Get("KM"); ok {
		komi, err := strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid komi KM[%s]", v[0])
		}
		rs.Komi = komi
	}

	tree, err := gametree.New(size, rs)
	if err != nil {
		return nil, err
	}
	spec, err := d.nodeSpec(root, size, true)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	rootID := tree.Root().ID()
	if err := tree.SetupRoot(spec.Setup); err != nil {
		return nil, err
	}
	if spec.Comment != nil {
		_ = tree.SetComment(rootID, *spec.Comment)
	}
	for _, p := range spec.Properties {
		_ = tree.SetProperty(rootID, p.Ident, p.Values...)
	}

	parent := rootID
	if spec.Move != nil {
		// The root never carries a move; a move found there becomes the first node.
		n, err := tree.AppendNode(rootID, gametree.NodeSpec{Move: spec.Move, Strict: spec.Strict})
		if err != nil {
			return nil, fmt.Errorf("root move: %w", err)
		}
		parent = n.ID()
	}

	if err := d.build(tree, parent, raw.Nodes[1:], raw.Variations, 1); err != nil {
		return nil, err
	}
	if v, ok := root.Get("RE"); ok && v[0] != "" {
		// A root result describes the game as recorded, which ends the main line.
		line := tree.MainLine()
		_ = tree.SetResult(line[len(line)-1].ID(), v[0])
	}
	d.logger.Debug("Decoded game", "size", size, "nodes", tree.Len(), "ruleset", rs.String())
	return tree, nil
}

func (d *decoder) build(tree *gametree.Tree, parent domain.NodeID, nodes []RawNode, variations []*RawTree, depth int) error {
	for _, rn := range nodes {
		spec, err := d.nodeSpec(rn, tree.Size(), false)
		if err != nil {
			return fmt.Errorf("move %d: %w", depth, err)
		}
		n, err := tree.AppendNode(parent, spec)
		if err != nil {
			return fmt.Errorf("move %d: %w", depth, err)
		}
		parent = n.ID()
		depth++
	}
	for _, v := range variations {
		if err := d.build(tree, parent, v.Nodes, v.Variations, depth); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) nodeSpec(rn RawNode, size int, isRoot bool) (gametree.NodeSpec, error) {
	spec := gametree.NodeSpec{Strict: d.strict}
	var result []string
	for _, prop := range rn.Properties {
		switch prop.Ident {
		case "B", "W":
			if spec.Move != nil {
				return spec, fmt.Errorf("node has more than one move")
			}
			player, _ := domain.ParsePlayer(prop.Ident)
			c, pass, err := decodeMove(prop.Values[0], size)
			if err != nil {
				return spec, err
			}
			mv := domain.PlayAt(player, c)
			if pass {
				mv = domain.Pass(player)
			}
			spec.Move = &mv
		case "AB", "AW", "AE":
			pts, err := decodePointList(prop.Values, size)
			if err != nil {
				return spec, fmt.Errorf("%s: %w", prop.Ident, err)
			}
			switch prop.Ident {
			case "AB":
				spec.Setup.Black = append(spec.Setup.Black, pts...)
			case "AW":
				spec.Setup.White = append(spec.Setup.White, pts...)
			default:
				spec.Setup.Empty = append(spec.Setup.Empty, pts...)
			}
		case "C":
			spec.Comment = &prop.Values[0]
		case "KO":
			// KO[] forces the move regardless of legality. A point value is the
			// ko marker this package writes, which replay derives again.
			if prop.Values[0] == "" {
				spec.Strict = false
			}
		case "RE":
			if !isRoot {
				result = prop.Values
			}
		default:
			if isRoot && rootOnly[prop.Ident] {
				continue
			}
			spec.Properties = append(spec.Properties, prop)
		}
	}
	if result != nil {
		if loser, ok := resignation(result[0]); ok && spec.Move == nil {
			mv := domain.Resign(loser)
			spec.Move = &mv
		} else {
			spec.Properties = append(spec.Properties, gametree.Property{Ident: "RE", Values: result})
		}
	}
	return spec, nil
}

// resignation recognizes "B+R" and "W+Resign" and returns the losing player.
func resignation(result string) (domain.Player, bool) {
	winner, how, ok := strings.Cut(strings.TrimSpace(result), "+")
	if !ok || (how != "R" && how != "Resign") {
		return 0, false
	}
	p, err := domain.ParsePlayer(winner)
	if err != nil {
		return 0, false
	}
	return p.Opponent(), true
}
