package sgf

import (
	"io"
	"strconv"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/rules"
)

// Serialize renders a tree as an SGF collection holding one game.
func Serialize(t *gametree.Tree) string {
	return WriteRaw([]*RawTree{Encode(t)})
}

// SerializeCollection renders several games into one collection.
func SerializeCollection(trees ...*gametree.Tree) string {
	raws := make([]*RawTree, len(trees))
	for i, t := range trees {
		raws[i] = Encode(t)
	}
	return WriteRaw(raws)
}

// Write serializes trees to w.
func Write(w io.Writer, trees ...*gametree.Tree) error {
	_, err := io.WriteString(w, SerializeCollection(trees...))
	return err
}

// Encode converts a tree into its syntactic form. The root carries FF, GM, CA,
// SZ, RU, KM and RE, followed by setup, comment and opaque properties. A node
// with several children emits each child as a variation.
func Encode(t *gametree.Tree) *RawTree {
	root := t.Root()
	rs := t.Ruleset()
	props := []gametree.Property{
		{Ident: "FF", Values: []string{"4"}},
		{Ident: "GM", Values: []string{"1"}},
		{Ident: "CA", Values: []string{"UTF-8"}},
		{Ident: "SZ", Values: []string{strconv.Itoa(t.Size())}},
		{Ident: "RU", Values: []string{rs.String()}},
		{Ident: "KM", Values: []string{strconv.FormatFloat(rs.Komi, 'f', -1, 64)}},
	}
	if r := mainLineResult(t); r != "" {
		props = append(props, gametree.Property{Ident: "RE", Values: []string{r}})
	}
	rootRaw := RawNode{Properties: append(props, nodeProperties(root)...)}

	rt := &RawTree{Nodes: []RawNode{rootRaw}}
	encodeLine(t, root, rt)
	return rt
}

// mainLineResult returns the recorded result when it was reached at the end of
// the main line. Root RE has no way to name another node.
func mainLineResult(t *gametree.Tree) string {
	id, ok := t.ResultNode()
	if !ok {
		return ""
	}
	line := t.MainLine()
	if line[len(line)-1].ID() != id {
		return ""
	}
	return t.Result()
}

// encodeLine appends single-child descendants of n to rt and opens a
// variation for each child at the first branch.
func encodeLine(t *gametree.Tree, n *gametree.Node, rt *RawTree) {
	for {
		children, _ := t.Children(n.ID())
		switch len(children) {
		case 0:
			return
		case 1:
			n = children[0]
			rt.Nodes = append(rt.Nodes, RawNode{Properties: nodeProperties(n)})
		default:
			for _, c := range children {
				v := &RawTree{Nodes: []RawNode{{Properties: nodeProperties(c)}}}
				encodeLine(t, c, v)
				rt.Variations = append(rt.Variations, v)
			}
			return
		}
	}
}

func nodeProperties(n *gametree.Node) []gametree.Property {
	var props []gametree.Property
	if mv, ok := n.Move(); ok {
		switch mv.Kind {
		case domain.KindPlay:
			props = append(props, gametree.Property{Ident: mv.Player.String(), Values: []string{EncodePoint(mv.Coord)}})
			if ko := n.Ko(); ko.Active {
				props = append(props, gametree.Property{Ident: "KO", Values: []string{EncodePoint(ko.Point)}})
			}
		case domain.KindPass:
			props = append(props, gametree.Property{Ident: mv.Player.String(), Values: []string{""}})
		case domain.KindResign:
			props = append(props, gametree.Property{Ident: "RE", Values: []string{rules.ResignationResult(mv.Player)}})
		}
	}
	setup := n.Setup()
	if len(setup.Black) > 0 {
		props = append(props, gametree.Property{Ident: "AB", Values: encodePointList(setup.Black)})
	}
	if len(setup.White) > 0 {
		props = append(props, gametree.Property{Ident: "AW", Values: encodePointList(setup.White)})
	}
	if len(setup.Empty) > 0 {
		props = append(props, gametree.Property{Ident: "AE", Values: encodePointList(setup.Empty)})
	}
	if n.HasComment() {
		props = append(props, gametree.Property{Ident: "C", Values: []string{n.Comment()}})
	}
	return append(props, n.Properties()...)
}
