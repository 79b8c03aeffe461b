package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/sgf"
)

// GraphOverlay marks a line of play on the graph.
type GraphOverlay struct {
	VisitedNodes []domain.NodeID
	CurrentNode  *domain.NodeID
}

// OverlayFor highlights the path from the root to current.
func OverlayFor(tree *gametree.Tree, current domain.NodeID) (*GraphOverlay, error) {
	path, err := tree.Path(current)
	if err != nil {
		return nil, err
	}
	o := &GraphOverlay{CurrentNode: &current}
	for _, n := range path {
		o.VisitedNodes = append(o.VisitedNodes, n.ID())
	}
	return o, nil
}

// GenerateMermaid produces a Mermaid flowchart of the variation tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Pass: [/Parallelogram/]
// - Resign: {{Hexagon}}
// - Setup without a move: [(Database)]
// - Stone: [Rectangle]
// The main line is drawn with solid arrows; alternatives branch off dotted.
func GenerateMermaid(tree *gametree.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	tree.Walk(func(n *gametree.Node, depth int) bool {
		id := nodeID(n.ID())
		opener, closer := "[", "]"
		label := nodeLabel(n, depth)

		mv, hasMove := n.Move()
		switch {
		case n.IsRoot():
			opener, closer = "((", "))"
			label = fmt.Sprintf("%dx%d %s", tree.Size(), tree.Size(), tree.Ruleset())
		case hasMove && mv.Kind == domain.KindPass:
			opener, closer = "[/", "/]"
		case hasMove && mv.Kind == domain.KindResign:
			opener, closer = "{{", "}}"
		case !hasMove:
			opener, closer = "[(", ")]"
		}
		if n.Comment() != "" {
			label += " *"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(label), closer))

		for i, child := range n.Children() {
			arrow := "-->"
			if i > 0 {
				arrow = "-.->"
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, nodeID(child)))
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.NodeID]bool)
		for _, id := range overlay.VisitedNodes {
			if seen[id] {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
		}
		if overlay.CurrentNode != nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(*overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func nodeID(id domain.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

// nodeLabel is "<depth>. <color> <point>", e.g. "3. B dd".
func nodeLabel(n *gametree.Node, depth int) string {
	mv, ok := n.Move()
	if !ok {
		return fmt.Sprintf("%d. setup", depth)
	}
	switch mv.Kind {
	case domain.KindPlay:
		return fmt.Sprintf("%d. %s %s", depth, mv.Player, sgf.EncodePoint(mv.Coord))
	default:
		return fmt.Sprintf("%d. %s %s", depth, mv.Player, mv.Kind)
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
