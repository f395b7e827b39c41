package repoctx

import (
	"regexp"
	"strings"
)

// DiagramNode is a node declaration in a mermaid flowchart: id["Label"].
type DiagramNode struct {
	ID    string
	Label string
}

// DiagramEdge is a labeled directed edge: src -- "label" --> dst.
type DiagramEdge struct {
	From  string
	Label string
	To    string
}

// Diagram is the parsed structure of a mermaid flowchart. Nodes preserve
// declaration order; edges preserve source order.
type Diagram struct {
	Nodes []DiagramNode
	Edges []DiagramEdge
}

var (
	mermaidBlockPattern = regexp.MustCompile("(?s)```mermaid\n(.*?)```")
	diagramNodePattern  = regexp.MustCompile(`(\w+)\["(.+?)"\]`)
	diagramEdgePattern  = regexp.MustCompile(`(\w+)\s+--\s+"(.+?)"\s+-->\s+(\w+)`)
)

// ParseDiagram parses mermaid flowchart source into structured records.
// Unrecognized syntax is ignored rather than reported: a diagram that
// matches nothing parses to an empty Diagram. A re-declared node keeps its
// first position but takes the last label.
func ParseDiagram(src string) Diagram {
	var d Diagram
	index := make(map[string]int)
	for _, m := range diagramNodePattern.FindAllStringSubmatch(src, -1) {
		if i, ok := index[m[1]]; ok {
			d.Nodes[i].Label = m[2]
			continue
		}
		index[m[1]] = len(d.Nodes)
		d.Nodes = append(d.Nodes, DiagramNode{ID: m[1], Label: m[2]})
	}
	for _, m := range diagramEdgePattern.FindAllStringSubmatch(src, -1) {
		d.Edges = append(d.Edges, DiagramEdge{From: m[1], Label: m[2], To: m[3]})
	}
	return d
}

// Summary renders the diagram as an LLM-friendly bullet list. Each node lists
// its outgoing edges as "label:" entries; incoming edges appear as "label by:"
// entries unless the node already has an outgoing edge to that source under
// the same label.
func (d Diagram) Summary() string {
	labels := make(map[string]string, len(d.Nodes))
	for _, n := range d.Nodes {
		labels[n.ID] = n.Label
	}
	display := func(id string) string {
		if label, ok := labels[id]; ok {
			return label
		}
		return id
	}

	outgoing := make(map[string][]DiagramEdge)
	incoming := make(map[string][]DiagramEdge)
	for _, e := range d.Edges {
		outgoing[e.From] = append(outgoing[e.From], e)
		incoming[e.To] = append(incoming[e.To], e)
	}
	mirrored := func(from, to, label string) bool {
		for _, e := range outgoing[from] {
			if e.To == to && e.Label == label {
				return true
			}
		}
		return false
	}

	lines := []string{"**Core Components:**", ""}
	for _, n := range d.Nodes {
		lines = append(lines, "- "+n.Label)
		for _, e := range outgoing[n.ID] {
			lines = append(lines, "  "+e.Label+":", "  - "+display(e.To))
		}
		for _, e := range incoming[n.ID] {
			if mirrored(n.ID, e.From, e.Label) {
				continue
			}
			lines = append(lines, "  "+e.Label+" by:", "  - "+display(e.From))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// SummarizeMermaidBlocks replaces each fenced mermaid block in markdown with
// a bullet summary of its nodes and edges. Malformed diagram syntax yields an
// empty bullet list rather than failing the whole transform.
func SummarizeMermaidBlocks(markdown string) string {
	return mermaidBlockPattern.ReplaceAllStringFunc(markdown, func(block string) string {
		m := mermaidBlockPattern.FindStringSubmatch(block)
		return ParseDiagram(m[1]).Summary()
	})
}
