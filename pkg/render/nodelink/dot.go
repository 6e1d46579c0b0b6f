package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/taskloop/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Names labels vertices by id. Vertices without a name are labelled
	// with their id.
	Names []string

	// Handlers, when set, adds each vertex's handler name to its label.
	Handlers []string

	// Order, when set, highlights the execution position of each vertex.
	Order []int

	// Unresolved vertices (stuck behind a cycle) are drawn in red.
	Unresolved []int
}

// ToDOT converts a dependency graph to Graphviz DOT format.
// Vertices are emitted in id order and edges in insertion order, so the
// same graph always produces the same text. Duplicate edges appear once per
// AddEdge call.
func ToDOT(g *dag.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	pos := dag.PosMap(opts.Order)
	blocked := make(map[int]bool, len(opts.Unresolved))
	for _, id := range opts.Unresolved {
		blocked[id] = true
	}

	for id := range g.VertexCount() {
		label := fmtLabel(id, opts, pos)
		attrs := fmtAttrs(label, blocked[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", vertexID(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", vertexID(e.From), vertexID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexID(id int) string { return "t" + strconv.Itoa(id) }

func fmtLabel(id int, opts Options, pos map[int]int) string {
	name := strconv.Itoa(id)
	if id < len(opts.Names) && opts.Names[id] != "" {
		name = opts.Names[id]
	}

	parts := []string{name}
	if id < len(opts.Handlers) && opts.Handlers[id] != "" && opts.Handlers[id] != name {
		parts = append(parts, "handler: "+opts.Handlers[id])
	}
	if p, ok := pos[id]; ok {
		parts = append(parts, fmt.Sprintf("step: %d", p+1))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(label string, blocked bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if blocked {
		attrs = append(attrs, "color=red", "fontcolor=red")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
