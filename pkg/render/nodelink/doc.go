// Package nodelink renders loop dependency graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT format, then optionally render it to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Names: loop.StageNames()})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls labels and highlighting:
//
//   - Names: stage names used as vertex labels
//   - Handlers: handler names appended to labels when they differ
//   - Order: execution positions ("step: 1", "step: 2", ...)
//   - Unresolved: vertices drawn in red because a cycle blocks them
//
// # DOT Format
//
// [ToDOT] output is plain Graphviz DOT and can be piped to the dot tool.
// [RenderSVG] uses the embedded Graphviz from github.com/goccy/go-graphviz,
// so no system installation is needed.
package nodelink
