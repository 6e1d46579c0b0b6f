// Package render groups the visual exports of a loop's dependency graph.
//
// The [nodelink] subpackage draws stages as boxes and dependencies as
// arrows, using Graphviz for layout.
package render
