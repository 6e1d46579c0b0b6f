// Package io provides JSON export and import of loop dependency graphs.
//
// The JSON form carries the stage table alongside the edges so external
// tools can inspect a loop without parsing its TOML or YAML definition:
//
//	{
//	  "name": "game-loop",
//	  "player": {"x": 5, "y": 5},
//	  "nodes": [
//	    {"id": 0, "name": "input", "handler": "input", "step": 1},
//	    {"id": 1, "name": "render", "handler": "render", "step": 2}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1}
//	  ]
//	}
//
// Optional node fields:
//   - step: 1-based execution position, omitted when the graph has a cycle
//   - blocked: true for stages stuck behind a cycle
//
// Edges are written in insertion order. [ReadJSON] adds them back in the
// same order, so a round trip preserves the successor order the scheduler
// depends on.
package io
