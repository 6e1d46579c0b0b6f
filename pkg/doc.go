// Package pkg holds the taskloop libraries.
//
// A loop run flows through them in this order:
//
//	[config] (TOML or YAML loop definition)
//	   ↓
//	[dag] (dense integer graph, in-degree table)
//	   ↓
//	[scheduler] (Kahn's algorithm, LIFO ready-set, cycle detection)
//	   ↓
//	[gameloop] (stage handlers run against a shared player)
//
// [render/nodelink] and [io] export the same graph as DOT, SVG or JSON.
// [errors] and [observability] are shared by all of them.
package pkg
