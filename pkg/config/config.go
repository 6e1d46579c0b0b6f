// Package config loads loop definitions: the stages of a loop, the handler
// each stage runs, the dependencies between stages and the player's start
// position.
//
// Definitions are TOML by default, YAML when the file extension is .yaml
// or .yml, and the graph JSON written by `taskloop graph --format json` when
// it is .json. Unknown keys are an error in every format. [Default] returns
// the built-in four-stage game loop, which is what the CLI runs when no file
// is given.
//
// Stage order defines vertex ids: the first stage is vertex 0.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/taskloop/pkg/dag"
	apperrors "github.com/matzehuels/taskloop/pkg/errors"
	"github.com/matzehuels/taskloop/pkg/gameloop"
	pkgio "github.com/matzehuels/taskloop/pkg/io"
	"github.com/matzehuels/taskloop/pkg/observability"
)

// Supported definition formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// defaultStep is how far the input stage moves the player when the
// definition does not say.
const defaultStep = 1

// Loop is a loop definition.
type Loop struct {
	Name         string       `toml:"name" yaml:"name"`
	Player       Player       `toml:"player" yaml:"player"`
	Stages       []Stage      `toml:"stages" yaml:"stages"`
	Dependencies []Dependency `toml:"dependencies" yaml:"dependencies"`
}

// Player is the start position and input step.
type Player struct {
	X    int  `toml:"x" yaml:"x"`
	Y    int  `toml:"y" yaml:"y"`
	Step *int `toml:"step" yaml:"step"` // nil means 1
}

// Stage binds a stage name to a handler. An empty Handler means the
// handler shares the stage's name.
type Stage struct {
	Name    string `toml:"name" yaml:"name"`
	Handler string `toml:"handler" yaml:"handler"`
}

// Dependency says From must run before To. Both are stage names.
type Dependency struct {
	From string `toml:"from" yaml:"from"`
	To   string `toml:"to" yaml:"to"`
}

// Default returns the built-in game loop:
// input → update → collide → render, player at (5, 5).
func Default() *Loop {
	return &Loop{
		Name:   "game-loop",
		Player: Player{X: 5, Y: 5},
		Stages: []Stage{
			{Name: "input", Handler: gameloop.HandlerInput},
			{Name: "update", Handler: gameloop.HandlerUpdatePosition},
			{Name: "collide", Handler: gameloop.HandlerCheckCollisions},
			{Name: "render", Handler: gameloop.HandlerRender},
		},
		Dependencies: []Dependency{
			{From: "input", To: "update"},
			{From: "update", To: "collide"},
			{From: "collide", To: "render"},
		},
	}
}

// Load reads, decodes and validates the definition at path.
// Returns a FILE_NOT_FOUND error if path does not exist and INVALID_CONFIG
// if the file cannot be decoded or fails validation.
func Load(ctx context.Context, path string) (*Loop, error) {
	if err := apperrors.ValidateConfigPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	l, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, err
	}
	observability.Loop().OnConfigLoaded(ctx, path, len(l.Stages))
	return l, nil
}

// FormatFor picks the decoder for path from its extension.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format string) (*Loop, error) {
	var l *Loop
	var err error
	switch format {
	case FormatTOML:
		l, err = decodeTOML(data)
	case FormatYAML:
		l, err = decodeYAML(data)
	case FormatJSON:
		l, err = decodeJSON(data)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode %s", format)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func decodeTOML(data []byte) (*Loop, error) {
	var l Loop
	md, err := toml.Decode(string(data), &l)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &l, nil
}

func decodeYAML(data []byte) (*Loop, error) {
	var l Loop
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &l, nil
}

// decodeJSON rebuilds a loop from an exported graph. Dependencies follow
// the edge order of the file, so the rebuilt graph has the same successor
// order.
func decodeJSON(data []byte) (*Loop, error) {
	g, s, err := pkgio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer g.Release()

	l := &Loop{Name: s.Loop, Stages: make([]Stage, len(s.Names))}
	for i, name := range s.Names {
		l.Stages[i] = Stage{Name: name, Handler: s.Handlers[i]}
	}
	for _, e := range g.Edges() {
		l.Dependencies = append(l.Dependencies, Dependency{From: s.Names[e.From], To: s.Names[e.To]})
	}
	if s.Player != nil {
		l.Player = Player{X: s.Player.X, Y: s.Player.Y, Step: s.Player.Step}
	}
	return l, nil
}

// Export returns the loop in the form decodeJSON reads back.
func (l *Loop) Export() pkgio.Stages {
	return pkgio.Stages{
		Loop:     l.Name,
		Player:   &pkgio.Player{X: l.Player.X, Y: l.Player.Y, Step: l.Player.Step},
		Names:    l.StageNames(),
		Handlers: l.Handlers(),
	}
}

// Validate checks stage names, handlers and dependency endpoints.
// Cycles are not rejected here; they are the scheduler's to report.
func (l *Loop) Validate() error {
	seen := make(map[string]bool, len(l.Stages))
	known := gameloop.HandlerNames()
	for i, s := range l.Stages {
		if err := apperrors.ValidateStageName(s.Name); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "stage %d", i)
		}
		if seen[s.Name] {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "duplicate stage %q", s.Name)
		}
		seen[s.Name] = true
		if h := s.handler(); !slices.Contains(known, h) {
			return apperrors.New(apperrors.ErrCodeInvalidConfig,
				"stage %q: unknown handler %q (known: %v)", s.Name, h, known)
		}
	}
	for _, d := range l.Dependencies {
		if !seen[d.From] {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "dependency %s -> %s: unknown stage %q", d.From, d.To, d.From)
		}
		if !seen[d.To] {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "dependency %s -> %s: unknown stage %q", d.From, d.To, d.To)
		}
	}
	if l.Player.Step != nil && *l.Player.Step < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "player step must not be negative")
	}
	return nil
}

func (s Stage) handler() string {
	if s.Handler == "" {
		return s.Name
	}
	return s.Handler
}

// StageNames returns stage names indexed by vertex id.
func (l *Loop) StageNames() []string {
	names := make([]string, len(l.Stages))
	for i, s := range l.Stages {
		names[i] = s.Name
	}
	return names
}

// Handlers returns handler names indexed by vertex id.
func (l *Loop) Handlers() []string {
	names := make([]string, len(l.Stages))
	for i, s := range l.Stages {
		names[i] = s.handler()
	}
	return names
}

// Step returns the configured input step, or 1 if unset.
func (l *Loop) Step() int {
	if l.Player.Step == nil {
		return defaultStep
	}
	return *l.Player.Step
}

// StartPlayer returns a fresh player at the configured start position.
func (l *Loop) StartPlayer() *gameloop.Player {
	return &gameloop.Player{X: l.Player.X, Y: l.Player.Y}
}

// Build creates the dependency graph: one vertex per stage and one edge per
// dependency, added in declaration order. The loop must be valid.
func (l *Loop) Build(ctx context.Context) (*dag.Graph, error) {
	g, err := dag.New(len(l.Stages))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "create graph")
	}
	index := make(map[string]int, len(l.Stages))
	for i, s := range l.Stages {
		index[s.Name] = i
	}
	for _, d := range l.Dependencies {
		from, okFrom := index[d.From]
		to, okTo := index[d.To]
		if !okFrom || !okTo {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "dependency %s -> %s: unknown stage", d.From, d.To)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeOutOfRange, err, "dependency %s -> %s", d.From, d.To)
		}
	}
	observability.Loop().OnGraphBuilt(ctx, g.VertexCount(), g.EdgeCount())
	return g, nil
}
