// Package gameloop provides the stages of a toy game loop and the player
// state they share.
//
// The stages only print and move the player; the dependency order between
// them comes from a loop definition (see package config) and the
// scheduler, neither of which knows what the stages do.
package gameloop

import (
	"fmt"
	"io"
	"maps"
	"slices"

	apperrors "github.com/matzehuels/taskloop/pkg/errors"
	"github.com/matzehuels/taskloop/pkg/scheduler"
)

// Handler names accepted in loop definitions.
const (
	HandlerInput           = "input"
	HandlerUpdatePosition  = "update-position"
	HandlerCheckCollisions = "check-collisions"
	HandlerRender          = "render"
	HandlerNoop            = "noop"
)

// Player is the state every stage of one run reads and writes.
type Player struct {
	X int
	Y int
}

func (p Player) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Stages writes stage progress to Out. Step is how far input moves the
// player along X.
type Stages struct {
	Out  io.Writer
	Step int
}

// NewStages creates stages writing to w with the default step of 1.
func NewStages(w io.Writer) *Stages {
	return &Stages{Out: w, Step: 1}
}

// HandleInput moves the player Step units to the right.
func (s *Stages) HandleInput(p *Player) {
	fmt.Fprintln(s.Out, "Handling input...")
	p.X += s.Step
}

func (s *Stages) UpdatePosition(p *Player) {
	fmt.Fprintf(s.Out, "Updating player position to %s...\n", p)
}

func (s *Stages) CheckCollisions(p *Player) {
	fmt.Fprintf(s.Out, "Checking collisions at position %s...\n", p)
}

func (s *Stages) Render(p *Player) {
	fmt.Fprintf(s.Out, "Rendering player at position %s...\n", p)
}

func (s *Stages) registry() map[string]func(*Player) {
	return map[string]func(*Player){
		HandlerInput:           s.HandleInput,
		HandlerUpdatePosition:  s.UpdatePosition,
		HandlerCheckCollisions: s.CheckCollisions,
		HandlerRender:          s.Render,
		HandlerNoop:            func(*Player) {},
	}
}

// Handler returns the task registered under name.
func (s *Stages) Handler(name string) (scheduler.Task[*Player], bool) {
	fn, ok := s.registry()[name]
	if !ok {
		return nil, false
	}
	return scheduler.TaskFunc[*Player](fn), true
}

// Table resolves handler names, indexed by vertex id, into a task table.
// Returns an INVALID_CONFIG error naming the first unknown handler.
func (s *Stages) Table(handlers []string) (scheduler.Table[*Player], error) {
	tasks := make(scheduler.Table[*Player], len(handlers))
	for id, name := range handlers {
		t, ok := s.Handler(name)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig,
				"unknown handler %q for stage %d (known: %v)", name, id, HandlerNames())
		}
		tasks[id] = t
	}
	return tasks, nil
}

// HandlerNames returns every registered handler name, sorted.
func HandlerNames() []string {
	return slices.Sorted(maps.Keys((&Stages{}).registry()))
}
