// Package scene provides the actor update/draw loop shared by every game
// object. A Scene is a flat, ordered list of actors; it calls Update on each
// of them once per frame and Draw in the same order, so later actors paint
// over earlier ones.
package scene

import (
	"slices"

	"github.com/vovakirdan/game2048/internal/core"
)

// Renderable is anything that can paint itself.
type Renderable interface {
	Draw(dst core.Canvas)
}

// Actor is a Renderable that also advances with time.
// The scene passes itself so actors can add or remove siblings.
type Actor interface {
	Renderable
	Update(s *Scene, dt float64)
}

// Scene holds actors in insertion order. Actors are compared by identity,
// so they should be pointers.
type Scene struct {
	actors []Actor
}

// New creates a scene with the given actors.
func New(actors ...Actor) *Scene {
	s := &Scene{}
	for _, a := range actors {
		s.Add(a)
	}
	return s
}

// Add appends an actor. Adding an actor that is already present does nothing.
func (s *Scene) Add(a Actor) {
	if a == nil || s.Contains(a) {
		return
	}
	s.actors = append(s.actors, a)
}

// Remove drops an actor. It reports whether the actor was present.
func (s *Scene) Remove(a Actor) bool {
	i := slices.Index(s.actors, a)
	if i < 0 {
		return false
	}
	s.actors = slices.Delete(s.actors, i, i+1)
	return true
}

// Contains reports whether the actor is in the scene.
func (s *Scene) Contains(a Actor) bool {
	return slices.Contains(s.actors, a)
}

// Clear removes every actor.
func (s *Scene) Clear() {
	s.actors = nil
}

// Len returns the number of actors.
func (s *Scene) Len() int {
	return len(s.actors)
}

// Actors returns a copy of the actor list.
func (s *Scene) Actors() []Actor {
	return slices.Clone(s.actors)
}

// Advance runs one frame on a top-level scene.
func (s *Scene) Advance(dt float64) {
	s.Update(nil, dt)
}

// Update calls Update on every actor. Actors added or removed during the
// frame take effect on the next one. The parent is ignored; children receive
// this scene.
func (s *Scene) Update(_ *Scene, dt float64) {
	for _, a := range slices.Clone(s.actors) {
		a.Update(s, dt)
	}
}

// Draw paints every actor in insertion order.
func (s *Scene) Draw(dst core.Canvas) {
	for _, a := range s.actors {
		a.Draw(dst)
	}
}
