package editor

import (
	"slices"
	"sync"

	"github.com/taigrr/bedeck/pkg/geom"
)

// Scene stores committed decorators. Entries are only ever appended, and
// readers receive copies, so a committed Decorator never changes.
type Scene struct {
	mu          sync.RWMutex
	cubes       []Decorator
	decorations []Decorator
}

// Snapshot is a copy of the scene for one frame.
type Snapshot struct {
	Cubes       []Decorator
	Decorations []Decorator
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends d to the cube list if it is a primitive and to the
// decoration list otherwise.
func (s *Scene) Add(d Decorator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.IsModel() {
		s.decorations = append(s.decorations, d)
		return
	}
	s.cubes = append(s.cubes, d)
}

// Cubes returns a copy of the placed cubes in commit order.
func (s *Scene) Cubes() []Decorator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cubes)
}

// Decorations returns a copy of the placed mesh decorations in commit order.
func (s *Scene) Decorations() []Decorator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.decorations)
}

// CubeBounds returns the picking boxes of every placed cube.
func (s *Scene) CubeBounds() []geom.AABB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	boxes := make([]geom.AABB, len(s.cubes))
	for i, c := range s.cubes {
		boxes[i] = c.Bounds
	}
	return boxes
}

// Counts returns the number of cubes and decorations.
func (s *Scene) Counts() (cubes, decorations int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cubes), len(s.decorations)
}

// Snapshot copies both lists under a single lock.
func (s *Scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Cubes:       slices.Clone(s.cubes),
		Decorations: slices.Clone(s.decorations),
	}
}
