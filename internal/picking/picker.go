package picking

import (
	"sync/atomic"

	"github.com/Faultbox/raypick/pkg/geometry"
)

// Picker serves picks from the most recently published scene. Swap and the
// pick methods may be called from any goroutine; a pick always runs against
// one complete snapshot.
type Picker struct {
	scene atomic.Pointer[Scene]
}

// NewPicker returns a Picker serving scene, which may be nil.
func NewPicker(scene *Scene) *Picker {
	p := &Picker{}
	p.scene.Store(scene)
	return p
}

// Scene returns the current snapshot.
func (p *Picker) Scene() *Scene { return p.scene.Load() }

// Swap publishes scene and returns the previous snapshot.
func (p *Picker) Swap(scene *Scene) *Scene { return p.scene.Swap(scene) }

// Pick picks against the current snapshot.
func (p *Picker) Pick(r geometry.Ray) (Hit, bool) {
	s := p.scene.Load()
	if s == nil {
		return Hit{}, false
	}
	return s.Pick(r)
}

// PickAll picks every hit against the current snapshot.
func (p *Picker) PickAll(r geometry.Ray) []Hit {
	s := p.scene.Load()
	if s == nil {
		return nil
	}
	return s.PickAll(r)
}
