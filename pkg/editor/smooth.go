package editor

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// ScrollSmoother turns discrete wheel clicks into a decaying stream of
// small deltas. Each axis carries a velocity that a critically damped
// spring pulls back to zero.
type ScrollSmoother struct {
	spring    harmonica.Spring
	frequency float64
	dt        float64

	axes [3]smoothAxis // orbit x, orbit y, zoom
}

type smoothAxis struct {
	vel, accel float64
}

// NewScrollSmoother creates a smoother stepped fps times per second.
// Higher frequency settles faster.
func NewScrollSmoother(fps int, frequency float64) *ScrollSmoother {
	return &ScrollSmoother{
		spring:    harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0),
		frequency: frequency,
		dt:        harmonica.FPS(fps),
	}
}

// Impulse queues a scroll delta. Over the following steps the emitted deltas
// add up to roughly the queued amount.
func (s *ScrollSmoother) Impulse(dx, dy float64, zoom bool) {
	// A critically damped decay from v0 travels 2*v0/frequency in total.
	k := s.frequency / 2
	if zoom {
		s.axes[2].vel += dy * k
		return
	}
	s.axes[0].vel += dx * k
	s.axes[1].vel += dy * k
}

// Step advances one frame and returns the orbit and zoom deltas to apply.
func (s *ScrollSmoother) Step() (dx, dy, zoom float64) {
	var out [3]float64
	for i := range s.axes {
		a := &s.axes[i]
		out[i] = a.vel * s.dt
		a.vel, a.accel = s.spring.Update(a.vel, a.accel, 0)
		if math.Abs(a.vel) < 1e-4 && math.Abs(a.accel) < 1e-3 {
			a.vel, a.accel = 0, 0
		}
	}
	return out[0], out[1], out[2]
}

// Idle reports whether no motion is pending.
func (s *ScrollSmoother) Idle() bool {
	for _, a := range s.axes {
		if a.vel != 0 || a.accel != 0 {
			return false
		}
	}
	return true
}
