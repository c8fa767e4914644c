package scene

import (
	"github.com/Carmen-Shannon/oxy-marsh/engine/game_object"
	"github.com/Carmen-Shannon/oxy-marsh/engine/shape"
)

const (
	stalkSegments = 12
	stalkHeight   = 1.0
	stalkRadius   = 0.02
	headRadius    = 0.05
	headLength    = 0.3
	headLift      = 0.05
	headBottom    = 0.025
	headTop       = 0.3125
	tipLift       = 0.36
	tipRadius     = 0.01
	tipLength     = 0.25

	bodyRadius   = 0.025
	thoraxLength = 0.12
	segmentLen   = 0.05
	tailRadius   = 0.012
	eyeRadius    = 0.012
	wingLength   = 0.18
	wingWidth    = 0.05
)

// drawCattail places a stalk of swaying segments rooted one unit below the cattail, then bends the head
// and tip group about the root and again about the head.
func (s *scene) drawCattail(c game_object.Cattail) {
	sway := c.Sway()
	p := c.Position()
	st := s.stack

	st.With(func() {
		st.Translate(p[0], p[1], p[2])

		st.With(func() {
			st.Translate(0, -1, 0)
			st.With(func() {
				st.RotateX(270)
				st.Scale(2*stalkRadius, 2*stalkRadius, 0.03)
				s.draw(shape.BaseCap)
				s.draw(shape.BaseWall)
			})
			for i := range stalkSegments {
				bend := sway / stalkSegments * float32(i)
				st.With(func() {
					st.RotateX(270)
					st.RotateY(bend)
					st.Translate(0, 0, 0.99*stalkHeight/stalkSegments*float32(i))
					st.RotateY(bend)
					st.Scale(stalkRadius, stalkRadius, stalkHeight/stalkSegments)
					s.draw(shape.Stalk)
				})
			}
		})

		st.Translate(0, -1, 0)
		st.RotateZ(-sway)
		st.Translate(0, 1, 0)
		st.RotateZ(-sway)

		st.With(func() {
			st.RotateX(270)
			st.Scale(headRadius, headRadius, headLength)
			st.Translate(0, 0, headLift)
			s.draw(shape.HeadTube)
		})
		for _, y := range []float32{headBottom, headTop} {
			st.With(func() {
				st.Translate(0, y, 0)
				s.drawRound(shape.HeadCap, shape.HeadDisc, headRadius, func() { st.RotateZ(2 * sway) })
			})
		}

		st.With(func() {
			st.Translate(0, tipLift, 0)
			st.RotateX(270)
			st.Scale(tipRadius, tipRadius, tipLength)
			s.draw(shape.Tip)
			st.RotateX(180)
			s.draw(shape.HeadDisc)
		})
	})
}

// drawRound draws a sphere, or in low fidelity a disc billboarded to face the viewer.
// unwind undoes the rotations placed between the world pose and this draw; the billboard then undoes the
// world rotation itself.
func (s *scene) drawRound(sphere, disc string, radius float32, unwind func()) {
	if s.state.LowFidelity() {
		unwind()
		s.state.Billboard(s.stack)
		s.stack.Scale(radius, radius, 1)
		s.draw(disc)
		return
	}
	s.stack.Scale(radius, radius, radius)
	s.draw(sphere)
}

// drawDragonfly places the body along +Z after turning to the heading, the tail trailing behind along -Z.
// Right wings reuse the left wing geometry through a mirroring scale on X.
func (s *scene) drawDragonfly(d game_object.Dragonfly) {
	p := d.Position()
	st := s.stack

	st.With(func() {
		st.Translate(p[0], p[1], p[2])
		st.RotateY(d.Heading())

		st.With(func() {
			st.Scale(bodyRadius, bodyRadius, thoraxLength)
			s.draw(shape.Thorax)
		})

		unwind := func() { st.RotateY(-d.Heading()) }
		st.With(func() {
			st.Translate(0, 0, thoraxLength+bodyRadius/2)
			st.With(func() {
				s.drawRound(shape.DragonHead, shape.DragonDisc, bodyRadius, unwind)
			})
			for _, side := range []float32{-1, 1} {
				st.With(func() {
					st.Translate(side*bodyRadius*0.7, bodyRadius*0.4, bodyRadius*0.4)
					s.drawRound(shape.Eye, shape.EyeDisc, eyeRadius, unwind)
				})
			}
		})

		segments := d.Flight().TailSegments
		for i := range segments {
			taper := 1 - float32(i)/float32(2*segments)
			st.With(func() {
				st.Translate(0, 0, -segmentLen*float32(i+1))
				st.Scale(tailRadius*taper, tailRadius*taper, segmentLen)
				s.draw(shape.TailSegment)
			})
		}

		for _, w := range d.Wings() {
			s.drawWing(w)
		}
	})
}

func (s *scene) drawWing(w *game_object.Wing) {
	st := s.stack
	z := thoraxLength * 0.75
	sweep := float32(-8)
	if w.Position.Hind() {
		z = thoraxLength * 0.35
		sweep = 12
	}
	st.With(func() {
		st.Translate(0, bodyRadius*0.8, z)
		if w.Position.Mirrored() {
			st.Scale(-1, 1, 1)
		}
		st.RotateZ(w.Angle())
		st.RotateY(sweep)
		st.RotateX(90)
		st.Scale(wingLength, wingWidth, 1)
		s.draw(shape.WingBlade)
	})
}

// drawGrid lays the grid on the ground plane at the foot of the stalks.
func (s *scene) drawGrid() {
	s.stack.With(func() {
		s.stack.Translate(0, -1, 0)
		s.stack.RotateX(90)
		s.stack.Scale(1.2, 1.2, 1)
		s.draw(shape.GroundGrid)
	})
}

func (s *scene) drawPollen() {
	s.stack.With(func() {
		s.stack.Translate(0, -0.2, 0)
		s.stack.Scale(1, 0.6, 0.5)
		s.draw(shape.PollenCloud)
	})
}

// drawMarker draws the point of interest in screen space, outside the world pose.
func (s *scene) drawMarker(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	aspect := float32(h) / float32(w)
	px, py := s.state.PointOfInterest()
	s.stack.With(func() {
		s.stack.Scale(aspect, 1, 1)
		s.stack.Translate(px/aspect, py, 0)
		s.stack.With(func() {
			s.stack.Scale(0.03, 0.03, 0.03)
			s.draw(shape.Marker)
		})
		s.stack.Scale(0.045, 0.045, 0.045)
		s.draw(shape.MarkerRing)
	})
}
