package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Label is a screen-space text overlay bound to one body.
type Label struct {
	Text string
	Body int // Index into Scene.Bodies

	// Pixel position of the label center
	X float64
	Y float64

	// Behind is set when the body is behind the camera and the label has
	// no meaningful screen position.
	Behind bool
}

// NDCToPixel maps normalized device coordinates in [-1, 1] to pixel
// coordinates with the origin at the top-left of the viewport.
func NDCToPixel(ndc mgl64.Vec3, vp Viewport) (x, y float64) {
	x = (ndc.X()*0.5 + 0.5) * float64(vp.Width)
	y = (-ndc.Y()*0.5 + 0.5) * float64(vp.Height)
	return x, y
}

// UpdateLabels reprojects every body position and moves its label.
func (s *Scene) UpdateLabels() {
	for _, l := range s.Labels {
		b := s.Bodies[l.Body]
		ndc, ok := s.Camera.Project(b.Position)
		l.Behind = !ok
		if !ok {
			continue
		}
		l.X, l.Y = NDCToPixel(ndc, s.viewport)
	}
}

// InViewport reports whether the label center falls inside the viewport.
func (l *Label) InViewport(vp Viewport) bool {
	if l.Behind {
		return false
	}
	return l.X >= 0 && l.X < float64(vp.Width) && l.Y >= 0 && l.Y < float64(vp.Height)
}
