package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/bodies"
	"github.com/litescript/ls-orrery/internal/scene"
)

// ringSteps is the number of points sampled per orbit ring.
const ringSteps = 360

// Options controls what is drawn.
type Options struct {
	ShowStars  bool
	ShowRings  bool
	ShowLabels bool
	Focus      int // Index of the focused body, -1 for none
}

// DefaultOptions draws everything with no focus.
func DefaultOptions() Options {
	return Options{ShowStars: true, ShowRings: true, ShowLabels: true, Focus: -1}
}

// renderer maps scene pixels to canvas cells.
type renderer struct {
	s      *scene.Scene
	c      *Canvas
	opts   Options
	scaleX float64 // cells per pixel, horizontal
	scaleY float64 // cells per pixel, vertical
}

// Render draws the scene into a cols x rows canvas. The scene's viewport
// is stretched over the canvas; the UI sizes the viewport so that one cell
// is one pixel wide and two pixels tall.
func Render(s *scene.Scene, cols, rows int, opts Options) *Canvas {
	c := NewCanvas(cols, rows)
	vp := s.Viewport()
	if cols == 0 || rows == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return c
	}

	r := renderer{
		s:      s,
		c:      c,
		opts:   opts,
		scaleX: float64(cols) / float64(vp.Width),
		scaleY: float64(rows) / float64(vp.Height),
	}

	if opts.ShowStars {
		r.drawStarfield()
	}
	if opts.ShowRings {
		r.drawRings()
	}
	r.drawBodies()
	if opts.ShowLabels {
		r.drawLabels()
	}
	return c
}

// toCell converts a pixel position to fractional cell coordinates.
func (r renderer) toCell(px, py float64) (float64, float64) {
	return px * r.scaleX, py * r.scaleY
}

// cellIndex returns the cell containing fractional coordinate v. Points
// just left of or above the canvas land on -1 and are clipped.
func cellIndex(v float64) int {
	return int(math.Floor(v))
}

// project maps a world point to fractional cell coordinates.
func (r renderer) project(p mgl64.Vec3) (cx, cy float64, ok bool) {
	ndc, ok := r.s.Camera.Project(p)
	if !ok || ndc.Z() > 1 {
		return 0, 0, false
	}
	px, py := scene.NDCToPixel(ndc, r.s.Viewport())
	cx, cy = r.toCell(px, py)
	return cx, cy, true
}

// drawStarfield places catalog stars on a shell around the camera so they
// stay fixed in the background as the camera orbits.
func (r renderer) drawStarfield() {
	cam := r.s.Camera
	shell := (cam.Near + cam.Far) / 2

	for _, star := range astro.DefaultStarCatalog().Stars {
		glyph := starGlyph(star.Mag)
		if glyph == ' ' {
			continue
		}
		cx, cy, ok := r.project(cam.Position.Add(star.Direction().Mul(shell)))
		if !ok {
			continue
		}
		r.c.SetIfEmpty(cellIndex(cx), cellIndex(cy), Cell{
			Rune: glyph,
			FG:   starColor(star.Mag).Hex(),
			Kind: CellStar,
		})
	}
}

// drawRings samples each orbit circle and plots the projected points.
func (r renderer) drawRings() {
	fg := ringColor.Hex()
	for _, radius := range r.s.Rings {
		for i := 0; i < ringSteps; i++ {
			theta := 2 * math.Pi * float64(i) / ringSteps
			cx, cy, ok := r.project(astro.OrbitPosition(radius, theta))
			if !ok {
				continue
			}
			r.c.SetIfEmpty(cellIndex(cx), cellIndex(cy), Cell{Rune: '·', FG: fg, Kind: CellRing})
		}
	}
}

// drawBodies paints bodies far to near so nearer bodies cover farther ones.
func (r renderer) drawBodies() {
	cam := r.s.Camera
	order := make([]int, len(r.s.Bodies))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cam.Depth(r.s.Bodies[order[a]].Position) > cam.Depth(r.s.Bodies[order[b]].Position)
	})

	for _, i := range order {
		r.drawBody(i)
	}
}

func (r renderer) drawBody(i int) {
	b := r.s.Bodies[i]
	cam := r.s.Camera

	cx, cy, ok := r.project(b.Position)
	if !ok {
		return
	}

	// Projected radius from a point on the sphere's silhouette
	ex, _, ok := r.project(b.Position.Add(cam.Right().Mul(b.MeshRadius)))
	if !ok {
		return
	}
	rx := math.Abs(ex - cx)
	ry := rx * r.scaleY / r.scaleX

	focused := i == r.opts.Focus
	light := r.lightingFor(b)

	if rx < 1 || ry < 0.75 {
		r.c.Set(cellIndex(cx), cellIndex(cy), Cell{
			Rune: bodyGlyph(b, focused),
			FG:   shadeSurface(b.Color, mgl64.Vec3{0, 0, 1}, light).Hex(),
			Bold: focused,
			Kind: CellBody,
		})
		return
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			u := (float64(x) + 0.5 - cx) / rx
			v := (float64(y) + 0.5 - cy) / ry
			d2 := u*u + v*v
			if d2 > 1 {
				continue
			}
			n := mgl64.Vec3{u, -v, math.Sqrt(1 - d2)}
			col := shadeSurface(b.Color, n, light)
			col = scale(col, bandFactor(math.Atan2(n.X(), n.Z())+b.Spin))
			r.c.Set(x, y, Cell{Rune: '█', FG: col.Hex(), Bold: focused, Kind: CellBody})
		}
	}
}

// lightingFor returns the lighting of a body. The sun is unlit; planets are
// lit by the ambient light and the point light at the sun.
func (r renderer) lightingFor(b *scene.Body) lighting {
	if b.Config.IsSun() {
		return lighting{unlit: true}
	}
	cam := r.s.Camera
	toLight := cam.ToView(r.s.Point.Position).Sub(cam.ToView(b.Position))
	if toLight.Len() > 0 {
		toLight = toLight.Normalize()
	}
	return lighting{
		ambient:   scale(r.s.Ambient.Color, r.s.Ambient.Intensity),
		intensity: r.s.Point.Intensity,
		lightDir:  toLight,
	}
}

// drawLabels centers each label horizontally on its body, one row above it
// so the body glyph stays visible. Labels behind the camera are skipped.
func (r renderer) drawLabels() {
	fg, bg := labelFG.Hex(), labelBG.Hex()

	for _, l := range r.s.Labels {
		if l.Behind {
			continue
		}
		text := l.Text
		focused := l.Body == r.opts.Focus
		if focused {
			text = "◄ " + text + " ►"
		}

		cx, cy := r.toCell(l.X, l.Y)
		row := int(math.Floor(cy)) - 1
		col := int(math.Round(cx)) - runewidth.StringWidth(text)/2

		for _, ch := range text {
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				continue
			}
			cell := Cell{Rune: ch, FG: fg, BG: bg, Bold: true, Kind: CellLabel}
			r.c.Set(col, row, cell)
			if w == 2 {
				cell.Rune = 0
				r.c.Set(col+1, row, cell)
			}
			col += w
		}
	}
}

// bodyGlyph selects the single-cell glyph for a body too small to fill cells.
func bodyGlyph(b *scene.Body, focused bool) rune {
	switch {
	case b.Config.IsSun():
		return '☉'
	case b.Config.Class == bodies.ClassGiant:
		if focused {
			return '◉'
		}
		return '○'
	default:
		if focused {
			return '●'
		}
		return '•'
	}
}
