package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/litescript/ls-orrery/internal/astro"
)

// SnapshotExport is the JSON-serializable state of the scene at one frame.
type SnapshotExport struct {
	Elapsed  float64        `json:"elapsed_seconds"`
	Frames   uint64         `json:"frames"`
	Viewport ViewportExport `json:"viewport"`
	Camera   CameraExport   `json:"camera"`
	Bodies   []BodyExport   `json:"bodies"`
}

// ViewportExport is the viewport size in pixels.
type ViewportExport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CameraExport is a JSON-friendly camera pose.
type CameraExport struct {
	Position [3]float64 `json:"position"`
	Target   [3]float64 `json:"target"`
	FOV      float64    `json:"fov_deg"`
	Aspect   float64    `json:"aspect"`
	Distance float64    `json:"distance"`
}

// BodyExport is a body with its label.
type BodyExport struct {
	Name          string      `json:"name"`
	Kind          string      `json:"kind"`
	Color         string      `json:"color"`
	MeshRadius    float64     `json:"mesh_radius"`
	OrbitRadius   float64     `json:"orbit_radius"`
	RotationSpeed float64     `json:"rotation_speed"`
	OrbitSpeed    float64     `json:"orbit_speed"`
	Position      [3]float64  `json:"position"`
	SpinDeg       float64     `json:"spin_deg"`
	OrbitAngleDeg float64     `json:"orbit_angle_deg"`
	Label         LabelExport `json:"label"`
}

// LabelExport is a label's pixel position.
type LabelExport struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// Snapshot captures the current scene state.
func (s *Scene) Snapshot() *SnapshotExport {
	export := &SnapshotExport{
		Elapsed:  s.elapsed,
		Frames:   s.frames,
		Viewport: ViewportExport{Width: s.viewport.Width, Height: s.viewport.Height},
		Camera: CameraExport{
			Position: s.Camera.Position,
			Target:   s.Camera.Target,
			FOV:      s.Camera.FOV,
			Aspect:   s.Camera.Aspect,
			Distance: s.Camera.Distance(),
		},
	}

	for i, b := range s.Bodies {
		l := s.Labels[i]
		export.Bodies = append(export.Bodies, BodyExport{
			Name:          b.Name(),
			Kind:          string(b.Config.Kind),
			Color:         b.Color.Hex(),
			MeshRadius:    b.MeshRadius,
			OrbitRadius:   b.OrbitRadius,
			RotationSpeed: b.RotationSpeed,
			OrbitSpeed:    b.OrbitSpeed,
			Position:      b.Position,
			SpinDeg:       astro.RadToDeg(astro.NormalizeAngle(b.Spin)),
			OrbitAngleDeg: astro.RadToDeg(astro.NormalizeAngle(b.OrbitAngle)),
			Label: LabelExport{
				Text:    l.Text,
				X:       l.X,
				Y:       l.Y,
				Visible: l.InViewport(s.viewport),
			},
		})
	}

	return export
}

// WriteJSON writes the snapshot as indented JSON.
func (e *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a text table of body state.
func (e *SnapshotExport) WriteSummaryTable(w io.Writer) {
	fmt.Fprintf(w, "Orrery @ t=%.1fs (%d frames)\n", e.Elapsed, e.Frames)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(e.Bodies) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-10s %-7s %8s %8s %8s %8s %12s\n",
		"Body", "Kind", "Orbit", "Angle", "Spin", "X", "Label")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, b := range e.Bodies {
		label := "hidden"
		if b.Label.Visible {
			label = fmt.Sprintf("%.0f,%.0f", b.Label.X, b.Label.Y)
		}
		fmt.Fprintf(w, "%s %-7s %8.1f %7.1f° %7.1f° %8.1f %12s\n",
			runewidth.FillRight(truncateStr(b.Name, 10), 10),
			b.Kind,
			b.OrbitRadius,
			b.OrbitAngleDeg,
			b.SpinDeg,
			b.Position[0],
			label,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(e.Bodies))
}

// truncateStr shortens s to at most maxLen terminal columns, marking the cut
// with "..". Multi-byte and wide runes are never split.
func truncateStr(s string, maxLen int) string {
	if maxLen <= 2 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "..")
}
