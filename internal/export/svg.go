// Package export writes rendered animations to standalone files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/threebody/internal/viz"
)

// BodyColors are used in body order and wrap around.
var BodyColors = []string{"#3b82f6", "#d1d5db", "#f97316"}

// AnimationSVG renders every frame as circles that become visible at the
// frame's time and stay visible, reproducing the additive timeline
// without script.
func AnimationSVG(anim *viz.Animation) string {
	vp := anim.Viewport

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, vp.Width, vp.Height, vp.Width, vp.Height))

	for _, f := range anim.Frames {
		for _, m := range f.Markers {
			if !m.Visible {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" visibility="hidden"><set attributeName="visibility" to="visible" begin="%dms" fill="freeze"/></circle>
`, m.X, m.Y, m.Radius, BodyColors[m.Body%len(BodyColors)], f.At.Milliseconds()))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// TrajectorySVG draws each body's full path as a static polyline in the
// animation's viewport.
func TrajectorySVG(anim *viz.Animation) string {
	if len(anim.Frames) == 0 {
		return ""
	}
	vp := anim.Viewport

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, vp.Width, vp.Height, vp.Width, vp.Height))

	for b := range anim.Frames[0].Markers {
		var pts []string
		for _, f := range anim.Frames {
			m := f.Markers[b]
			if m.Visible {
				pts = append(pts, fmt.Sprintf("%.1f,%.1f", m.X, m.Y))
			}
		}
		if len(pts) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>
`, BodyColors[b%len(BodyColors)], strings.Join(pts, " ")))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes either the animated or the static rendering.
func WriteSVG(w io.Writer, anim *viz.Animation, animated bool) error {
	out := TrajectorySVG(anim)
	if animated {
		out = AnimationSVG(anim)
	}
	_, err := io.WriteString(w, out)
	return err
}
