package viz

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/threebody/internal/dynamo"
)

var (
	ErrNoFrames      = errors.New("viz: no samples to render")
	ErrFrameDuration = errors.New("viz: frame duration must be positive")
)

// Renderer turns trajectory histories into timed draw instructions for a
// display area of Width x Height pixels.
type Renderer struct {
	Width, Height float64
	Radius        float64 // marker radius in pixels
	Margin        float64
	Bodies        int // how many leading bodies are drawn and bounded
}

// DefaultRenderer draws the primary and secondary on a 400x400 scene with
// 10 px markers.
func DefaultRenderer() Renderer {
	return Renderer{Width: 400, Height: 400, Radius: 10, Margin: 10, Bodies: 2}
}

// Marker is one body drawn in one frame. Non-finite positions are kept
// but not visible.
type Marker struct {
	Body    int
	X, Y    float64
	Radius  float64
	Visible bool
}

// Frame k is shown at (k+1)*frameDuration and adds its markers on top of
// everything drawn before.
type Frame struct {
	Index   int
	At      time.Duration
	Markers []Marker
}

type Animation struct {
	Viewport      Viewport
	FrameDuration time.Duration
	Frames        []Frame
}

// Plan lays out one frame per history index.
func (r Renderer) Plan(hist dynamo.Histories, frameDuration time.Duration) (*Animation, error) {
	if frameDuration <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrFrameDuration, frameDuration)
	}
	n := hist.Len()
	if n < 0 {
		return nil, dynamo.ErrHistoryMismatch
	}
	if n == 0 {
		return nil, ErrNoFrames
	}

	bodies := r.Bodies
	if bodies <= 0 || bodies > dynamo.NumBodies {
		bodies = 2
	}

	tracks := make([][]dynamo.Point2, bodies)
	for b := range tracks {
		tracks[b] = hist[b].XY()
	}

	anim := &Animation{
		Viewport:      FitViewport(tracks, r.Width, r.Height, r.Margin),
		FrameDuration: frameDuration,
		Frames:        make([]Frame, n),
	}

	for i := 0; i < n; i++ {
		f := Frame{
			Index:   i,
			At:      time.Duration(i+1) * frameDuration,
			Markers: make([]Marker, bodies),
		}
		for b, track := range tracks {
			x, y := anim.Viewport.Project(track[i])
			f.Markers[b] = Marker{
				Body:    b,
				X:       x,
				Y:       y,
				Radius:  r.Radius,
				Visible: finite(x) && finite(y),
			}
		}
		anim.Frames[i] = f
	}

	return anim, nil
}

// Duration is when the last frame appears.
func (a *Animation) Duration() time.Duration {
	if len(a.Frames) == 0 {
		return 0
	}
	return a.Frames[len(a.Frames)-1].At
}

// Timeline plays the frames once, in order.
func (a *Animation) Timeline() *Timeline {
	return &Timeline{frames: a.Frames}
}

// Timeline is a finite, indexable sequence of frames consumed by Next.
// There is no rewind; plan the animation again to replay it.
type Timeline struct {
	frames []Frame
	next   int
}

func (t *Timeline) Len() int { return len(t.frames) }

func (t *Timeline) At(i int) Frame { return t.frames[i] }

// Next returns the next unplayed frame.
func (t *Timeline) Next() (Frame, bool) {
	if t.next >= len(t.frames) {
		return Frame{}, false
	}
	f := t.frames[t.next]
	t.next++
	return f, true
}

func (t *Timeline) Played() int { return t.next }

func (t *Timeline) Done() bool { return t.next >= len(t.frames) }

// DrawFrame adds a frame's visible markers to the canvas.
func DrawFrame(c *Canvas, f Frame) {
	for _, m := range f.Markers {
		if m.Visible {
			c.FillCircle(m.X, m.Y, m.Radius)
		}
	}
}
