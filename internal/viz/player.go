package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TickMsg time.Time

// Player plays an animation into a terminal canvas, one frame per tick.
// Frames accumulate on the canvas; the timeline is consumed and cannot be
// rewound.
type Player struct {
	title        string
	names        []string
	timeline     *Timeline
	canvas       *Canvas
	frameDur     time.Duration
	last         Frame
	paused       bool
	done         bool
	quitWhenDone bool
}

// NewPlayer expects anim to have been planned for canvas.PixelSize().
func NewPlayer(title string, anim *Animation, canvas *Canvas, names []string) Player {
	return Player{
		title:    title,
		names:    names,
		timeline: anim.Timeline(),
		canvas:   canvas,
		frameDur: anim.FrameDuration,
	}
}

// QuitWhenDone exits the program after the last frame instead of waiting
// for a key.
func (p Player) QuitWhenDone() Player {
	p.quitWhenDone = true
	return p
}

func (p Player) tick() tea.Cmd {
	return tea.Tick(p.frameDur, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Init() tea.Cmd {
	return p.tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			p.paused = !p.paused
		}
	case TickMsg:
		if p.done {
			return p, nil
		}
		if !p.paused {
			f, ok := p.timeline.Next()
			if !ok {
				p.done = true
				if p.quitWhenDone {
					return p, tea.Quit
				}
				return p, nil
			}
			DrawFrame(p.canvas, f)
			p.last = f
		}
		return p, p.tick()
	}
	return p, nil
}

func (p Player) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(CanvasStyle.Render(strings.TrimSuffix(p.canvas.String(), "\n")))
	b.WriteString("\n")

	status := StatusRunning.Render("playing")
	switch {
	case p.done:
		status = StatusDone.Render("done")
	case p.paused:
		status = StatusPaused.Render("paused")
	}

	total := p.timeline.Len()
	frac := 0.0
	if total > 0 {
		frac = float64(p.timeline.Played()) / float64(total)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		status, "  ",
		MetricLabel.Render("frame "),
		MetricValue.Render(fmt.Sprintf("%d/%d", p.timeline.Played(), total)), "  ",
		MetricLabel.Render("t "),
		MetricValue.Render(p.last.At.String()), "  ",
		ProgressBar(frac, 20),
	))
	b.WriteString("\n")

	if len(p.names) > 0 {
		b.WriteString(Subtle.Render("bodies: " + strings.Join(p.names, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(KeyHint.Render("space pause • q quit"))

	return b.String()
}

// Play runs the player until the user quits or, with QuitWhenDone, the
// last frame is drawn.
func Play(p Player) error {
	_, err := tea.NewProgram(p).Run()
	return err
}
