package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/polsim/internal/analysis"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

const (
	frameRate = 30
	maxSpeed  = 64
	scrubStep = 10
	barWidth  = 24
)

var ErrEmptyResult = errors.New("viz: result has no states")

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Playback replays a stored trajectory one grid point per frame, or speed
// points per frame once sped up.
type Playback struct {
	title    string
	result   *dynamo.Result
	portrait *analysis.Portrait

	head     int
	playing  bool
	speed    int
	selected int
	shares   bool
	theme    int
	help     bool

	width, height int
}

func NewPlayback(title string, result *dynamo.Result) (*Playback, error) {
	if result == nil || len(result.States) == 0 {
		return nil, ErrEmptyResult
	}
	return &Playback{
		title:    title,
		result:   result,
		portrait: analysis.SharePortrait(result, models.B, models.D),
		playing:  true,
		speed:    1,
		selected: models.B,
		width:    80,
		height:   24,
	}, nil
}

func (m *Playback) Init() tea.Cmd { return tick() }

func (m *Playback) last() int { return len(m.result.States) - 1 }

func (m *Playback) seek(i int) {
	m.head = max(0, min(i, m.last()))
}

func (m *Playback) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if !m.playing && m.head == m.last() {
				m.head = 0
			}
			m.playing = !m.playing
		case "r":
			m.head = 0
			m.playing = true
		case "[", "left":
			m.seek(m.head - scrubStep*m.speed)
		case "]", "right":
			m.seek(m.head + scrubStep*m.speed)
		case "home":
			m.seek(0)
		case "end":
			m.seek(m.last())
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-":
			m.speed = max(m.speed/2, 1)
		case "tab":
			m.selected = (m.selected + 1) % models.Dim
		case "shift+tab":
			m.selected = (m.selected + models.Dim - 1) % models.Dim
		case "s":
			m.shares = !m.shares
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.help = !m.help
		}

	case TickMsg:
		if m.playing {
			m.seek(m.head + m.speed)
			if m.head == m.last() {
				m.playing = false
			}
		}
		return m, tick()
	}

	return m, nil
}

// Head is the index of the grid point currently shown.
func (m *Playback) Head() int { return m.head }

func (m *Playback) Playing() bool { return m.playing }

func (m *Playback) Speed() int { return m.speed }

func (m *Playback) Selected() int { return m.selected }

func (m *Playback) View() string {
	theme := Themes[m.theme]
	x := m.result.States[m.head]
	t := m.result.Times[m.head]

	var b strings.Builder

	status := StatusPlaying.Render("▶ PLAYING")
	if !m.playing {
		status = StatusPaused.Render("⏸ PAUSED")
	}
	b.WriteString(Title.Render("polsim") + " " + Subtle.Render(m.title) + "  " + status + "\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n\n",
		MetricLabel.Render("t"), MetricValue.Render(fmt.Sprintf("%.2f", t)),
		MetricLabel.Render("step"), MetricValue.Render(fmt.Sprintf("%d/%d", m.head, m.last())),
		MetricLabel.Render("speed"), MetricValue.Render(fmt.Sprintf("%dx", m.speed)),
	))

	b.WriteString(m.renderCompartments(theme, x))
	b.WriteString("\n")

	graphWidth := max(20, min(m.width-12, 70))
	b.WriteString(m.renderSeries(graphWidth))
	b.WriteString("\n\n")

	portrait := RenderPortrait(m.portrait, m.head+1, 20, 6)
	b.WriteString(Panel.Render(MetricLabel.Render("B share vs D share") + "\n" + portrait))
	b.WriteString("\n")

	if m.help {
		b.WriteString(Separator(graphWidth) + "\n")
		b.WriteString(KeyHint.Render("space play/pause  r restart  [ ] scrub  home/end jump\n"))
		b.WriteString(KeyHint.Render("+/- speed  tab select compartment  s shares  t theme  q quit"))
	} else {
		b.WriteString(KeyHint.Render("? help  q quit"))
	}
	return b.String()
}

func (m *Playback) renderCompartments(theme Theme, x dynamo.State) string {
	shares := analysis.Shares(x)
	n1, n2 := analysis.Totals(x)

	rows := make([]string, 0, models.Dim+2)
	for i, name := range models.CompartmentNames {
		label := fmt.Sprintf(" %-3s", name)
		if i == m.selected {
			label = Selected.Render(fmt.Sprintf(">%-3s", name))
		}
		value := fmt.Sprintf("%14.0f", x[i])
		if m.shares {
			value = fmt.Sprintf("%13.2f%%", shares[i]*100)
		}
		rows = append(rows, fmt.Sprintf("%s %s %s",
			label, MetricValue.Render(value), ShareBar(shares[i], barWidth, theme.Compartment(i))))
		if i == models.C {
			rows = append(rows, MetricLabel.Render(fmt.Sprintf("  N1 %14.0f", n1)))
		}
	}
	rows = append(rows, MetricLabel.Render(fmt.Sprintf("  N2 %14.0f", n2)))
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Playback) renderSeries(width int) string {
	name := models.CompartmentNames[m.selected]
	history := make([]float64, 0, m.head+1)
	for _, x := range m.result.States[:m.head+1] {
		if m.shares {
			history = append(history, analysis.Shares(x)[m.selected])
		} else {
			history = append(history, x[m.selected])
		}
	}
	if len(history) == 1 {
		history = append(history, history[0])
	}

	caption := name
	if m.shares {
		caption += " share"
	}
	return asciigraph.Plot(history,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
