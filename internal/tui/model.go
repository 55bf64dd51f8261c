package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sensordonut/sensordonut/internal/card"
	"github.com/sensordonut/sensordonut/internal/render"
	"github.com/sensordonut/sensordonut/internal/view"
	"github.com/sensordonut/sensordonut/pkg/types"
)

// Snapshotter supplies live entity values. *store.Store satisfies it.
type Snapshotter interface {
	Snapshot() types.Snapshot
}

// CardSource supplies the current card definition. *card.Holder satisfies it.
type CardSource interface {
	Load() *card.Card
}

// ReloadMsg tells the model the card definition changed.
type ReloadMsg struct{}

// updateMsg is delivered when the store reports a change.
type updateMsg struct{}

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(view.ErrorColor))

	historyTitleStyle = lipgloss.NewStyle().Bold(true)
)

// Model is the bubbletea model for the card view.
type Model struct {
	cards   CardSource
	states  Snapshotter
	updates <-chan struct{}
	now     func() time.Time

	width  int
	height int

	model       render.Model
	loaded      bool
	refreshedAt time.Time
	refreshes   int

	start       time.Time
	history     *history
	showHistory bool
	selected    int

	quitting bool
}

// New creates a Model. updates may be nil when no change feed is available.
func New(cards CardSource, states Snapshotter, updates <-chan struct{}) Model {
	m := Model{cards: cards, states: states, updates: updates, now: time.Now, history: newHistory()}
	m.start = m.now()
	return m.refresh()
}

// Init starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

// waitForUpdate blocks on the store channel and turns the next tick into a
// message. A closed or nil channel ends the subscription.
func waitForUpdate(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return updateMsg{}
	}
}

// Update handles key presses, window resizes and refresh triggers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m.refresh(), nil
		case "h":
			m.showHistory = !m.showHistory
		case "tab":
			if n := len(m.model.Items); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case updateMsg:
		return m.refresh(), waitForUpdate(m.updates)
	case ReloadMsg:
		return m.refresh(), nil
	}
	return m, nil
}

func (m Model) refresh() Model {
	c := m.cards.Load()
	if c == nil {
		m.loaded = false
		return m
	}
	m.model = render.Compute(*c, m.states.Snapshot())
	m.loaded = true
	m.refreshedAt = m.now()
	m.refreshes++
	m.history.record(m.model.Items, m.refreshedAt.Sub(m.start).Seconds())
	if m.selected >= len(m.model.Items) {
		m.selected = 0
	}
	return m
}

// View renders the card and a one-line status footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.loaded {
		body = view.Terminal(m.model, m.width)
		if m.showHistory {
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.historyView())
		}
	} else {
		body = emptyStyle.Render("no card loaded")
	}

	status := statusStyle.Render(fmt.Sprintf("q quit · r refresh · h history · tab next · updated %s",
		m.refreshedAt.Format("15:04:05")))
	return lipgloss.JoinVertical(lipgloss.Left, body, "", status)
}

// historyView charts the selected donut's recent fill.
func (m Model) historyView() string {
	if m.selected >= len(m.model.Items) {
		return ""
	}
	it := m.model.Items[m.selected]
	if it.Donut == nil {
		return emptyStyle.Render(it.Placeholder.Message)
	}
	d := it.Donut
	width := m.width
	if width <= 0 {
		width = 60
	}
	title := historyTitleStyle.Render(fmt.Sprintf("%s history (%s)", d.Name, d.ValueText))
	return lipgloss.JoinVertical(lipgloss.Left, title, chart(m.history.samples(d.Entity), width, chartHeight, d.Color))
}

// RenderModel returns the last computed card.
func (m Model) RenderModel() render.Model {
	return m.model
}
