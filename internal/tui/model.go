package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FACorreiaa/go-typeahead/internal/typeahead"
)

// debounceInterval is the delay after the last keystroke before Source is called.
const debounceInterval = 150 * time.Millisecond

const maxVisible = 8

type state int

const (
	stateIdle state = iota
	stateLoading
	stateShown
	stateEmpty
	stateSelected
	stateCancelled
)

type suggestionsMsg struct {
	requestID uint64
	labels    []string
}

type debounceMsg struct {
	id uint64
}

// Model is the Bubble Tea model for one bound input field.
type Model struct {
	label string
	input textinput.Model
	opts  typeahead.Options
	ctx   context.Context

	state     state
	items     []string
	selection int
	// prefilled is set while the input still holds the initial value.
	prefilled bool

	requestID  uint64
	debounceID uint64
}

func newModel(ctx context.Context, label, initial string, opts typeahead.Options) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "start typing"
	in.SetValue(initial)
	in.Focus()
	return Model{
		label:     label,
		input:     in,
		opts:      opts,
		ctx:       ctx,
		selection: -1,
		prefilled: initial != "",
	}
}

// Text returns what the field currently shows.
func (m Model) Text() string {
	return m.input.Value()
}

// Selected reports whether the user picked a suggestion.
func (m Model) Selected() bool {
	return m.state == stateSelected
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil
		}
		return m, m.startFetch()
	case suggestionsMsg:
		return m.handleSuggestions(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.state = stateCancelled
		return m, tea.Quit

	case tea.KeyEnter:
		// An untouched initial value is already resolved; accept it as is.
		if m.prefilled {
			m.state = stateSelected
			return m, tea.Quit
		}
		if m.selection < 0 || m.selection >= len(m.items) {
			return m, nil
		}
		shown := m.opts.OnSelect(m.items[m.selection])
		m.input.SetValue(shown)
		m.state = stateSelected
		return m, tea.Quit

	case tea.KeyUp:
		if m.selection > 0 {
			m.selection--
		}
		return m, nil

	case tea.KeyDown:
		if m.selection < len(m.items)-1 {
			m.selection++
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.prefilled = false
	return m, tea.Batch(cmd, m.startDebounce())
}

// Only the newest request's labels are displayed.
func (m Model) handleSuggestions(msg suggestionsMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID || m.state == stateSelected || m.state == stateCancelled {
		return m, nil
	}
	m.items = msg.labels
	if len(m.items) == 0 {
		m.state = stateEmpty
		m.selection = -1
		return m, nil
	}
	m.state = stateShown
	if m.selection < 0 || m.selection >= len(m.items) {
		m.selection = 0
	}
	return m, nil
}

func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

func (m *Model) startFetch() tea.Cmd {
	m.requestID++
	m.state = stateLoading
	reqID := m.requestID
	query := m.input.Value()
	source := m.opts.Source
	ctx := m.ctx
	return func() tea.Msg {
		labels, err := source(ctx, query)
		if err != nil {
			labels = nil
		}
		return suggestionsMsg{requestID: reqID, labels: labels}
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" " + m.label + " "))
	b.WriteRune('\n')
	b.WriteString(m.input.View())
	b.WriteRune('\n')

	switch m.state {
	case stateLoading:
		b.WriteString(dimStyle.Render("Searching..."))
	case stateEmpty:
		b.WriteString(dimStyle.Render("No matches"))
	case stateShown:
		for i, item := range m.items {
			if i >= maxVisible {
				break
			}
			if i == m.selection {
				b.WriteString(selectedStyle.Render("> " + item))
			} else {
				b.WriteString(normalStyle.Render("  " + item))
			}
			b.WriteRune('\n')
		}
	}
	return b.String()
}
