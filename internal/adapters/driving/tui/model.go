// Package tui provides an interactive terminal UI for querying the
// recommender.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driving"
)

// Model is the Bubble Tea model for the recommender TUI.
type Model struct {
	recommender driving.Recommender
	input       textinput.Model
	viewport    viewport.Model
	results     []domain.Recommendation
	status      string
	cursor      int
	ready       bool
	lastQuery   string
}

// New creates a new TUI model instance.
func New(recommender driving.Recommender) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe the role and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		recommender: recommender,
		input:       ti,
		viewport:    vp,
		status:      fmt.Sprintf("Index loaded (model: %s). Type to search.", recommender.ModelName()),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				recs, err := m.recommender.Recommend(context.Background(), q, domain.RecommendOptions{TopK: domain.DefaultTopK})
				if err != nil {
					m.status = "Error: " + err.Error()
					m.results = nil
				} else {
					m.status = fmt.Sprintf("%d results for %q  (up/down to browse)", len(recs), q)
					m.results = recs
					m.cursor = 0
					m.lastQuery = q
				}
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("SHL Assessment Recommender")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := titleStyle.Render(fmt.Sprintf("%d/%d  %s", m.cursor+1, len(m.results), r.Assessment.Title))
	score := fmt.Sprintf("score=%.3f", r.Similarity)

	var meta []string
	if r.Assessment.Category != "" {
		meta = append(meta, "Category: "+r.Assessment.Category)
	}
	if r.Assessment.TestType != "" {
		meta = append(meta, "Type: "+r.Assessment.TestType)
	}
	if r.Assessment.DurationMin != "" {
		meta = append(meta, "Duration: "+r.Assessment.DurationMin+" min")
	}
	if r.Assessment.Level != "" {
		meta = append(meta, "Level: "+r.Assessment.Level)
	}

	lines := []string{title + "  " + score}
	if len(meta) > 0 {
		lines = append(lines, metaStyle.Render(strings.Join(meta, "  |  ")))
	}
	lines = append(lines, urlStyle.Render(r.Assessment.URL))
	if r.Assessment.Description != "" {
		lines = append(lines, "", r.Assessment.Description)
	}
	return strings.Join(lines, "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	urlStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true)
)
