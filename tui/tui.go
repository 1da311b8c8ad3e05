package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"assessrec/recommend"
)

const searchTimeout = 30 * time.Second

// Recommender is the engine surface the TUI needs.
type Recommender interface {
	Recommend(ctx context.Context, query string, topN int) (*recommend.Result, error)
}

type resultMsg struct {
	res *recommend.Result
	err error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noMatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model for the interactive recommender. Enter runs a
// query against the shared engine; results render underneath the input.
type Model struct {
	engine    Recommender
	input     textinput.Model
	spinner   spinner.Model
	topN      int
	modelName string
	size      int
	searching bool
	result    *recommend.Result
	err       error
	quitting  bool
}

func New(engine Recommender, topN int, modelName string, size int) Model {
	input := textinput.New()
	input.Placeholder = "job query or posting URL"
	input.Focus()
	input.Width = 70

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		engine:    engine,
		input:     input,
		spinner:   s,
		topN:      topN,
		modelName: modelName,
		size:      size,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.searching {
				return m, nil
			}
			m.searching = true
			m.result = nil
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.search(query))
		}

	case resultMsg:
		m.searching = false
		m.result = msg.res
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.searching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) search(query string) tea.Cmd {
	engine := m.engine
	topN := m.topN
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		res, err := engine.Recommend(ctx, query, topN)
		return resultMsg{res: res, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Assessment Recommender"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d assessments · %s · enter to search, esc to quit", m.size, m.modelName)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.spinner.View())
		b.WriteString(" finding matching assessments...\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(m.renderResult())
	}

	return b.String()
}

func (m Model) renderResult() string {
	if m.result.NoContent {
		return noMatchStyle.Render("no content could be extracted from that URL, nothing to recommend") + "\n"
	}
	if len(m.result.Recommendations) == 0 {
		return noMatchStyle.Render("no matching assessments found") + "\n"
	}

	var b strings.Builder
	for i, rec := range m.result.Recommendations {
		b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1,
			nameStyle.Render(rec.TestName),
			scoreStyle.Render(fmt.Sprintf("%d%% match (%.3f)", rec.MatchPercentage, rec.Similarity)),
		))
		b.WriteString(subtleStyle.Render("   " + rec.Link))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(fmt.Sprintf("   remote: %s · adaptive: %s · duration: %s · types: %s",
			rec.RemoteTesting, rec.AdaptiveIRT, rec.Duration, rec.TestTypes)))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(engine Recommender, topN int, modelName string, size int) error {
	_, err := tea.NewProgram(New(engine, topN, modelName, size)).Run()
	return err
}
