// Package tui implements the terminal chat interface to the assistant.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AnswerPort is the TUI-facing subset of the question-answering service.
type AnswerPort interface {
	Answer(ctx context.Context, query string) (string, error)
}

type turn struct {
	question string
	answer   string
	failed   bool
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	service  AnswerPort
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	summary  string
	status   string
	ready    bool
	waiting  bool
}

type answerMsg struct {
	question string
	answer   string
	err      error
}

// New creates a chat model. The summary line describes the indexed corpus.
func New(service AnswerPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Posez une question sur la CAN 2025 et appuyez sur Entrée"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Prêt. Posez votre question.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case answerMsg:
		m.waiting = false
		t := turn{question: msg.question, answer: msg.answer}
		if msg.err != nil {
			t.answer = msg.err.Error()
			t.failed = true
			m.status = "Erreur lors de la réponse."
		} else {
			m.status = "Prêt. Posez votre question."
		}
		m.turns = append(m.turns, t)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.input.SetValue("")
				m.waiting = true
				m.status = "Recherche en cours..."
				return m, askCmd(m.service, q)
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Assistant CAN 2025")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func askCmd(service AnswerPort, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := service.Answer(context.Background(), question)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return "Aucune question posée pour le moment."
	}
	parts := make([]string, 0, len(m.turns))
	for _, t := range m.turns {
		q := questionStyle.Render(fmt.Sprintf("Vous: %s", t.question))
		a := t.answer
		if t.failed {
			a = errorStyle.Render(a)
		}
		parts = append(parts, q+"\n"+a)
	}
	return strings.Join(parts, "\n\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
