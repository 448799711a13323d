// Package tui provides the interactive chat terminal interface, built on
// Bubble Tea. One session runs for the lifetime of the program, so
// follow-up questions keep their conversational context.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
)

// queryTimeout bounds one question round trip, including tool calls.
const queryTimeout = 2 * time.Minute

// answerMsg carries a completed query result back into the update loop.
type answerMsg struct {
	question string
	result   *driving.QueryResult
}

// errMsg carries a failed query.
type errMsg struct {
	err error
}

// entry is one rendered transcript block.
type entry struct {
	question string
	answer   string
	sources  []string
}

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	chat      driving.ChatService
	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	entries   []entry
	sessionID string
	status    string
	waiting   bool
	ready     bool
}

// New creates a chat model bound to a fresh session.
func New(chat driving.ChatService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the course materials"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		chat:      chat,
		input:     ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
		sessionID: chat.NewSession(),
		status:    "Ready. Type a question and press Enter.",
	}
}

// Run starts the chat interface and blocks until the user quits.
func Run(chat driving.ChatService) error {
	_, err := tea.NewProgram(New(chat), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, qh := inputStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.String() == "esc" {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			return m, tea.Batch(m.spinner.Tick, m.ask(question))
		}

	case answerMsg:
		m.waiting = false
		m.status = "Ready."
		m.entries = append(m.entries, entry{
			question: msg.question,
			answer:   msg.result.Answer,
			sources:  sourceLabels(msg.result),
		})
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case errMsg:
		m.waiting = false
		m.status = "Error: " + msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs one query off the update loop.
func (m Model) ask(question string) tea.Cmd {
	chat, sessionID := m.chat, m.sessionID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		result, err := chat.Query(ctx, question, sessionID)
		if err != nil {
			return errMsg{err: err}
		}
		return answerMsg{question: question, result: result}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("CourseChat")
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())

	status := statusStyle.Render(m.status)
	if m.waiting {
		status = m.spinner.View() + " " + status
	}

	return header + "\n" + transcript + "\n" + input + "\n" + status
}

// renderTranscript renders every exchange, newest last.
func (m Model) renderTranscript() string {
	if len(m.entries) == 0 {
		return "Ask a question about the indexed courses to get started."
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + e.question))
		b.WriteString("\n")
		b.WriteString(e.answer)
		if len(e.sources) > 0 {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render("Sources: " + strings.Join(e.sources, ", ")))
		}
	}
	return b.String()
}

func sourceLabels(result *driving.QueryResult) []string {
	labels := make([]string, 0, len(result.Sources))
	for _, src := range result.Sources {
		label := src.Label()
		if src.Link != "" {
			label = fmt.Sprintf("%s (%s)", label, src.Link)
		}
		labels = append(labels, label)
	}
	return labels
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
