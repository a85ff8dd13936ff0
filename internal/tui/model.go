// Package tui is the terminal chat client for the stylist gateway.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xiaot623/stylist/internal/transcript"
)

const imageCommand = "/image"

// ChatSender is the gateway client used by the model.
type ChatSender interface {
	SendText(ctx context.Context, text string) (string, error)
	SendImage(ctx context.Context, path string) (string, error)
}

// Options configures the terminal client.
type Options struct {
	// Sanitize runs bot markup through an HTML sanitizer before rendering.
	Sanitize bool
	// Style is a glamour standard style name, or "auto".
	Style string
	// Logger receives transport failures. They never reach the transcript.
	Logger *slog.Logger
}

type (
	replyMsg struct {
		kind transcript.Kind
		text string
	}
	failedMsg struct {
		kind transcript.Kind
		err  error
	}
	tickMsg   time.Time
)

// Model is the bubbletea model of the chat client.
type Model struct {
	client   ChatSender
	state    transcript.State
	input    textinput.Model
	viewport viewport.Model
	renderer *botRenderer
	logger   *slog.Logger

	ready   bool
	ticking bool
}

// New creates the chat model.
func New(client ChatSender, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about an outfit, or /image <path> (Enter to send, Esc to quit)"
	ti.Focus()
	ti.CharLimit = 2000

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		client:   client,
		input:    ti,
		renderer: newBotRenderer(opts.Style, opts.Sanitize),
		logger:   logger,
	}
}

// State returns the transcript state.
func (m Model) State() transcript.State {
	return m.state
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		const inputHeight = 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.input.Width = msg.Width - 4
		if err := m.renderer.resize(msg.Width - 4); err != nil {
			m.logger.Warn("failed to build markdown renderer", "error", err)
		}
		m.refresh()

	case replyMsg:
		m.apply(transcript.ReplyReceived{Kind: msg.kind, Text: msg.text})
		m.syncInput()
		return m, nil

	case failedMsg:
		m.logger.Error("chat request failed", "kind", msg.kind, "error", msg.err)
		m.apply(transcript.RequestFailed{Kind: msg.kind, Err: msg.err})
		m.syncInput()
		return m, nil

	case tickMsg:
		if !m.state.Loading() {
			m.ticking = false
			return m, nil
		}
		m.apply(transcript.LoadingTick{})
		return m, tick()
	}

	var tiCmd, vpCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	if m.state.Input() != m.input.Value() {
		m.state = transcript.Reduce(m.state, transcript.InputChanged{Text: m.input.Value()})
	}
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, tiCmd, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	trimmed := strings.TrimSpace(value)

	var send tea.Cmd
	if path, ok := strings.CutPrefix(trimmed, imageCommand+" "); ok && strings.TrimSpace(path) != "" {
		path = strings.TrimSpace(path)
		m.apply(transcript.ImageSelected{Ref: path})
		// The command itself is not a draft.
		m.input.Reset()
		m.apply(transcript.InputChanged{Text: ""})
		send = m.sendImage(path)
	} else {
		if !transcript.Accepts(value) {
			return m, nil
		}
		m.apply(transcript.TextSubmitted{Text: value})
		send = m.sendText(value)
	}

	if m.ticking {
		return m, send
	}
	m.ticking = true
	return m, tea.Batch(send, tick())
}

func (m Model) sendText(text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := client.SendText(context.Background(), text)
		if err != nil {
			return failedMsg{kind: transcript.KindText, err: err}
		}
		return replyMsg{kind: transcript.KindText, text: reply}
	}
}

func (m Model) sendImage(path string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := client.SendImage(context.Background(), path)
		if err != nil {
			return failedMsg{kind: transcript.KindImage, err: fmt.Errorf("upload %s: %w", path, err)}
		}
		return replyMsg{kind: transcript.KindImage, text: reply}
	}
}

func tick() tea.Cmd {
	return tea.Tick(transcript.LoadingInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) apply(a transcript.Action) {
	m.state = transcript.Reduce(m.state, a)
	m.refresh()
}

// syncInput pushes a cleared draft back into the text field.
func (m *Model) syncInput() {
	if m.input.Value() != m.state.Input() {
		m.input.SetValue(m.state.Input())
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m Model) renderHistory() string {
	var b strings.Builder
	for _, msg := range m.state.Messages() {
		switch msg.Sender {
		case transcript.SenderUser:
			b.WriteString("You: " + msg.Text)
			if msg.ImageRef != "" {
				b.WriteString(" [" + msg.ImageRef + "]")
			}
		case transcript.SenderBot:
			b.WriteString("Stylist:\n" + m.renderer.render(msg.Text))
		}
		b.WriteString("\n\n")
	}
	if m.state.Loading() {
		b.WriteString("Stylist: " + m.state.Dots())
	}
	return b.String()
}

// View renders the transcript above the input line.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return fmt.Sprintf("%s\n\n%s", m.viewport.View(), m.input.View())
}

// Run starts the chat program on the alternate screen.
func Run(client ChatSender, opts Options) error {
	p := tea.NewProgram(New(client, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
