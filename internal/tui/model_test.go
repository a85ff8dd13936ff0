package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/stylist/internal/transcript"
)

type fakeSender struct {
	mu     sync.Mutex
	texts  []string
	images []string
	reply  string
	err    error
}

func (f *fakeSender) SendText(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return f.reply, f.err
}

func (f *fakeSender) SendImage(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, path)
	return f.reply, f.err
}

func newTestModel(t *testing.T, sender *fakeSender, logs *bytes.Buffer) Model {
	t.Helper()
	opts := Options{Style: "notty"}
	if logs != nil {
		opts.Logger = slog.New(slog.NewTextHandler(logs, nil))
	}
	m, _ := New(sender, opts).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(Model)
}

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

// sendResults runs cmd and returns the reply/failure messages it produces.
// Tick commands are left unresolved.
func sendResults(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	cmds := []tea.Cmd{cmd}
	var out []tea.Msg
	for len(cmds) > 0 {
		c := cmds[0]
		cmds = cmds[1:]
		if c == nil {
			continue
		}
		ch := make(chan tea.Msg, 1)
		go func() { ch <- c() }()
		select {
		case msg := <-ch:
			switch msg := msg.(type) {
			case tea.BatchMsg:
				cmds = append(cmds, msg...)
			case replyMsg, failedMsg:
				out = append(out, msg)
			}
		case <-time.After(100 * time.Millisecond):
		}
	}
	return out
}

func TestSubmitTextAndReceiveReply(t *testing.T) {
	sender := &fakeSender{reply: `Try loafers. <a target="_blank" href="https://shop.test/loafers">Loafers</a>`}
	m := typeText(newTestModel(t, sender, nil), "what shoes?")
	assert.Equal(t, "what shoes?", m.State().Input())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.Len(t, m.State().Messages(), 1)
	assert.True(t, m.State().Loading())

	msgs := sendResults(t, cmd)
	require.Len(t, msgs, 1)
	next, _ = m.Update(msgs[0])
	m = next.(Model)

	assert.Equal(t, []string{"what shoes?"}, sender.texts)
	require.Len(t, m.State().Messages(), 2)
	assert.Equal(t, transcript.SenderBot, m.State().Messages()[1].Sender)
	assert.False(t, m.State().Loading())
	assert.Empty(t, m.State().Input())
	assert.Contains(t, m.View(), "Loafers")
	assert.Contains(t, m.View(), "You: what shoes?")
}

func TestBlankEnterDoesNothing(t *testing.T) {
	sender := &fakeSender{}
	m := typeText(newTestModel(t, sender, nil), "   ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Empty(t, m.State().Messages())
}

func TestImageCommand(t *testing.T) {
	sender := &fakeSender{reply: "Nice jacket."}
	m := typeText(newTestModel(t, sender, nil), "/image /tmp/look.jpg")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.Len(t, m.State().Messages(), 1)
	assert.Equal(t, transcript.ImageMessageText, m.State().Messages()[0].Text)
	assert.Equal(t, "/tmp/look.jpg", m.State().Messages()[0].ImageRef)

	for _, msg := range sendResults(t, cmd) {
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	assert.Equal(t, []string{"/tmp/look.jpg"}, sender.images)
	assert.Len(t, m.State().Messages(), 2)
}

func TestFailureIsLoggedNotShown(t *testing.T) {
	var logs bytes.Buffer
	sender := &fakeSender{err: errors.New("connection refused")}
	m := typeText(newTestModel(t, sender, &logs), "hello")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	for _, msg := range sendResults(t, cmd) {
		next, _ = m.Update(msg)
		m = next.(Model)
	}

	assert.Len(t, m.State().Messages(), 1)
	assert.False(t, m.State().Loading())
	assert.Empty(t, m.State().Input())
	assert.NotContains(t, m.View(), "connection refused")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestTickAnimatesWhileLoading(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := typeText(newTestModel(t, sender, nil), "hi")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.Equal(t, ".", m.State().Dots())
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Stylist: .")

	next, _ = m.Update(replyMsg{kind: transcript.KindText, text: "ok"})
	m = next.(Model)
	next, cmd = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Empty(t, m.State().Dots())
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &fakeSender{}, nil)
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestTypingDuringImageUploadKeepsDraft(t *testing.T) {
	sender := &fakeSender{reply: "Nice jacket."}
	m := typeText(newTestModel(t, sender, nil), "/image /tmp/look.jpg")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Empty(t, m.State().Input())
	assert.Empty(t, m.input.Value())

	m = typeText(m, "what about shoes?")
	for _, msg := range sendResults(t, cmd) {
		next, _ = m.Update(msg)
		m = next.(Model)
	}

	assert.Len(t, m.State().Messages(), 2)
	assert.False(t, m.State().Loading())
	assert.Equal(t, "what about shoes?", m.State().Input())
	assert.Equal(t, "what about shoes?", m.input.Value())
}
