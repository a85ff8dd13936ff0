// Package transcript holds the chat client's conversation state.
//
// State is a value; Reduce never modifies its argument, and a Message is
// never changed once appended.
package transcript

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoadingInterval is how often the pending placeholder advances one dot.
const LoadingInterval = 500 * time.Millisecond

// ImageMessageText is the user message shown for an uploaded photo.
const ImageMessageText = "Uploaded an image"

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Kind tells which user action started a request.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Message is one transcript entry. ImageRef is a local preview reference
// and is only set on image uploads.
type Message struct {
	ID       string
	Text     string
	Sender   Sender
	ImageRef string
}

// State is the client view: transcript, input field and pending requests.
type State struct {
	messages []Message
	input    string
	pending  int
	dots     int
}

// Messages returns the transcript in insertion order.
func (s State) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Input returns the current input field text.
func (s State) Input() string { return s.input }

// Pending returns the number of outstanding requests.
func (s State) Pending() int { return s.pending }

// Loading reports whether the placeholder should be shown.
func (s State) Loading() bool { return s.pending > 0 }

// Dots returns the placeholder text: "", ".", ".." or "...".
func (s State) Dots() string { return strings.Repeat(".", s.dots) }

// Action is an event applied with Reduce.
type Action interface {
	action()
}

// InputChanged replaces the input field text.
type InputChanged struct{ Text string }

// TextSubmitted sends Text. Blank text is ignored.
type TextSubmitted struct{ Text string }

// ImageSelected uploads the image at Ref.
type ImageSelected struct{ Ref string }

// ReplyReceived settles one request with the bot's reply.
type ReplyReceived struct {
	Kind Kind
	Text string
}

// RequestFailed settles one request without a reply.
type RequestFailed struct {
	Kind Kind
	Err  error
}

// LoadingTick advances the placeholder animation.
type LoadingTick struct{}

func (InputChanged) action()  {}
func (TextSubmitted) action() {}
func (ImageSelected) action() {}
func (ReplyReceived) action() {}
func (RequestFailed) action() {}
func (LoadingTick) action()   {}

// Accepts reports whether a submission of text would start a request.
func Accepts(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Reduce returns the state after applying a.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case InputChanged:
		s.input = a.Text
	case TextSubmitted:
		if !Accepts(a.Text) {
			return s
		}
		s.messages = appendMessage(s.messages, Message{ID: newID(), Text: a.Text, Sender: SenderUser})
		s.pending++
	case ImageSelected:
		s.messages = appendMessage(s.messages, Message{ID: newID(), Text: ImageMessageText, Sender: SenderUser, ImageRef: a.Ref})
		s.pending++
	case ReplyReceived:
		s.messages = appendMessage(s.messages, Message{ID: newID(), Text: a.Text, Sender: SenderBot})
		s = settle(s, a.Kind)
	case RequestFailed:
		s = settle(s, a.Kind)
	case LoadingTick:
		if s.pending > 0 {
			s.dots = (s.dots + 1) % 4
		}
	}
	return s
}

// settle ends one request. Only a text request clears the input; an image
// upload leaves whatever the user typed meanwhile.
func settle(s State, kind Kind) State {
	if s.pending > 0 {
		s.pending--
	}
	if s.pending == 0 {
		s.dots = 0
	}
	if kind == KindText {
		s.input = ""
	}
	return s
}

// appendMessage copies so earlier States keep their own backing array.
func appendMessage(msgs []Message, m Message) []Message {
	out := make([]Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}

func newID() string {
	return uuid.New().String()
}
