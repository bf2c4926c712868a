package chat

import "strings"

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label is the speaker tag used when rendering a transcript.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Message is one entry of the conversation.
type Message struct {
	Role    Role
	Content string
}

// History is the ordered transcript owned by a single Loop.
type History struct {
	messages []Message
}

// Append adds m to the end of the transcript.
func (h *History) Append(m Message) {
	h.messages = append(h.messages, m)
}

// Clear empties the transcript in place.
func (h *History) Clear() {
	clear(h.messages)
	h.messages = h.messages[:0]
}

// Len returns the number of messages.
func (h *History) Len() int {
	return len(h.messages)
}

// Messages returns a copy of the transcript.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Prompt renders the transcript for the model.
func (h *History) Prompt() string {
	return RenderPrompt(h.messages)
}

// RenderPrompt joins messages as "<Label>: <content>" lines and ends with an
// "Assistant: " cue without a trailing newline. Turns whose reply failed
// leave consecutive User lines; no empty Assistant line is synthesised.
func RenderPrompt(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(m.Role.Label())
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	b.WriteString(RoleAssistant.Label())
	b.WriteString(": ")
	return b.String()
}
