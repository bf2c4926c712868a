package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackjackptit/uncensored-models/pkg/console"
	"github.com/blackjackptit/uncensored-models/pkg/runner"
)

func runLoop(t *testing.T, r *fakeRunner, in *scriptedReader, opts ...Option) (*Loop, bool, string) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithTurnContext(noSignals)}, opts...)
	l := NewLoop("dolphin-llama3:8b", r, in, &out, opts...)
	restart := l.Run(context.Background())
	return l, restart, out.String()
}

func TestLoopSuccessfulTurnsAlternate(t *testing.T) {
	r := &fakeRunner{}
	inputs := []string{"one", "two", "three", "four"}
	l, restart, _ := runLoop(t, r, &scriptedReader{lines: inputs})

	assert.False(t, restart)
	history := l.History()
	require.Len(t, history, 2*len(inputs))
	for i, m := range history {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, m.Role)
			assert.Equal(t, inputs[i/2], m.Content)
		} else {
			assert.Equal(t, RoleAssistant, m.Role)
			assert.Equal(t, "ok", m.Content)
		}
	}
}

func TestLoopRendersFullHistoryEachTurn(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{
		{res: runner.Result{Stdout: "\nhello!\n"}},
		{res: runner.Result{Stdout: "fine"}},
	}}
	_, _, out := runLoop(t, r, &scriptedReader{lines: []string{"  hi ", "how are you"}})

	assert.Equal(t, []string{
		"User: hi\nAssistant: ",
		"User: hi\nAssistant: hello!\nUser: how are you\nAssistant: ",
	}, r.prompts())
	for _, c := range r.calls {
		assert.Equal(t, "dolphin-llama3:8b", c.model)
	}
	assert.Contains(t, out, "dolphin-llama3:8b:")
	assert.Contains(t, out, "hello!")
}

func TestLoopClearResetsHistory(t *testing.T) {
	r := &fakeRunner{}
	l, restart, out := runLoop(t, r, &scriptedReader{lines: []string{"a", "b", "/clear", "c"}})

	assert.False(t, restart)
	assert.Contains(t, out, "[Conversation history cleared]")
	require.Len(t, l.History(), 2)
	assert.Equal(t, "User: c\nAssistant: ", r.prompts()[2])
}

func TestLoopClearOnEmptyHistory(t *testing.T) {
	l, restart, _ := runLoop(t, &fakeRunner{}, &scriptedReader{lines: []string{"/clear", "/clear"}})
	assert.False(t, restart)
	assert.Empty(t, l.History())
}

func TestLoopSwitchModel(t *testing.T) {
	r := &fakeRunner{}
	in := &scriptedReader{lines: []string{"hello", "/models", "never read"}}
	l, restart, _ := runLoop(t, r, in)

	assert.True(t, restart)
	assert.Len(t, l.History(), 2)
	assert.Len(t, r.calls, 1)
	assert.Equal(t, []string{"never read"}, in.lines)
}

func TestLoopExitCaseInsensitive(t *testing.T) {
	for _, word := range []string{"exit", "EXIT", "Quit", "quit"} {
		t.Run(word, func(t *testing.T) {
			r := &fakeRunner{}
			in := &scriptedReader{lines: []string{"hi", word, "unreached"}}
			l, restart, out := runLoop(t, r, in)

			assert.False(t, restart)
			assert.Len(t, l.History(), 2)
			assert.Contains(t, out, "Goodbye!")
			assert.Equal(t, []string{"unreached"}, in.lines)
		})
	}
}

func TestLoopIgnoresBlankInput(t *testing.T) {
	r := &fakeRunner{}
	l, _, out := runLoop(t, r, &scriptedReader{lines: []string{"", "   ", "\t"}})

	assert.Empty(t, l.History())
	assert.Empty(t, r.calls)
	assert.NotContains(t, out, "Error")
}

func TestLoopFailedTurnKeepsUserMessage(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{
		{res: runner.Result{Stdout: "hello"}},
		{res: runner.Result{ExitCode: 1, Stderr: "Error: model 'x' not found\n"}},
		{res: runner.Result{Stdout: "fine"}},
	}}
	l, _, out := runLoop(t, r, &scriptedReader{lines: []string{"hi", "how are you", "still there?"}})

	assert.Contains(t, out, "model 'x' not found")
	assert.Equal(t, "User: hi\nAssistant: hello\nUser: how are you\nAssistant: ", r.prompts()[1])
	assert.Equal(t, "User: hi\nAssistant: hello\nUser: how are you\nUser: still there?\nAssistant: ", r.prompts()[2])
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "how are you"},
		{Role: RoleUser, Content: "still there?"},
		{Role: RoleAssistant, Content: "fine"},
	}, l.History())
}

func TestLoopFailedTurnLeavesUserMessageLast(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{res: runner.Result{ExitCode: 2}}}}
	l, restart, out := runLoop(t, r, &scriptedReader{lines: []string{"hi"}})

	assert.False(t, restart)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}}, l.History())
	assert.Contains(t, out, "exited with status 2")
}

func TestLoopRunnerErrorIsRecoverable(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{
		{res: runner.Result{ExitCode: -1}, err: fmt.Errorf("ollama run: %w after 1s", runner.ErrTimeout)},
	}}
	l, _, out := runLoop(t, r, &scriptedReader{lines: []string{"slow question", "again"}})

	assert.Contains(t, out, "command timed out")
	assert.Len(t, r.calls, 2)
	assert.Len(t, l.History(), 3)
}

func TestLoopRecoversFromPanic(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{panic: "boom"}}}
	l, restart, out := runLoop(t, r, &scriptedReader{lines: []string{"first", "second"}})

	assert.False(t, restart)
	assert.Contains(t, out, "boom")
	assert.Len(t, r.calls, 2)
	assert.Equal(t, "ok", l.History()[len(l.History())-1].Content)
}

func TestLoopInterruptTerminates(t *testing.T) {
	r := &fakeRunner{}
	l, restart, out := runLoop(t, r, &scriptedReader{lines: []string{"hi"}, end: console.ErrInterrupted})

	assert.False(t, restart)
	assert.Len(t, l.History(), 2)
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "Error")
}

func TestLoopReadFailureTerminatesWithMessage(t *testing.T) {
	_, restart, out := runLoop(t, &fakeRunner{}, &scriptedReader{end: errors.New("tty gone")})

	assert.False(t, restart)
	assert.Contains(t, out, "tty gone")
	assert.Contains(t, out, "Goodbye!")
}

func TestLoopCancelledContextTerminates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := &scriptedReader{lines: []string{"hi"}}
	l := NewLoop("m", &fakeRunner{}, in, nil, WithTurnContext(noSignals))

	assert.False(t, l.Run(ctx))
	assert.Zero(t, in.reads)
}

func TestLoopBannerNamesModel(t *testing.T) {
	_, _, out := runLoop(t, &fakeRunner{}, &scriptedReader{})
	assert.Contains(t, out, "Starting chat with dolphin-llama3:8b")
	assert.Contains(t, out, "'/models'")
}

func TestLoopBannerShowsSessionWhenVerbose(t *testing.T) {
	l, _, out := runLoop(t, &fakeRunner{}, &scriptedReader{}, WithLogger(nil, true))
	assert.Contains(t, out, "Session: "+l.id)

	l, _, out = runLoop(t, &fakeRunner{}, &scriptedReader{})
	assert.NotContains(t, out, "Session: "+l.id)
}

func TestLoopRendererAffectsOutputOnly(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{res: runner.Result{Stdout: "**bold**"}}}}
	upper := WithRenderer(strings.ToUpper)
	l, _, out := runLoop(t, r, &scriptedReader{lines: []string{"hi"}}, upper)

	assert.Contains(t, out, "**BOLD**")
	assert.Equal(t, "**bold**", l.History()[1].Content)
}
