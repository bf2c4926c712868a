package chat

import "strings"

// CommandKind classifies one line of user input.
type CommandKind int

const (
	CommandEmpty CommandKind = iota
	CommandMessage
	CommandExit
	CommandClear
	CommandSwitchModel
)

func (k CommandKind) String() string {
	switch k {
	case CommandEmpty:
		return "empty"
	case CommandMessage:
		return "message"
	case CommandExit:
		return "exit"
	case CommandClear:
		return "clear"
	case CommandSwitchModel:
		return "switch_model"
	default:
		return "unknown"
	}
}

// Command is a classified input line. Text is set for CommandMessage only.
type Command struct {
	Kind CommandKind
	Text string
}

// ParseCommand trims line and classifies it. "exit" and "quit" match
// case-insensitively; "/clear" and "/models" must match exactly. Anything
// else, including unknown slash commands, is a message for the model.
func ParseCommand(line string) Command {
	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return Command{Kind: CommandEmpty}
	case strings.EqualFold(input, "exit"), strings.EqualFold(input, "quit"):
		return Command{Kind: CommandExit}
	case input == "/clear":
		return Command{Kind: CommandClear}
	case input == "/models":
		return Command{Kind: CommandSwitchModel}
	default:
		return Command{Kind: CommandMessage, Text: input}
	}
}
