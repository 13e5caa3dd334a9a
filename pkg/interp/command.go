package interp

import (
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// CommandType classifies a line of player input. Classification happens
// once, up front; the interpreter dispatches on the variant.
type CommandType string

const (
	CmdMove      CommandType = "move"
	CmdTake      CommandType = "take"
	CmdDrop      CommandType = "drop"
	CmdInventory CommandType = "inventory"
	CmdLook      CommandType = "look"
	CmdCommands  CommandType = "commands"
	CmdHelp      CommandType = "help"
	CmdQuit      CommandType = "quit"
	CmdForced    CommandType = "forced" // synthetic continuation of a forced move
	CmdNone      CommandType = ""       // unrecognized
)

// Command is a classified line of input.
type Command struct {
	Type      CommandType
	Direction world.Direction // for CmdMove
	Object    string          // for CmdTake / CmdDrop
}

// parseCommand tokenizes and classifies raw input. The vocabulary is
// case-insensitive. Bare "I" and "O" are ambiguous between movement and
// INVENTORY; they resolve as movement when the current room has a
// matching passage, and fall back to the action otherwise.
func parseCommand(input string, room *world.Room) Command {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return Command{Type: CmdNone}
	}

	verb := strings.ToUpper(fields[0])
	rest := strings.Join(fields[1:], " ")

	if len(fields) == 1 {
		switch verb {
		case "FORCED":
			return Command{Type: CmdForced}
		case "I", "O":
			if d, ok := world.ParseDirection(verb); ok {
				if _, has := room.PassageTo(d); has {
					return Command{Type: CmdMove, Direction: d}
				}
			}
			if verb == "I" {
				return Command{Type: CmdInventory}
			}
			return Command{Type: CmdMove, Direction: world.Out}
		}
		if d, ok := world.ParseDirection(verb); ok {
			return Command{Type: CmdMove, Direction: d}
		}
		switch verb {
		case "INVENTORY":
			return Command{Type: CmdInventory}
		case "LOOK", "L":
			return Command{Type: CmdLook}
		case "COMMANDS", "C":
			return Command{Type: CmdCommands}
		case "HELP", "H":
			return Command{Type: CmdHelp}
		case "QUIT", "Q":
			return Command{Type: CmdQuit}
		}
		return Command{Type: CmdNone}
	}

	switch verb {
	case "TAKE":
		return Command{Type: CmdTake, Object: rest}
	case "DROP":
		return Command{Type: CmdDrop, Object: rest}
	}
	return Command{Type: CmdNone}
}
