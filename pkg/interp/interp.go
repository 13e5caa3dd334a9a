package interp

import (
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

const (
	msgCantGoThatWay = "You can't go that way."
	msgUnrecognized  = "I don't understand that command."
	msgNotHere       = "You don't see that here."
	msgNotCarried    = "You aren't carrying that."
	msgQuit          = "Thanks for playing."
)

// Interpret runs a single line of player input against the session and
// returns a result classification. Malformed input never errors; it is
// classified as Unrecognized or Blocked and the session stays playable.
//
// The interpreter performs at most one movement hop per invocation.
// When the result is Forced, the caller is expected to re-invoke with
// the synthetic "FORCED" command after whatever pause it chooses.
func Interpret(s *session.Session, input string) Result {
	if s.Terminal() {
		if s.Phase() == session.PhaseQuit {
			return Result{Kind: Quit, Message: msgQuit}
		}
		return Result{Kind: GameOver, Message: "The game is over."}
	}

	cmd := parseCommand(input, s.CurrentRoom())

	switch cmd.Type {
	case CmdMove:
		return move(s, cmd.Direction)

	case CmdForced:
		return continueForced(s)

	case CmdTake:
		o, err := s.TakeObject(cmd.Object)
		if err != nil {
			return Result{Kind: Blocked, Message: msgNotHere}
		}
		return Result{Kind: TookObject, Message: fmt.Sprintf("You take %s.", o.Description)}

	case CmdDrop:
		o, err := s.DropObject(cmd.Object)
		if err != nil {
			return Result{Kind: Blocked, Message: msgNotCarried}
		}
		return Result{Kind: DroppedObject, Message: fmt.Sprintf("You drop %s.", o.Description)}

	case CmdInventory:
		return Result{Kind: ShowedInventory, Message: DescribeInventory(s)}

	case CmdLook:
		return Result{Kind: ShowedRoom, Message: DescribeRoom(s, true)}

	case CmdCommands:
		return Result{Kind: ShowedCommands, Message: DescribeCommands(s)}

	case CmdHelp:
		return Result{Kind: ShowedHelp, Message: Instructions}

	case CmdQuit:
		s.SetPhase(session.PhaseQuit)
		return Result{Kind: Quit, Message: msgQuit}

	default:
		return Result{Kind: Unrecognized, Message: msgUnrecognized}
	}
}

// move attempts a directional exit from the current room.
func move(s *session.Session, d world.Direction) Result {
	room := s.CurrentRoom()
	p, ok := room.PassageTo(d)
	if !ok {
		return Result{Kind: Blocked, Message: msgCantGoThatWay}
	}
	if p.Requires != "" && !s.Carrying(p.Requires) {
		msg := p.BlockedMessage
		if msg == "" {
			msg = fmt.Sprintf("You need the %s to go that way.", p.Requires)
		}
		return Result{Kind: Blocked, Message: msg}
	}
	return enter(s, p.To)
}

// continueForced performs one hop of a forced chain. Typed directly when
// the current room has no forced passage, it is an illegal move.
func continueForced(s *session.Session) Result {
	fp, ok := s.CurrentRoom().ForcedPassage()
	if !ok {
		return Result{Kind: Blocked, Message: msgCantGoThatWay}
	}
	if fp.To == world.TerminalRoom {
		s.SetPhase(session.PhaseGameOver)
		return Result{Kind: GameOver, Message: s.CurrentRoom().Description}
	}
	return enter(s, fp.To)
}

// enter moves the player into a room and resolves what the destination
// demands next: nothing, another forced hop, or the end of the game.
func enter(s *session.Session, roomID int) Result {
	first := !s.Visited(roomID)
	if err := s.SetCurrentRoom(roomID); err != nil {
		// Destinations are validated at load; a miss here is a defect.
		panic(fmt.Sprintf("interp: move to room %d: %v", roomID, err))
	}

	fp, forced := s.CurrentRoom().ForcedPassage()
	switch {
	case forced && fp.To == world.TerminalRoom:
		s.SetPhase(session.PhaseGameOver)
		return Result{Kind: GameOver, Moved: true, FirstVisit: first, Message: s.CurrentRoom().Description}
	case forced:
		s.SetPhase(session.PhaseAwaitingForced)
		return Result{Kind: Forced, Moved: true, FirstVisit: first, Message: DescribeRoom(s, first)}
	default:
		s.SetPhase(session.PhaseIdle)
		return Result{Kind: Moved, Moved: true, FirstVisit: first, Message: DescribeRoom(s, first)}
	}
}
