package interp

import (
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/session"
)

// Instructions is the HELP text.
const Instructions = `To play, move between locations and interact with objects
by typing one or two word commands.

Motion commands move you from room to room:

  UP, DOWN, NORTH, SOUTH, EAST, WEST, IN, OUT

Not all motions are possible in every room. Other commands:

  COMMANDS (C): list the legal moves in the current room
  LOOK (L): look around the room
  TAKE <object>: take an object
  DROP <object>: drop an object
  INVENTORY: view your inventory
  HELP (H): view these instructions
  QUIT (Q): quit the game

Good luck!`

// View is the presentation snapshot exposed after each command: the
// current room, its contents, the inventory, and the legal moves. The
// rendering surface decides how to show it.
type View struct {
	RoomID      int      `json:"room_id"`
	RoomName    string   `json:"room_name"`
	Description string   `json:"description"`
	Objects     []string `json:"objects,omitempty"`   // descriptions of objects present
	Inventory   []string `json:"inventory,omitempty"` // names of carried objects
	Directions  []string `json:"directions"`
	Phase       string   `json:"phase"`
}

// Describe builds the presentation view. With verbose set (first entry
// into a room, or LOOK) the long-form description is used; otherwise
// the short form, which is the room's name.
func Describe(s *session.Session, verbose bool) View {
	room := s.CurrentRoom()

	v := View{
		RoomID:   room.ID,
		RoomName: room.Name,
		Phase:    string(s.Phase()),
	}
	if verbose {
		v.Description = room.Description
	} else {
		v.Description = room.Name
	}
	for _, o := range s.ObjectsInRoom(room.ID) {
		v.Objects = append(v.Objects, o.Description)
	}
	for _, o := range s.Inventory() {
		v.Inventory = append(v.Inventory, o.Name)
	}
	for _, d := range room.Directions() {
		v.Directions = append(v.Directions, string(d))
	}
	return v
}

// DescribeRoom renders the room text the way the narration surface
// reads it: description, then any objects present.
func DescribeRoom(s *session.Session, verbose bool) string {
	v := Describe(s, verbose)
	if len(v.Objects) == 0 {
		return v.Description
	}
	return v.Description + "\n\nObjects in this room:\n" + strings.Join(v.Objects, "\n")
}

// DescribeInventory renders the carried objects.
func DescribeInventory(s *session.Session) string {
	objs := s.Inventory()
	if len(objs) == 0 {
		return "Your inventory is empty."
	}
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		names = append(names, o.Name)
	}
	return "You have:\n- " + strings.Join(names, "\n- ")
}

// DescribeCommands lists the legal directions from the current room.
func DescribeCommands(s *session.Session) string {
	dirs := s.CurrentRoom().Directions()
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, string(d))
	}
	return "You can move in the following directions:\n" + strings.Join(out, "\n")
}
