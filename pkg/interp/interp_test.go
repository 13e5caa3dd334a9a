package interp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// tinyGame loads the shipped TinyGame definition so the scenarios below
// exercise real game content.
func tinyGame(t *testing.T) *session.Session {
	t.Helper()
	w, err := world.LoadFile(filepath.Join("..", "..", "data", "games", "tinygame.json"))
	require.NoError(t, err)
	return session.New(w)
}

func TestCommandsListsLegalDirections(t *testing.T) {
	s := tinyGame(t)
	r := Interpret(s, "COMMANDS")
	assert.Equal(t, ShowedCommands, r.Kind)
	assert.Equal(t, "You can move in the following directions:\nDOWN\nNORTH\nIN\nWEST\nUP\nSOUTH", r.Message)

	// Same answer through the abbreviation.
	assert.Equal(t, r.Message, Interpret(s, "c").Message)
}

func TestMoveAndReturn(t *testing.T) {
	s := tinyGame(t)

	r := Interpret(s, "UP")
	assert.Equal(t, Moved, r.Kind)
	assert.True(t, r.Moved)
	assert.True(t, r.FirstVisit)
	assert.Contains(t, r.Message, "cramped loft")
	assert.Equal(t, 2, s.CurrentRoom().ID)

	// Re-entry narrates the short form, the room's name.
	r = Interpret(s, "DOWN")
	assert.Equal(t, Moved, r.Kind)
	assert.False(t, r.FirstVisit)
	assert.Contains(t, r.Message, "Bird Chamber")
	assert.NotContains(t, r.Message, "round stone chamber")
	assert.Contains(t, r.Message, "a water bird")
}

func TestMoveAbbreviation(t *testing.T) {
	s := tinyGame(t)
	r := Interpret(s, "n")
	assert.Equal(t, Moved, r.Kind)
	assert.Equal(t, 4, s.CurrentRoom().ID)
}

func TestBlockedDirection(t *testing.T) {
	s := tinyGame(t)
	r := Interpret(s, "EAST")
	assert.Equal(t, Blocked, r.Kind)
	assert.Equal(t, "You can't go that way.", r.Message)
	assert.Equal(t, 1, s.CurrentRoom().ID)
	assert.Equal(t, session.PhaseIdle, s.Phase())
}

func TestUnrecognized(t *testing.T) {
	s := tinyGame(t)
	for _, input := range []string{"XYZZY", "TAKE", "DANCE WILDLY", ""} {
		r := Interpret(s, input)
		assert.Equal(t, Unrecognized, r.Kind, "input %q", input)
		assert.Equal(t, "I don't understand that command.", r.Message)
	}
	assert.Equal(t, 1, s.CurrentRoom().ID)
}

func TestTakeAndDrop(t *testing.T) {
	s := tinyGame(t)

	r := Interpret(s, "take bird")
	assert.Equal(t, TookObject, r.Kind)
	assert.Equal(t, "You take a water bird.", r.Message)
	assert.True(t, s.Carrying("BIRD"))

	r = Interpret(s, "TAKE SWORD")
	assert.Equal(t, Blocked, r.Kind)
	assert.Equal(t, "You don't see that here.", r.Message)

	r = Interpret(s, "DROP KEY")
	assert.Equal(t, Blocked, r.Kind)
	assert.Equal(t, "You aren't carrying that.", r.Message)

	r = Interpret(s, "DROP BIRD")
	assert.Equal(t, DroppedObject, r.Kind)
	assert.Equal(t, "You drop a water bird.", r.Message)
	assert.False(t, s.Carrying("BIRD"))
}

// Bare "I" moves when the room has an IN passage and shows the
// inventory otherwise. Bare "O" is always a move.
func TestBareIAndO(t *testing.T) {
	s := tinyGame(t)

	// The start room has an IN passage to the alcove.
	r := Interpret(s, "I")
	assert.Equal(t, Moved, r.Kind)
	assert.Equal(t, 6, s.CurrentRoom().ID)

	// The alcove has no IN passage; I falls back to the inventory.
	r = Interpret(s, "I")
	assert.Equal(t, ShowedInventory, r.Kind)
	assert.Equal(t, "Your inventory is empty.", r.Message)

	r = Interpret(s, "O")
	assert.Equal(t, Moved, r.Kind)
	assert.Equal(t, 1, s.CurrentRoom().ID)

	// No OUT passage here; O stays a move and is blocked.
	r = Interpret(s, "O")
	assert.Equal(t, Blocked, r.Kind)
	assert.Equal(t, "You can't go that way.", r.Message)
}

func TestInventoryCommand(t *testing.T) {
	s := tinyGame(t)
	Interpret(s, "TAKE BIRD")

	r := Interpret(s, "INVENTORY")
	assert.Equal(t, ShowedInventory, r.Kind)
	assert.Equal(t, "You have:\n- BIRD", r.Message)
}

func TestGatedPassage(t *testing.T) {
	s := tinyGame(t)

	Interpret(s, "DOWN")
	require.Equal(t, 3, s.CurrentRoom().ID)

	r := Interpret(s, "NORTH")
	assert.Equal(t, Blocked, r.Kind)
	assert.Equal(t, "The iron gate is locked.", r.Message)
	assert.Equal(t, 3, s.CurrentRoom().ID)

	// Fetch the key from the alcove and try again.
	Interpret(s, "UP")
	Interpret(s, "IN")
	r = Interpret(s, "TAKE KEY")
	require.Equal(t, TookObject, r.Kind)
	Interpret(s, "OUT")
	Interpret(s, "DOWN")

	r = Interpret(s, "NORTH")
	assert.Equal(t, Moved, r.Kind)
	assert.Equal(t, 8, s.CurrentRoom().ID)
}

func TestForcedChain(t *testing.T) {
	s := tinyGame(t)

	// Stepping west lands on the ledge, which sweeps the player away.
	r := Interpret(s, "WEST")
	assert.Equal(t, Forced, r.Kind)
	assert.True(t, r.Moved)
	assert.Equal(t, 7, s.CurrentRoom().ID)
	assert.Equal(t, session.PhaseAwaitingForced, s.Phase())
	assert.Contains(t, r.Message, "slick with algae")

	// One hop per continuation; the stream is itself forced.
	r = Interpret(s, "FORCED")
	assert.Equal(t, Forced, r.Kind)
	assert.Equal(t, 10, s.CurrentRoom().ID)
	assert.Equal(t, session.PhaseAwaitingForced, s.Phase())

	r = Interpret(s, "FORCED")
	assert.Equal(t, Moved, r.Kind)
	assert.Equal(t, 11, s.CurrentRoom().ID)
	assert.Equal(t, session.PhaseIdle, s.Phase())
}

func TestForcedTypedDirectly(t *testing.T) {
	s := tinyGame(t)
	r := Interpret(s, "FORCED")
	assert.Equal(t, Blocked, r.Kind)
	assert.Equal(t, "You can't go that way.", r.Message)
	assert.Equal(t, 1, s.CurrentRoom().ID)
}

func TestGameOver(t *testing.T) {
	s := tinyGame(t)

	Interpret(s, "WEST")
	Interpret(s, "FORCED")
	Interpret(s, "FORCED")
	require.Equal(t, 11, s.CurrentRoom().ID)

	// The whirlpool's forced passage leads nowhere; the game ends on entry.
	r := Interpret(s, "IN")
	assert.Equal(t, GameOver, r.Kind)
	assert.True(t, r.Moved)
	assert.Contains(t, r.Message, "churning whirlpool")
	assert.Equal(t, session.PhaseGameOver, s.Phase())

	// A finished session answers but never mutates.
	r = Interpret(s, "LOOK")
	assert.Equal(t, GameOver, r.Kind)
	assert.Equal(t, "The game is over.", r.Message)
	assert.Equal(t, 12, s.CurrentRoom().ID)
}

func TestQuit(t *testing.T) {
	s := tinyGame(t)

	r := Interpret(s, "QUIT")
	assert.Equal(t, Quit, r.Kind)
	assert.Equal(t, "Thanks for playing.", r.Message)
	assert.Equal(t, session.PhaseQuit, s.Phase())

	r = Interpret(s, "NORTH")
	assert.Equal(t, Quit, r.Kind)
	assert.Equal(t, 1, s.CurrentRoom().ID)
}

func TestLookIsIdempotent(t *testing.T) {
	s := tinyGame(t)

	first := Interpret(s, "LOOK")
	assert.Equal(t, ShowedRoom, first.Kind)
	assert.Contains(t, first.Message, "round stone chamber")
	assert.Contains(t, first.Message, "Objects in this room:\na water bird")

	second := Interpret(s, "l")
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, 1, s.CurrentRoom().ID)
}

func TestHelp(t *testing.T) {
	s := tinyGame(t)
	for _, input := range []string{"HELP", "h"} {
		r := Interpret(s, input)
		assert.Equal(t, ShowedHelp, r.Kind)
		assert.Equal(t, Instructions, r.Message)
	}
}

func TestDescribeView(t *testing.T) {
	s := tinyGame(t)
	Interpret(s, "TAKE BIRD")

	v := Describe(s, true)
	assert.Equal(t, 1, v.RoomID)
	assert.Equal(t, "Bird Chamber", v.RoomName)
	assert.Contains(t, v.Description, "round stone chamber")
	assert.Empty(t, v.Objects)
	assert.Equal(t, []string{"BIRD"}, v.Inventory)
	assert.Equal(t, []string{"DOWN", "NORTH", "IN", "WEST", "UP", "SOUTH"}, v.Directions)
	assert.Equal(t, "idle", v.Phase)

	brief := Describe(s, false)
	assert.Equal(t, "Bird Chamber", brief.Description)
}
