package interp

// ResultKind classifies the outcome of one interpreted command.
type ResultKind string

const (
	Moved           ResultKind = "moved"
	TookObject      ResultKind = "took_object"
	DroppedObject   ResultKind = "dropped_object"
	ShowedInventory ResultKind = "showed_inventory"
	ShowedRoom      ResultKind = "showed_room"
	ShowedCommands  ResultKind = "showed_commands"
	ShowedHelp      ResultKind = "showed_help"
	Unrecognized    ResultKind = "unrecognized"
	Blocked         ResultKind = "blocked"
	Forced          ResultKind = "forced"
	GameOver        ResultKind = "game_over"
	Quit            ResultKind = "quit"
)

// Result is what the interpreter returns to the presentation layer. Any
// state mutation has already been applied when the caller sees it.
type Result struct {
	Kind    ResultKind `json:"kind"`
	Message string     `json:"message,omitempty"`
	// Moved reports whether the player changed rooms.
	Moved bool `json:"moved"`
	// FirstVisit is set on a move into a room the player had never
	// entered; narration uses the long-form description.
	FirstVisit bool `json:"first_visit,omitempty"`
}
