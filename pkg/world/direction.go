package world

import "strings"

// Direction labels a passage out of a room.
type Direction string

const (
	Up    Direction = "UP"
	Down  Direction = "DOWN"
	North Direction = "NORTH"
	South Direction = "SOUTH"
	East  Direction = "EAST"
	West  Direction = "WEST"
	In    Direction = "IN"
	Out   Direction = "OUT"

	// Forced is the sentinel direction of a passage traversed
	// automatically on entry, without player input.
	Forced Direction = "FORCED"
)

// abbreviations maps single-letter shortcuts to their full direction.
var abbreviations = map[string]Direction{
	"U": Up,
	"D": Down,
	"N": North,
	"S": South,
	"E": East,
	"W": West,
	"I": In,
	"O": Out,
}

var directions = map[Direction]bool{
	Up:    true,
	Down:  true,
	North: true,
	South: true,
	East:  true,
	West:  true,
	In:    true,
	Out:   true,
}

// ParseDirection resolves a token (full word or single-letter abbreviation,
// any casing) to a navigable direction. The FORCED sentinel is not a player
// direction and does not parse.
func ParseDirection(token string) (Direction, bool) {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if d, ok := abbreviations[upper]; ok {
		return d, true
	}
	d := Direction(upper)
	if directions[d] {
		return d, true
	}
	return "", false
}

// IsDirection reports whether the token names a navigable direction,
// including single-letter abbreviations.
func IsDirection(token string) bool {
	_, ok := ParseDirection(token)
	return ok
}
