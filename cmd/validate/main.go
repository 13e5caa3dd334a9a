package main

import (
	"fmt"
	"os"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Validates game definition files without starting a server.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <definition.json|yaml> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, path := range os.Args[1:] {
		fmt.Printf("Validating %s...\n", path)
		w, err := world.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  INVALID: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("  OK: %q (%d rooms, %d objects, start room %d)\n",
			w.Name, w.RoomCount(), len(w.Objects()), w.StartRoom)
	}

	if failed {
		os.Exit(1)
	}
}
