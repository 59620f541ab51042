package main

import (
	"fmt"
	"io"

	"github.com/vovakirdan/happyball/internal/games/happyball"
)

// printSnapshot writes a human-readable summary of a snapshot.
func printSnapshot(w io.Writer, s happyball.Snapshot) {
	fmt.Fprintf(w, "  %-10s %s\n", "Phase", s.Phase)
	fmt.Fprintf(w, "  %-10s %d\n", "Score", s.Score)
	fmt.Fprintf(w, "  %-10s %d\n", "Tick", s.Tick)
	fmt.Fprintf(w, "  %-10s x=%.0f y=%.2f vy=%.2f\n", "Ball", s.Ball.X, s.Ball.Y, s.BallVelocity)
	fmt.Fprintf(w, "  %-10s %d\n", "Obstacles", len(s.Obstacles))
	for _, o := range s.Obstacles {
		passed := ""
		if o.Passed {
			passed = " (passed)"
		}
		fmt.Fprintf(w, "    x=%7.1f gap=%3.0f..%3.0f%s\n", o.X, o.GapTop, o.GapBottom, passed)
	}
}
