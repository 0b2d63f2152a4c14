package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/atotto/clipboard"
)

// DebugReport formats a snapshot of the session for bug reports: state,
// timing, player and pursuer positions, and the derived geometry counts.
func (s *Session) DebugReport() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Dread Maze session report ===\n")
	fmt.Fprintf(&b, "state=%s tick=%d elapsed=%.2fs\n", s.state, s.tick, s.elapsed)
	fmt.Fprintf(&b, "maze=%dx%d cell=%.1f walls=%d torches=%d\n",
		s.maze.Width(), s.maze.Height(), s.maze.CellSize(), len(s.walls), len(s.torches))

	cx, cy := s.maze.WorldToCell(s.player.Pos.X, s.player.Pos.Z)
	fmt.Fprintf(&b, "player pos=(%.2f,%.2f,%.2f) cell=(%d,%d) yaw=%.2f pitch=%.2f\n",
		s.player.Pos.X, s.player.Pos.Y, s.player.Pos.Z, cx, cy, s.player.Yaw, s.player.Pitch)

	for i, p := range s.pursuers {
		dx := p.Pos.X - s.player.Pos.X
		dz := p.Pos.Z - s.player.Pos.Z
		px, py := s.maze.WorldToCell(p.Pos.X, p.Pos.Z)
		fmt.Fprintf(&b, "%s pos=(%.2f,%.2f) cell=(%d,%d) dist=%.2f\n",
			pursuerLabel(i), p.Pos.X, p.Pos.Z, px, py, math.Sqrt(dx*dx+dz*dz))
	}

	live := 0
	for _, f := range s.flames {
		live += f.ActiveCount()
	}
	fmt.Fprintf(&b, "particles live=%d pools=%d\n", live, len(s.flames))
	return b.String()
}

// CopyDebugReport puts the report on the system clipboard.
func (s *Session) CopyDebugReport() error {
	return clipboard.WriteAll(s.DebugReport())
}
