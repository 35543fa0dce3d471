package snake

import (
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

var headings = [...]SetDirection{Up, Right, Down, Left}

// Autopilot returns the command a simple bot would send before the next tick:
// the first step of a shortest path to the food, or any safe step when the
// food is unreachable. It returns nil when no move is needed or possible.
func Autopilot(s *Simulation) []Command {
	if s.phase == PhaseTerminal {
		return nil
	}

	head := s.body[0]
	blocked := s.blockedCells()

	if step, ok := s.pathStep(head, s.food, blocked); ok {
		return []Command{step}
	}
	for _, d := range headings {
		next := head.Add(d.DX, d.DY)
		if s.canTurn(d) && next.InBounds(s.diff.GridWidth, s.diff.GridHeight) && !blocked.Has(next) {
			return []Command{d}
		}
	}
	return nil
}

// blockedCells returns the cells a move must avoid this tick.
func (s *Simulation) blockedCells() core.CellSet {
	blocked := core.NewCellSet(s.body...)
	for _, o := range s.diff.Obstacles {
		blocked.Add(o)
	}
	return blocked
}

func (s *Simulation) canTurn(d SetDirection) bool {
	return d.DX != -s.dir.X || d.DY != -s.dir.Y
}

// pathStep runs a breadth-first search from head to target and returns the
// heading of the first step.
func (s *Simulation) pathStep(head, target core.Cell, blocked core.CellSet) (SetDirection, bool) {
	w, h := s.diff.GridWidth, s.diff.GridHeight
	first := make(map[int]SetDirection)
	queue := make([]core.Cell, 0, w*h)

	for _, d := range headings {
		next := head.Add(d.DX, d.DY)
		if !s.canTurn(d) || !next.InBounds(w, h) || blocked.Has(next) {
			continue
		}
		if _, seen := first[next.Key()]; seen {
			continue
		}
		first[next.Key()] = d
		queue = append(queue, next)
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == target {
			return first[c.Key()], true
		}
		for _, d := range headings {
			next := c.Add(d.DX, d.DY)
			if !next.InBounds(w, h) || blocked.Has(next) {
				continue
			}
			if _, seen := first[next.Key()]; seen {
				continue
			}
			first[next.Key()] = first[c.Key()]
			queue = append(queue, next)
		}
	}
	return SetDirection{}, false
}
