package core

// Cell is a position on a discrete grid.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Key returns the canonical integer encoding of the cell for set lookups.
// Coordinates are expected to fit in 16 bits.
func (c Cell) Key() int {
	return c.Y<<16 | (c.X & 0xFFFF)
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// InBounds reports whether the cell lies in [0, w) x [0, h).
func (c Cell) InBounds(w, h int) bool {
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}

// CellSet is an occupancy set keyed by Cell.Key.
type CellSet map[int]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

// Add inserts c.
func (s CellSet) Add(c Cell) {
	s[c.Key()] = struct{}{}
}

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c.Key()]
	return ok
}

// Len returns the number of cells in the set.
func (s CellSet) Len() int {
	return len(s)
}
