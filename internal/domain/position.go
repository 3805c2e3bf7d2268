package domain

import "fmt"

// Position is an integer cell coordinate on the encounter grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Adjacent reports whether other is within Chebyshev distance 1 of p.
// Diagonals count as adjacent.
func (p Position) Adjacent(other Position) bool {
	return p.Distance(other) <= 1
}

// Distance returns the Chebyshev distance between two cells, which is the
// number of king moves between them. Weapon range checks use this.
func (p Position) Distance(other Position) int {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
