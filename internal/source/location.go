package source

import "fmt"

// Position is a point in a source file. Line and Column are 1-based, Column
// counts codepoints; Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location spans Start..End. End may be nil for a single point.
type Location struct {
	Start *Position
	End   *Position
}

// NewLocation returns a location covering a single position.
func NewLocation(pos Position) *Location {
	p := pos
	return &Location{Start: &p}
}
