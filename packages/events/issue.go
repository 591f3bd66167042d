package events

import "fmt"

// Issue is a recorded failure, or a pre-declared ("known") one.
type Issue struct {
	Description    string
	Known          bool
	Diff           string
	Comments       []string
	SourceLocation *SourceLocation
}

// SourceLocation points at the code that recorded an issue.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
