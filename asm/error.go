package asm

import "fmt"

// Error describes an assembly error at a given source line.
type Error struct {
	Line int
	Msg  string
}

// NewError creates a new, formatted error message for the given line.
func NewError(line int, f string, argv ...interface{}) *Error {
	return &Error{
		Line: line,
		Msg:  fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Msg)
}
