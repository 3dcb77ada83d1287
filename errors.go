package main

import (
	"fmt"
	"strings"
)

// CompileError is a single diagnostic tied to a source line.
type CompileError struct {
	Line    int
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ErrorList collects diagnostics from the lexer, parser, and semantic pass.
type ErrorList struct {
	errors []CompileError
}

func NewErrorList() *ErrorList {
	return &ErrorList{}
}

func (el *ErrorList) Add(line int, format string, args ...any) {
	el.errors = append(el.errors, CompileError{
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (el *ErrorList) HasErrors() bool {
	return len(el.errors) > 0
}

func (el *ErrorList) Len() int {
	return len(el.errors)
}

func (el *ErrorList) All() []CompileError {
	return el.errors
}

func (el *ErrorList) String() string {
	var sb strings.Builder
	for i, e := range el.errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns the first diagnostic as an error, or nil if there are none.
func (el *ErrorList) Err() error {
	if len(el.errors) == 0 {
		return nil
	}
	return el.errors[0]
}
