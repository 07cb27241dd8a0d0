package odata

import (
	"errors"
	"fmt"
)

// ParseError is a syntax error located at a character offset of the source.
type ParseError struct {
	// Source character position where the error occurred.
	Position int
	// Error message.
	Message string
}

// Error returns a formatted version of the error, including the position.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s (at index %d)", e.Message, e.Position)
}

// IsParseError checks if the error is a ParseError.
func IsParseError(err error) bool {
	var e ParseError
	return errors.As(err, &e)
}

// ArgumentCountError reports a built-in function called with the wrong
// number of arguments. It carries no position.
type ArgumentCountError struct {
	Function string
	Message  string
}

func newArgumentCountError(info *MappedMemberInfo) ArgumentCountError {
	msg := fmt.Sprintf("Function '%s' requires %d parameter.", info.Name, info.MinArgs)
	switch {
	case info.MinArgs != info.MaxArgs:
		msg = fmt.Sprintf("Function '%s' requires %d or %d parameters.", info.Name, info.MinArgs, info.MaxArgs)
	case info.MinArgs > 1:
		msg = fmt.Sprintf("Function '%s' requires %d parameters.", info.Name, info.MinArgs)
	}
	return ArgumentCountError{Function: info.Name, Message: msg}
}

func (e ArgumentCountError) Error() string {
	return e.Message
}

func IsArgumentCountError(err error) bool {
	var e ArgumentCountError
	return errors.As(err, &e)
}

// TypeConstructionError reports a typed literal such as datetime'...' whose
// text could not be converted.
type TypeConstructionError struct {
	Type     string
	Position int
	Err      error
}

func (e TypeConstructionError) Error() string {
	return fmt.Sprintf("Invalid '%s' type creation expression (at index %d)", e.Type, e.Position)
}

func (e TypeConstructionError) Unwrap() error {
	return e.Err
}

func IsTypeConstructionError(err error) bool {
	var e TypeConstructionError
	return errors.As(err, &e)
}
