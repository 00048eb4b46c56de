package parser

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the ways a read can fail.
type ErrorKind int

const (
	Generic ErrorKind = iota
	NotANumber
	NotABoolean
	NotAString
	NotAList
	NotAFunctionCall
	UnterminatedString
	UnbalancedParenthesis
	UnbalancedBraces
	InvalidNumber
	InvalidSymbol
)

var kindNames = map[ErrorKind]string{
	Generic:               "parse error",
	NotANumber:            "not a number",
	NotABoolean:           "not a boolean",
	NotAString:            "not a string",
	NotAList:              "not a list",
	NotAFunctionCall:      "not a function call",
	UnterminatedString:    "unterminated string",
	UnbalancedParenthesis: "unbalanced parenthesis",
	UnbalancedBraces:      "unbalanced braces",
	InvalidNumber:         "invalid number",
	InvalidSymbol:         "invalid symbol",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ReaderError is returned by the Reader.  Pos is the byte offset where the
// failing production started; Line and Col are its 1-based position.
// Incomplete is set when the failure was caused by running out of input.
type ReaderError struct {
	Kind       ErrorKind
	Pos        int
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ReaderError) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Line > 0 {
		return fmt.Sprintf("Error at Line %d, Col %d: %s", e.Line, e.Col, msg)
	}
	return msg
}

// Is matches any ReaderError of the same kind so that the sentinels below
// work with errors.Is.
func (e *ReaderError) Is(target error) bool {
	t, ok := target.(*ReaderError)
	return ok && t.Kind == e.Kind
}

var (
	ErrGeneric               = &ReaderError{Kind: Generic}
	ErrNotANumber            = &ReaderError{Kind: NotANumber}
	ErrNotABoolean           = &ReaderError{Kind: NotABoolean}
	ErrNotAString            = &ReaderError{Kind: NotAString}
	ErrNotAList              = &ReaderError{Kind: NotAList}
	ErrNotAFunctionCall      = &ReaderError{Kind: NotAFunctionCall}
	ErrUnterminatedString    = &ReaderError{Kind: UnterminatedString}
	ErrUnbalancedParenthesis = &ReaderError{Kind: UnbalancedParenthesis}
	ErrUnbalancedBraces      = &ReaderError{Kind: UnbalancedBraces}
	ErrInvalidNumber         = &ReaderError{Kind: InvalidNumber}
	ErrInvalidSymbol         = &ReaderError{Kind: InvalidSymbol}
)

// KindOf returns the kind of a reader error, or Generic for anything else.
func KindOf(err error) ErrorKind {
	var re *ReaderError
	if errors.As(err, &re) {
		return re.Kind
	}
	return Generic
}

// IsIncomplete reports whether err means the source ended before a form was
// closed, i.e. more input could still make it parse.
func IsIncomplete(err error) bool {
	var re *ReaderError
	return errors.As(err, &re) && re.Incomplete
}

// fallsThrough reports whether a production failure lets the next production
// be tried.  Everything else propagates out of Read.
func fallsThrough(err error) bool {
	switch KindOf(err) {
	case NotANumber, NotABoolean, NotAString, NotAList, NotAFunctionCall:
		return true
	}
	return false
}
