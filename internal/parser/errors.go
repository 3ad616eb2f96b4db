package parser

import (
	"fmt"
	"strings"
)

// ParseError aborts a parse. Span is nil when no token was available to anchor it.
type ParseError struct {
	Msg  string
	Span *Span
}

func (e *ParseError) Error() string {
	if e.Span == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Span)
}

func newParseError(msg string, first, last Token) *ParseError {
	return &ParseError{Msg: msg, Span: &Span{Start: first.Start, End: last.End}}
}

// LexError is only returned by a strict Lexer. It lists the input the lexer
// could not match; every other token is still returned alongside it.
type LexError struct {
	Dropped []Span
}

func (e *LexError) Error() string {
	spans := make([]string, len(e.Dropped))
	for i, s := range e.Dropped {
		spans[i] = s.String()
	}
	return fmt.Sprintf("unrecognized input at %s", strings.Join(spans, ", "))
}
