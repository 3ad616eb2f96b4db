package parser

import (
	"fmt"
)

type TokenType int

const (
	TokenKeyword TokenType = iota
	TokenPunctuator
	TokenIdentifier
	TokenString
	TokenNumber
	TokenBoolean
)

var tokenTypeNames = [...]string{
	TokenKeyword:    "Keyword",
	TokenPunctuator: "Punctuator",
	TokenIdentifier: "Identifier",
	TokenString:     "String",
	TokenNumber:     "Number",
	TokenBoolean:    "Boolean",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

func (t TokenType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return nil, fmt.Errorf("unknown token type %d", int(t))
	}
	return []byte(tokenTypeNames[t]), nil
}

func (t *TokenType) UnmarshalText(text []byte) error {
	for i, name := range tokenTypeNames {
		if name == string(text) {
			*t = TokenType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token type %q", text)
}

// Token is a lexeme with its byte span in the source. For strings the value has
// the quotes removed and Start is moved forward by their width, so End-Start is
// always len(Value).
type Token struct {
	Type  TokenType `json:"type"`
	Value string    `json:"value"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Value, t.Start, t.End)
}

func (t Token) Is(typ TokenType, value string) bool {
	return t.Type == typ && (value == "" || t.Value == value)
}

func (t Token) isLiteral() bool {
	return t.Type == TokenString || t.Type == TokenNumber || t.Type == TokenBoolean
}

func (t Token) isOperand() bool {
	return t.Type == TokenIdentifier || t.isLiteral()
}

// Span is a half-open byte range [Start, End) of the source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d - %d", s.Start, s.End)
}
