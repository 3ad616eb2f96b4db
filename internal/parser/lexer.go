package parser

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order and the first one matching at the cursor wins, even
// when a later rule would match a longer span: "constant" is the keyword const
// followed by the identifier ant. Keyword and Boolean must stay in front of
// Identifier, and the multi-character operators in front of '='.
func newRules(wholeWords bool) []lexer.SimpleRule {
	boundary := ""
	if wholeWords {
		boundary = `\b`
	}
	return []lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?:if|const|let|else)` + boundary},
		{Name: "Punctuator", Pattern: `[=!]==|[=!]=|[(){};=]`},
		{Name: "Boolean", Pattern: `(?:true|false)` + boundary},
		{Name: "Number", Pattern: `[0-9]+`},
		{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
		{Name: "Identifier", Pattern: `[A-Za-z][A-Za-z0-9]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\f\v]+`},
	}
}

type ruleSet struct {
	definition *lexer.StatefulDefinition
	whitespace lexer.TokenType
	types      map[lexer.TokenType]TokenType
}

func newRuleSet(wholeWords bool) ruleSet {
	definition := lexer.MustSimple(newRules(wholeWords))
	symbols := definition.Symbols()
	return ruleSet{
		definition: definition,
		whitespace: symbols["Whitespace"],
		types: map[lexer.TokenType]TokenType{
			symbols["Keyword"]:    TokenKeyword,
			symbols["Punctuator"]: TokenPunctuator,
			symbols["Boolean"]:    TokenBoolean,
			symbols["Number"]:     TokenNumber,
			symbols["String"]:     TokenString,
			symbols["Identifier"]: TokenIdentifier,
		},
	}
}

var (
	prefixRules    = newRuleSet(false)
	wholeWordRules = newRuleSet(true)
)

type Lexer struct {
	strict     bool
	wholeWords bool
	logger     *slog.Logger
}

type LexerOption func(*Lexer)

// Strict makes Tokenize report unmatched input as a *LexError instead of
// silently dropping the rest of the line.
func Strict(strict bool) LexerOption {
	return func(l *Lexer) { l.strict = strict }
}

// WholeWords stops keywords and booleans from matching a prefix of a longer
// word, so "constant" lexes as a single identifier.
func WholeWords(wholeWords bool) LexerOption {
	return func(l *Lexer) { l.wholeWords = wholeWords }
}

func WithLogger(logger *slog.Logger) LexerOption {
	return func(l *Lexer) { l.logger = logger }
}

func NewLexer(opts ...LexerOption) *Lexer {
	l := &Lexer{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize returns every token it could match. In strict mode a *LexError
// describing the dropped input is returned together with those tokens.
func (l *Lexer) Tokenize(source string) ([]Token, error) {
	rules := prefixRules
	if l.wholeWords {
		rules = wholeWordRules
	}
	tokens, dropped := rules.scan(source)
	if len(dropped) == 0 {
		return tokens, nil
	}

	for _, span := range dropped {
		l.logger.Warn("unrecognized input dropped",
			"start", span.Start,
			"end", span.End,
			"text", source[span.Start:span.End])
	}
	if l.strict {
		return tokens, &LexError{Dropped: dropped}
	}
	return tokens, nil
}

// Tokenize never fails: a line stops being tokenized at the first position no
// rule matches and the remainder of that line is dropped.
func Tokenize(source string) []Token {
	tokens, _ := prefixRules.scan(source)
	return tokens
}

func (r ruleSet) scan(source string) ([]Token, []Span) {
	var (
		tokens    []Token
		dropped   []Span
		lineStart int
	)

	for _, line := range strings.Split(source, "\n") {
		lineTokens, stop := r.scanLine(line)
		for _, tok := range lineTokens {
			tok.Start += lineStart
			tok.End += lineStart
			tokens = append(tokens, tok)
		}
		if stop >= 0 {
			dropped = append(dropped, Span{Start: lineStart + stop, End: lineStart + len(line)})
		}
		lineStart += len(line) + 1
	}

	return tokens, dropped
}

// scanLine returns the tokens of a single line with line-relative offsets and
// the offset where matching stopped, or -1 when the whole line was consumed.
func (r ruleSet) scanLine(line string) ([]Token, int) {
	lex, err := r.definition.LexString("", line)
	if err != nil {
		return nil, 0
	}

	var tokens []Token
	cursor := 0
	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, cursor
		}
		if tok.EOF() {
			return tokens, -1
		}

		cursor = tok.Pos.Offset + len(tok.Value)
		if tok.Type == r.whitespace {
			continue
		}
		tokens = append(tokens, r.newToken(tok))
	}
}

// newToken converts a participle token. String values lose their quotes and
// the start moves past the two quote characters, so End-Start is the length of
// the value while End still marks the end of the quoted text.
func (r ruleSet) newToken(tok lexer.Token) Token {
	typ := r.types[tok.Type]
	value := tok.Value
	start := tok.Pos.Offset
	end := start + len(tok.Value)
	if typ == TokenString {
		value = value[1 : len(value)-1]
		start = end - len(value)
	}
	return Token{
		Type:  typ,
		Value: value,
		Start: start,
		End:   end,
	}
}
