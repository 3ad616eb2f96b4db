package parser

import (
	"fmt"
	"strconv"

	"github.com/FedeBP/js2ast/pkg/ast"
)

// Parser is a recursive descent parser over a token slice with a single token
// of lookahead. It stops at the first error; no partial tree is returned.
type Parser struct {
	tokens []Token
	pos    int
}

func New(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Body: []ast.Statement{}}

	for p.pos < len(p.tokens) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}

	return program, nil
}

func (p *Parser) curToken() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) nextToken() {
	p.pos++
}

func (p *Parser) curTokenIs(t TokenType, value string) bool {
	tok, ok := p.curToken()
	return ok && tok.Is(t, value)
}

// lastSeen is the token an error should end at: the current token, or the last
// token of the stream once it is exhausted.
func (p *Parser) lastSeen(fallback Token) Token {
	if tok, ok := p.curToken(); ok {
		return tok
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return fallback
}

// expect consumes the current token if it matches, otherwise it fails with msg
// anchored from first to the offending token.
func (p *Parser) expect(t TokenType, value, msg string, first Token) (Token, error) {
	tok, ok := p.curToken()
	if !ok || !tok.Is(t, value) {
		return Token{}, newParseError(msg, first, p.lastSeen(first))
	}
	p.nextToken()
	return tok, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, ok := p.curToken()
	if ok && tok.Type == TokenKeyword {
		switch tok.Value {
		case "if":
			return p.parseIfStatement()
		case "const", "let":
			return p.parseVariableDeclaration()
		}
	}
	if !ok {
		return nil, &ParseError{Msg: "unsupported keyword"}
	}
	return nil, &ParseError{Msg: fmt.Sprintf("unsupported keyword %q", tok.Value)}
}

func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	const msg = "invalid variable declaration tokens"

	kw, _ := p.curToken()
	p.nextToken() // move past const/let

	id, err := p.expect(TokenIdentifier, "", msg, kw)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenPunctuator, "=", msg, kw); err != nil {
		return nil, err
	}
	init, err := p.parseOperand(msg, kw)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenPunctuator, ";", msg, kw); err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{
		ID:   ast.NewIdentifier(id.Value),
		Kind: ast.DeclarationKind(kw.Value),
		Init: init,
	}, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	const parenMsg = "invalid parenthesis token"

	ifTok, _ := p.curToken()
	p.nextToken() // move past 'if'

	if _, err := p.expect(TokenPunctuator, "(", parenMsg, ifTok); err != nil {
		return nil, err
	}
	test, err := p.parseExpression(ifTok)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenPunctuator, ")", parenMsg, ifTok); err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Test: test}

	stmt.Consequent, err = p.parseScope("a consequent")
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(TokenKeyword, "else") {
		p.nextToken()
		alternate, err := p.parseScope("an alternate")
		if err != nil {
			return nil, err
		}
		// An empty else block carries nothing; keep Alternate nil so that a
		// present alternate is never empty.
		if len(alternate) > 0 {
			stmt.Alternate = alternate
		}
	}

	return stmt, nil
}

// parseExpression parses exactly `operand operator operand`.
func (p *Parser) parseExpression(first Token) (*ast.Expression, error) {
	const msg = "invalid expression tokens"

	left, err := p.parseOperand(msg, first)
	if err != nil {
		return nil, err
	}

	op, ok := p.curToken()
	if !ok || op.Type != TokenPunctuator || !ast.IsComparison(op.Value) {
		return nil, newParseError(msg, first, p.lastSeen(first))
	}
	p.nextToken()

	right, err := p.parseOperand(msg, first)
	if err != nil {
		return nil, err
	}

	return &ast.Expression{Left: left, Operator: ast.Operator(op.Value), Right: right}, nil
}

// parseScope parses a brace delimited statement list. Nested scopes are
// matched by recursion through parseStatement.
func (p *Parser) parseScope(name string) ([]ast.Statement, error) {
	open, ok := p.curToken()
	if !ok {
		return nil, &ParseError{Msg: fmt.Sprintf("invalid bracket token in %s scope", name)}
	}
	if !open.Is(TokenPunctuator, "{") {
		return nil, newParseError(fmt.Sprintf("invalid bracket token in %s scope", name), open, open)
	}
	p.nextToken()

	stmts := []ast.Statement{}
	for {
		tok, ok := p.curToken()
		if !ok {
			return nil, newParseError(fmt.Sprintf("unterminated bracket in %s scope", name), open, p.lastSeen(open))
		}
		if tok.Is(TokenPunctuator, "}") {
			p.nextToken()
			return stmts, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseOperand(msg string, first Token) (ast.Operand, error) {
	tok, ok := p.curToken()
	if !ok || !tok.isOperand() {
		return nil, newParseError(msg, first, p.lastSeen(first))
	}
	p.nextToken()

	switch tok.Type {
	case TokenString:
		return ast.NewString(tok.Value), nil
	case TokenNumber:
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, newParseError("invalid number literal", tok, tok)
		}
		return ast.NewNumber(n), nil
	case TokenBoolean:
		return ast.NewBoolean(tok.Value == "true"), nil
	default:
		return ast.NewIdentifier(tok.Value), nil
	}
}
