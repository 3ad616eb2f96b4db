package ast

import (
	"strconv"
)

type NodeType string

const (
	ProgramNode             NodeType = "Program"
	VariableDeclarationNode NodeType = "VariableDeclaration"
	IfStatementNode         NodeType = "IfStatement"
	ExpressionNode          NodeType = "Expression"
	IdentifierNode          NodeType = "Identifier"
	LiteralNode             NodeType = "Literal"
)

type Node interface {
	Type() NodeType
}

// Statement is implemented by *VariableDeclaration and *IfStatement only.
type Statement interface {
	Node
	statementNode()
}

// Operand is either side of an Expression: *Identifier or *Literal.
type Operand interface {
	Node
	operandNode()
}

// Value is the payload of a Literal: StringValue, NumberValue or BooleanValue.
type Value interface {
	// Source renders the value the way it is written in source text.
	Source() string
	valueNode()
}

type Program struct {
	Body []Statement
}

func (p *Program) Type() NodeType { return ProgramNode }

type DeclarationKind string

const (
	Const DeclarationKind = "const"
	Let   DeclarationKind = "let"
)

type VariableDeclaration struct {
	ID   *Identifier
	Kind DeclarationKind
	Init Operand
}

func (vd *VariableDeclaration) statementNode() {}
func (vd *VariableDeclaration) Type() NodeType { return VariableDeclarationNode }

type IfStatement struct {
	Test       *Expression
	Consequent []Statement
	// Alternate is nil when there is no else branch.
	Alternate []Statement
}

func (is *IfStatement) statementNode() {}
func (is *IfStatement) Type() NodeType { return IfStatementNode }

type Operator string

const (
	StrictEqual    Operator = "==="
	StrictNotEqual Operator = "!=="
	Equal          Operator = "=="
	NotEqual       Operator = "!="
)

// IsComparison reports whether op is one of the four supported comparison operators.
func IsComparison(op string) bool {
	switch Operator(op) {
	case StrictEqual, StrictNotEqual, Equal, NotEqual:
		return true
	}
	return false
}

type Expression struct {
	Left     Operand
	Operator Operator
	Right    Operand
}

func (e *Expression) Type() NodeType { return ExpressionNode }

type Identifier struct {
	Name string
}

func (i *Identifier) operandNode()   {}
func (i *Identifier) Type() NodeType { return IdentifierNode }

type Literal struct {
	Value Value
}

func (l *Literal) operandNode()   {}
func (l *Literal) Type() NodeType { return LiteralNode }

type StringValue string

func (s StringValue) valueNode() {}

func (s StringValue) Source() string { return "'" + string(s) + "'" }

type NumberValue int64

func (n NumberValue) valueNode() {}

func (n NumberValue) Source() string { return strconv.FormatInt(int64(n), 10) }

type BooleanValue bool

func (b BooleanValue) valueNode() {}

func (b BooleanValue) Source() string { return strconv.FormatBool(bool(b)) }

func NewIdentifier(name string) *Identifier { return &Identifier{Name: name} }

func NewString(s string) *Literal { return &Literal{Value: StringValue(s)} }

func NewNumber(n int64) *Literal { return &Literal{Value: NumberValue(n)} }

func NewBoolean(b bool) *Literal { return &Literal{Value: BooleanValue(b)} }
