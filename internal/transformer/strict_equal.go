package transformer

import (
	"fmt"

	"github.com/FedeBP/js2ast/pkg/ast"
)

const RuleName = "prefer-strict-equal"

// Diagnostic is a single report of a lint rule. Path locates the offending
// node, for example "body[2].alternate[0].test".
type Diagnostic struct {
	Rule     string       `json:"rule"`
	Path     string       `json:"path"`
	Message  string       `json:"message"`
	Actual   ast.Operator `json:"actualOperator"`
	Expected ast.Operator `json:"expectedOperator"`
}

func (d Diagnostic) Suggestion() string {
	return fmt.Sprintf("Replace '%s' to '%s'", d.Actual, d.Expected)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s) [%s]", d.Path, d.Message, d.Suggestion(), d.Rule)
}

var strictOperators = map[ast.Operator]ast.Operator{
	ast.Equal:    ast.StrictEqual,
	ast.NotEqual: ast.StrictNotEqual,
}

// PreferStrictEqual reports every loose comparison and returns a copy of the
// program with each of them replaced by its strict form. The input is left
// untouched.
func PreferStrictEqual(program *ast.Program) (*ast.Program, []Diagnostic) {
	var diags []Diagnostic
	body := fixStatements(program.Body, "body", &diags)
	if body == nil {
		body = []ast.Statement{}
	}
	return &ast.Program{Body: body}, diags
}

func fixStatements(stmts []ast.Statement, path string, diags *[]Diagnostic) []ast.Statement {
	if stmts == nil {
		return nil
	}
	out := make([]ast.Statement, len(stmts))
	for i, stmt := range stmts {
		out[i] = fixStatement(stmt, fmt.Sprintf("%s[%d]", path, i), diags)
	}
	return out
}

func fixStatement(stmt ast.Statement, path string, diags *[]Diagnostic) ast.Statement {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s == nil {
			return stmt
		}
		return &ast.VariableDeclaration{ID: cloneIdentifier(s.ID), Kind: s.Kind, Init: cloneOperand(s.Init)}

	case *ast.IfStatement:
		if s == nil {
			return stmt
		}
		out := &ast.IfStatement{
			Consequent: fixStatements(s.Consequent, path+".consequent", diags),
			Alternate:  fixStatements(s.Alternate, path+".alternate", diags),
		}
		if s.Test != nil {
			op := s.Test.Operator
			if strict, loose := strictOperators[op]; loose {
				*diags = append(*diags, Diagnostic{
					Rule:     RuleName,
					Path:     path + ".test",
					Message:  "Prefer `===` condition instead of `==`",
					Actual:   op,
					Expected: strict,
				})
				op = strict
			}
			out.Test = &ast.Expression{Left: cloneOperand(s.Test.Left), Operator: op, Right: cloneOperand(s.Test.Right)}
		}
		return out
	}
	return stmt
}

func cloneIdentifier(id *ast.Identifier) *ast.Identifier {
	if id == nil {
		return nil
	}
	return &ast.Identifier{Name: id.Name}
}

func cloneOperand(op ast.Operand) ast.Operand {
	switch o := op.(type) {
	case *ast.Identifier:
		if o != nil {
			return cloneIdentifier(o)
		}
	case *ast.Literal:
		if o != nil {
			return &ast.Literal{Value: o.Value}
		}
	}
	return op
}
