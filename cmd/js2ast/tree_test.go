package main

import (
	"strings"
	"testing"

	"github.com/FedeBP/js2ast/pkg/ast"
)

func TestPrintTree(t *testing.T) {
	program := &ast.Program{Body: []ast.Statement{
		&ast.VariableDeclaration{ID: ast.NewIdentifier("a"), Kind: ast.Let, Init: ast.NewNumber(1)},
		&ast.IfStatement{
			Test:       &ast.Expression{Left: ast.NewIdentifier("a"), Operator: ast.StrictEqual, Right: ast.NewString("x")},
			Consequent: []ast.Statement{},
		},
	}}

	var sb strings.Builder
	printTree(&sb, "Program", program, "")

	want := `Program: Program {
  Body: [
    [0]: VariableDeclaration {
      ID: Identifier {
        Name: a
      }
      Kind: let
      Init: Literal {
        Value: 1
      }
    }
    [1]: IfStatement {
      Test: Expression {
        Left: Identifier {
          Name: a
        }
        Operator: ===
        Right: Literal {
          Value: x
        }
      }
      Consequent: [
      ]
      Alternate: nil
    }
  ]
}
`
	if got := sb.String(); got != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
	}
}
