package transformer_test

import (
	goparser "go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/FedeBP/js2ast/internal/generator"
	"github.com/FedeBP/js2ast/internal/transformer"
	"github.com/FedeBP/js2ast/pkg/ast"
	"github.com/google/go-cmp/cmp"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		program  *ast.Program
		contains []string
		renamed  map[string]string
	}{
		{
			name: "Declarations",
			program: &ast.Program{Body: []ast.Statement{
				&ast.VariableDeclaration{ID: ast.NewIdentifier("foo"), Kind: ast.Const, Init: ast.NewString("bar")},
				&ast.VariableDeclaration{ID: ast.NewIdentifier("done"), Kind: ast.Let, Init: ast.NewNumber(1)},
				&ast.VariableDeclaration{ID: ast.NewIdentifier("copy"), Kind: ast.Const, Init: ast.NewIdentifier("foo")},
			}},
			contains: []string{
				`const foo = "bar"`,
				`var done = 1`,
				`_ = done`,
				`var copy = foo`,
			},
		},
		{
			name: "If with else",
			program: &ast.Program{Body: []ast.Statement{
				&ast.VariableDeclaration{ID: ast.NewIdentifier("ok"), Kind: ast.Let, Init: ast.NewBoolean(true)},
				&ast.IfStatement{
					Test: &ast.Expression{Left: ast.NewIdentifier("ok"), Operator: ast.StrictNotEqual, Right: ast.NewBoolean(false)},
					Consequent: []ast.Statement{
						&ast.VariableDeclaration{ID: ast.NewIdentifier("a"), Kind: ast.Const, Init: ast.NewNumber(1)},
					},
					Alternate: []ast.Statement{
						&ast.VariableDeclaration{ID: ast.NewIdentifier("b"), Kind: ast.Const, Init: ast.NewNumber(2)},
					},
				},
			}},
			contains: []string{
				"if ok != false {",
				"} else {",
			},
		},
		{
			name: "Go keywords are renamed",
			program: &ast.Program{Body: []ast.Statement{
				&ast.VariableDeclaration{ID: ast.NewIdentifier("type"), Kind: ast.Let, Init: ast.NewString("x")},
				&ast.IfStatement{
					Test:       &ast.Expression{Left: ast.NewIdentifier("type"), Operator: ast.Equal, Right: ast.NewString("x")},
					Consequent: []ast.Statement{},
				},
			}},
			contains: []string{
				`var type_ = "x"`,
				`if type_ == "x" {`,
			},
			renamed: map[string]string{"type": "type_"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := transformer.NewTransformer()
			file, err := tr.Transform(tt.program)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}

			code, err := generator.NewGenerator().GenerateGoCode(file)
			if err != nil {
				t.Fatalf("GenerateGoCode() error = %v", err)
			}

			if _, err := goparser.ParseFile(token.NewFileSet(), "main.go", code, 0); err != nil {
				t.Fatalf("Generated code does not parse: %v\n%s", err, code)
			}
			if !strings.HasPrefix(code, "package main") {
				t.Errorf("Expected package main, got:\n%s", code)
			}
			for _, want := range tt.contains {
				if !strings.Contains(code, want) {
					t.Errorf("Expected generated code to contain %q, got:\n%s", want, code)
				}
			}

			renamed := tr.Renamed()
			if tt.renamed == nil {
				tt.renamed = map[string]string{}
			}
			if diff := cmp.Diff(tt.renamed, renamed); diff != "" {
				t.Errorf("Renamed mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransformErrors(t *testing.T) {
	programs := map[string]*ast.Program{
		"nil statement": {Body: []ast.Statement{nil}},
		"nil operand": {Body: []ast.Statement{
			&ast.VariableDeclaration{ID: ast.NewIdentifier("a"), Kind: ast.Let},
		}},
		"missing test": {Body: []ast.Statement{&ast.IfStatement{}}},
	}

	for name, program := range programs {
		t.Run(name, func(t *testing.T) {
			if _, err := transformer.NewTransformer().Transform(program); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
