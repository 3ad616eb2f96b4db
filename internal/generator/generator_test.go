package generator_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/FedeBP/js2ast/internal/generator"
	"github.com/FedeBP/js2ast/pkg/ast"
)

func nestedProgram() *ast.Program {
	return &ast.Program{
		Body: []ast.Statement{
			&ast.VariableDeclaration{ID: ast.NewIdentifier("foo"), Kind: ast.Const, Init: ast.NewString("bar")},
			&ast.VariableDeclaration{ID: ast.NewIdentifier("ast"), Kind: ast.Let, Init: ast.NewBoolean(true)},
			&ast.IfStatement{
				Test: &ast.Expression{Left: ast.NewIdentifier("foo"), Operator: ast.StrictEqual, Right: ast.NewString("bar")},
				Consequent: []ast.Statement{
					&ast.VariableDeclaration{ID: ast.NewIdentifier("bar"), Kind: ast.Const, Init: ast.NewString("foo")},
				},
				Alternate: []ast.Statement{
					&ast.IfStatement{
						Test: &ast.Expression{Left: ast.NewIdentifier("ast"), Operator: ast.StrictNotEqual, Right: ast.NewBoolean(true)},
						Consequent: []ast.Statement{
							&ast.VariableDeclaration{ID: ast.NewIdentifier("done"), Kind: ast.Let, Init: ast.NewNumber(1)},
						},
					},
				},
			},
		},
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		program  *ast.Program
		expected string
	}{
		{
			name:     "Nested program",
			program:  nestedProgram(),
			expected: "const foo = 'bar';let ast = true;if(foo === 'bar') {const bar = 'foo';} else {if(ast !== true) {let done = 1;}}",
		},
		{
			name:     "Empty program",
			program:  &ast.Program{},
			expected: "",
		},
		{
			name: "Identifier initializer and literal on the left",
			program: &ast.Program{Body: []ast.Statement{
				&ast.VariableDeclaration{ID: ast.NewIdentifier("a"), Kind: ast.Let, Init: ast.NewIdentifier("b")},
				&ast.IfStatement{
					Test:       &ast.Expression{Left: ast.NewNumber(42), Operator: ast.NotEqual, Right: ast.NewIdentifier("a")},
					Consequent: []ast.Statement{},
				},
			}},
			expected: "let a = b;if(42 != a) {}",
		},
		{
			name: "String containing an apostrophe",
			program: &ast.Program{Body: []ast.Statement{
				&ast.VariableDeclaration{ID: ast.NewIdentifier("s"), Kind: ast.Const, Init: ast.NewString("it's")},
			}},
			expected: `const s = "it's";`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generator.Render(tt.program)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestRenderUnresolvedVariant(t *testing.T) {
	tests := []struct {
		name    string
		program *ast.Program
		path    string
	}{
		{
			name:    "Nil statement",
			program: &ast.Program{Body: []ast.Statement{nil}},
			path:    "body[0]",
		},
		{
			name: "Nil operand inside an alternate",
			program: &ast.Program{Body: []ast.Statement{
				&ast.IfStatement{
					Test: &ast.Expression{Left: ast.NewIdentifier("a"), Operator: ast.Equal, Right: ast.NewNumber(1)},
					Alternate: []ast.Statement{
						&ast.IfStatement{Test: &ast.Expression{Operator: ast.Equal, Right: ast.NewNumber(1)}},
					},
				},
			}},
			path: "body[0].alternate[0].test.left",
		},
		{
			name: "Literal without value",
			program: &ast.Program{Body: []ast.Statement{
				&ast.VariableDeclaration{ID: ast.NewIdentifier("a"), Kind: ast.Let, Init: &ast.Literal{}},
			}},
			path: "body[0].init",
		},
		{
			name: "Typed nil declaration",
			program: &ast.Program{Body: []ast.Statement{
				(*ast.VariableDeclaration)(nil),
			}},
			path: "body[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generator.Render(tt.program)
			var genErr *generator.GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("Expected *GenerationError, got %v", err)
			}
			if genErr.Path != tt.path {
				t.Errorf("Expected path %q, got %q", tt.path, genErr.Path)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	var calls int
	var gotLanguage string
	formatter := generator.FormatterFunc(func(ctx context.Context, source, language string) (string, error) {
		calls++
		gotLanguage = language
		return strings.ToUpper(source), nil
	})

	g := generator.NewGenerator(generator.WithFormatter(formatter))
	out, err := g.Generate(context.Background(), &ast.Program{Body: []ast.Statement{
		&ast.VariableDeclaration{ID: ast.NewIdentifier("a"), Kind: ast.Let, Init: ast.NewNumber(1)},
	}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "LET A = 1;" {
		t.Errorf("Expected formatter output, got %q", out)
	}
	if calls != 1 {
		t.Errorf("Expected exactly one formatter call, got %d", calls)
	}
	if gotLanguage != "babel" {
		t.Errorf("Expected default language babel, got %q", gotLanguage)
	}
}

func TestGenerateErrors(t *testing.T) {
	failing := generator.FormatterFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("SyntaxError: Unexpected token")
	})

	t.Run("Formatter failure", func(t *testing.T) {
		g := generator.NewGenerator(generator.WithFormatter(failing), generator.WithLanguage("js"))
		out, err := g.Generate(context.Background(), &ast.Program{})
		var fmtErr *generator.FormatError
		if !errors.As(err, &fmtErr) {
			t.Fatalf("Expected *FormatError, got %v", err)
		}
		if fmtErr.Language != "js" {
			t.Errorf("Expected language js, got %q", fmtErr.Language)
		}
		if got := generator.ErrorAsOutput(out, err); got != "SyntaxError: Unexpected token" {
			t.Errorf("Unexpected error output %q", got)
		}
	})

	t.Run("Generation failure skips the formatter", func(t *testing.T) {
		g := generator.NewGenerator(generator.WithFormatter(failing))
		out, err := g.Generate(context.Background(), &ast.Program{Body: []ast.Statement{nil}})
		var genErr *generator.GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("Expected *GenerationError, got %v", err)
		}
		want := "It is not a valid body!\nThe given piece of code: null"
		if got := generator.ErrorAsOutput(out, err); got != want {
			t.Errorf("Expected %q as output, got %q", want, got)
		}
	})
}

func TestGenerationErrorMessage(t *testing.T) {
	_, err := generator.Render(&ast.Program{Body: []ast.Statement{
		&ast.VariableDeclaration{Kind: ast.Let, Init: ast.NewNumber(1)},
	}})
	var genErr *generator.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected *GenerationError, got %v", err)
	}
	if genErr.Path != "body[0]" {
		t.Errorf("Expected path body[0], got %q", genErr.Path)
	}
	want := "It is not a valid body!\nThe given piece of code: " +
		`{"type":"VariableDeclaration","id":null,"kind":"let","init":{"type":"Literal","value":1}}`
	if err.Error() != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, err.Error())
	}
}

func TestErrorAsOutput(t *testing.T) {
	if got := generator.ErrorAsOutput("let a = 1;\n", nil); got != "let a = 1;\n" {
		t.Errorf("Expected text on success, got %q", got)
	}
	if got := generator.ErrorAsOutput("", io.ErrUnexpectedEOF); got != "" {
		t.Errorf("Expected empty output for unrecognized errors, got %q", got)
	}

	wrapped := fmt.Errorf("generate: %w", &generator.GenerationError{Path: "body[0]"})
	if got := generator.ErrorAsOutput("", wrapped); got != "It is not a valid body!\nThe given piece of code: null" {
		t.Errorf("Expected the bare generation message, got %q", got)
	}
}

func TestFormatters(t *testing.T) {
	ctx := context.Background()

	t.Run("Passthrough", func(t *testing.T) {
		out, err := generator.Passthrough.Format(ctx, "let a=1;", "babel")
		if err != nil || out != "let a=1;" {
			t.Errorf("Expected unchanged source, got %q, %v", out, err)
		}
	})

	t.Run("Go", func(t *testing.T) {
		out, err := generator.GoFormatter{}.Format(ctx, "package main\nfunc main(){}", "go")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if out != "package main\n\nfunc main() {}\n" {
			t.Errorf("Unexpected gofmt output %q", out)
		}
	})

	t.Run("JavaScript layout", func(t *testing.T) {
		out, err := generator.JSFormatter{}.Format(ctx, "const foo = 'bar';let ast = true;if(foo === 'bar') {const bar = 'foo';} else {let done = 1;}", "babel")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := "const foo = 'bar';\nlet ast = true;\nif (foo === 'bar') {\n    const bar = 'foo';\n} else {\n    let done = 1;\n}\n"
		if out != want {
			t.Errorf("Expected:\n%s\nGot:\n%s", want, out)
		}
	})

	t.Run("JavaScript empty source", func(t *testing.T) {
		out, err := generator.JSFormatter{}.Format(ctx, "", "babel")
		if err != nil || out != "" {
			t.Errorf("Expected empty output, got %q, %v", out, err)
		}
	})

	t.Run("JavaScript rejects invalid input", func(t *testing.T) {
		if _, err := (generator.JSFormatter{}).Format(ctx, "if(a === {", "babel"); err == nil {
			t.Error("Expected a parse error")
		}
	})

	t.Run("JavaScript rejects other languages", func(t *testing.T) {
		if _, err := (generator.JSFormatter{}).Format(ctx, "let a = 1;", "css"); err == nil {
			t.Error("Expected an unsupported language error")
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := (generator.JSFormatter{}).Format(cancelled, "let a = 1;", "babel"); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})

	t.Run("By name", func(t *testing.T) {
		for _, name := range []string{"", "js", "none", "go"} {
			if _, err := generator.FormatterByName(name); err != nil {
				t.Errorf("FormatterByName(%q): %v", name, err)
			}
		}
		if _, err := generator.FormatterByName("prettier"); err == nil {
			t.Error("Expected error for unknown formatter")
		}
	})
}
