package generator

import (
	"bytes"
	"context"
	"fmt"
	goast "go/ast"
	"go/printer"
	"go/token"
	"log/slog"
	"strings"

	"github.com/FedeBP/js2ast/pkg/ast"
)

type Generator struct {
	fset      *token.FileSet
	formatter Formatter
	language  string
	logger    *slog.Logger
}

type Option func(*Generator)

func WithFormatter(f Formatter) Option {
	return func(g *Generator) { g.formatter = f }
}

// WithLanguage sets the hint handed to the formatter. Defaults to "babel".
func WithLanguage(language string) Option {
	return func(g *Generator) { g.language = language }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		fset:      token.NewFileSet(),
		formatter: JSFormatter{},
		language:  "babel",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the program and hands the text to the formatter exactly
// once. Rendering failures are returned as *GenerationError, formatter
// failures as *FormatError.
func (g *Generator) Generate(ctx context.Context, program *ast.Program) (string, error) {
	src, err := Render(program)
	if err != nil {
		return "", err
	}
	g.logger.Debug("rendered program", "statements", len(program.Body), "bytes", len(src))

	out, err := g.formatter.Format(ctx, src, g.language)
	if err != nil {
		return "", &FormatError{Language: g.language, Err: err}
	}
	return out, nil
}

// GenerateGoCode prints a Go file produced by the transformer.
func (g *Generator) GenerateGoCode(file *goast.File) (string, error) {
	var buf bytes.Buffer

	err := printer.Fprint(&buf, g.fset, file)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()) + "\n", nil
}

// Render concatenates the source form of every statement without any layout.
func Render(program *ast.Program) (string, error) {
	if program == nil {
		return "", &GenerationError{Path: "program", Node: program}
	}
	var sb strings.Builder
	if err := renderStatements(&sb, program.Body, "body"); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderStatements(sb *strings.Builder, stmts []ast.Statement, path string) error {
	for i, stmt := range stmts {
		if err := renderStatement(sb, stmt, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func renderStatement(sb *strings.Builder, stmt ast.Statement, path string) error {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s == nil || s.ID == nil {
			return &GenerationError{Path: path, Node: stmt}
		}
		init, err := renderOperand(s.Init, path+".init")
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "%s %s = %s;", s.Kind, s.ID.Name, init)
		return nil

	case *ast.IfStatement:
		if s == nil || s.Test == nil {
			return &GenerationError{Path: path, Node: stmt}
		}
		left, err := renderOperand(s.Test.Left, path+".test.left")
		if err != nil {
			return err
		}
		right, err := renderOperand(s.Test.Right, path+".test.right")
		if err != nil {
			return err
		}
		fmt.Fprintf(sb, "if(%s %s %s) {", left, s.Test.Operator, right)
		if err := renderStatements(sb, s.Consequent, path+".consequent"); err != nil {
			return err
		}
		sb.WriteString("}")
		if s.Alternate != nil {
			sb.WriteString(" else {")
			if err := renderStatements(sb, s.Alternate, path+".alternate"); err != nil {
				return err
			}
			sb.WriteString("}")
		}
		return nil
	}

	return &GenerationError{Path: path, Node: stmt}
}

func renderOperand(op ast.Operand, path string) (string, error) {
	switch o := op.(type) {
	case *ast.Identifier:
		if o != nil {
			return o.Name, nil
		}
	case *ast.Literal:
		if o != nil {
			return renderValue(o.Value, path)
		}
	}
	return "", &GenerationError{Path: path, Node: op}
}

func renderValue(v ast.Value, path string) (string, error) {
	switch val := v.(type) {
	case ast.StringValue:
		if strings.ContainsRune(string(val), '\'') {
			return `"` + string(val) + `"`, nil
		}
		return val.Source(), nil
	case ast.NumberValue:
		return val.Source(), nil
	case ast.BooleanValue:
		return val.Source(), nil
	}
	return "", &GenerationError{Path: path, Node: v}
}
