package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/FedeBP/js2ast/internal/config"
	"github.com/FedeBP/js2ast/internal/generator"
	"github.com/FedeBP/js2ast/internal/parser"
	"github.com/FedeBP/js2ast/internal/transformer"
	"github.com/FedeBP/js2ast/pkg/ast"
	"github.com/pkg/errors"
)

// Pipeline runs source text through lexer, parser and generator. It holds no
// mutable state and may be shared between goroutines.
type Pipeline struct {
	lexer     *parser.Lexer
	generator *generator.Generator
	logger    *slog.Logger
}

func New(conf config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	formatter, err := generator.FormatterByName(conf.Generator.Formatter)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Pipeline{
		lexer: parser.NewLexer(
			parser.Strict(conf.Lexer.Strict),
			parser.WholeWords(conf.Lexer.WholeWords),
			parser.WithLogger(logger),
		),
		generator: generator.NewGenerator(
			generator.WithFormatter(formatter),
			generator.WithLanguage(conf.Generator.Language),
			generator.WithLogger(logger),
		),
		logger: logger,
	}, nil
}

func (p *Pipeline) Tokens(source string) ([]parser.Token, error) {
	start := time.Now()
	tokens, err := p.lexer.Tokenize(source)
	p.logger.Debug("tokenized", "tokens", len(tokens), "elapsed", time.Since(start))
	if err != nil {
		return tokens, errors.WithMessage(err, "tokenize")
	}
	return tokens, nil
}

func (p *Pipeline) Parse(source string) (*ast.Program, error) {
	tokens, err := p.Tokens(source)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, errors.WithMessage(err, "parse")
	}
	p.logger.Debug("parsed", "statements", len(program.Body), "elapsed", time.Since(start))
	return program, nil
}

func (p *Pipeline) Generate(ctx context.Context, program *ast.Program) (string, error) {
	start := time.Now()
	out, err := p.generator.Generate(ctx, program)
	if err != nil {
		return "", errors.WithMessage(err, "generate")
	}
	p.logger.Debug("generated", "bytes", len(out), "elapsed", time.Since(start))
	return out, nil
}

// RoundTrip is Generate(Parse(source)).
func (p *Pipeline) RoundTrip(ctx context.Context, source string) (string, error) {
	program, err := p.Parse(source)
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, program)
}

// Go lowers the source into a Go program.
func (p *Pipeline) Go(source string) (string, error) {
	program, err := p.Parse(source)
	if err != nil {
		return "", err
	}

	t := transformer.NewTransformer()
	file, err := t.Transform(program)
	if err != nil {
		return "", errors.WithMessage(err, "transform")
	}
	for from, to := range t.Renamed() {
		p.logger.Info("renamed identifier", "from", from, "to", to)
	}

	out, err := p.generator.GenerateGoCode(file)
	if err != nil {
		return "", errors.WithMessage(err, "print go")
	}
	return out, nil
}

// Lint applies the prefer-strict-equal rule and returns the fixed program
// along with the diagnostics.
func (p *Pipeline) Lint(source string) (*ast.Program, []transformer.Diagnostic, error) {
	program, err := p.Parse(source)
	if err != nil {
		return nil, nil, err
	}
	fixed, diags := transformer.PreferStrictEqual(program)
	p.logger.Debug("linted", "rule", transformer.RuleName, "diagnostics", len(diags))
	return fixed, diags, nil
}
