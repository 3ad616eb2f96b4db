package generator

import (
	"context"
	"fmt"
	"go/format"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// Formatter pretty-prints source text. language is a hint such as "babel" or "go".
type Formatter interface {
	Format(ctx context.Context, source, language string) (string, error)
}

type FormatterFunc func(ctx context.Context, source, language string) (string, error)

func (f FormatterFunc) Format(ctx context.Context, source, language string) (string, error) {
	return f(ctx, source, language)
}

// Passthrough returns the source unchanged.
var Passthrough Formatter = FormatterFunc(func(ctx context.Context, source, _ string) (string, error) {
	return source, ctx.Err()
})

// JSFormatter reformats JavaScript by parsing it with tdewolff/parse and
// printing the resulting tree back out, one statement per line with four space
// indentation. Invalid input is rejected with the parser error.
type JSFormatter struct{}

func (JSFormatter) Format(ctx context.Context, source, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch language {
	case "", "babel", "js", "javascript":
	default:
		return "", fmt.Errorf("unsupported language %q", language)
	}

	tree, err := js.Parse(parse.NewInputString(source), js.Options{})
	if err != nil {
		return "", err
	}

	out := strings.TrimSpace(tree.JSString())
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// GoFormatter runs gofmt over Go source.
type GoFormatter struct{}

func (GoFormatter) Format(ctx context.Context, source, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if language != "" && language != "go" {
		return "", fmt.Errorf("unsupported language %q", language)
	}
	out, err := format.Source([]byte(source))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatterByName resolves the formatter names accepted in configuration.
func FormatterByName(name string) (Formatter, error) {
	switch name {
	case "", "js":
		return JSFormatter{}, nil
	case "none":
		return Passthrough, nil
	case "go":
		return GoFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown formatter %q", name)
}
