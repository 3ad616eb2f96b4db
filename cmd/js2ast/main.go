package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/FedeBP/js2ast/internal/config"
	"github.com/FedeBP/js2ast/internal/generator"
	"github.com/FedeBP/js2ast/internal/pipeline"
	"github.com/FedeBP/js2ast/pkg/ast"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:                   "js2ast",
		Usage:                  "Tokenize, parse and regenerate a small JavaScript subset",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "Print the token stream as JSON",
				ArgsUsage: "[file]",
				Flags:     commonFlags(),
				Action:    tokens,
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree as JSON",
				ArgsUsage: "[file]",
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:    "tree",
						Aliases: []string{"t"},
						Usage:   "Print an indented tree instead of JSON",
					},
				),
				Action: printAST,
			},
			{
				Name:      "generate",
				Usage:     "Regenerate formatted source from source or from a JSON syntax tree",
				ArgsUsage: "[file]",
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:    "from-ast",
						Aliases: []string{"a"},
						Usage:   "Read a JSON syntax tree instead of source text",
					},
					&cli.BoolFlag{
						Name:  "error-as-output",
						Usage: "Print generation errors as the generated text and exit successfully",
					},
				),
				Action: generate,
			},
			{
				Name:      "go",
				Usage:     "Translate the source into a Go program",
				ArgsUsage: "[file]",
				Flags:     commonFlags(),
				Action:    goCode,
			},
			{
				Name:      "lint",
				Usage:     "Report loose equality comparisons (prefer-strict-equal)",
				ArgsUsage: "[file]",
				Flags: append(commonFlags(),
					&cli.BoolFlag{
						Name:  "fix",
						Usage: "Print the source with every suggestion applied",
					},
				),
				Action: lint,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the YAML configuration",
			Value:   config.DefaultFile,
		},
		&cli.StringFlag{
			Name:    "input-str",
			Aliases: []string{"s"},
			Usage:   "Use a string instead of a file",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail on input the lexer cannot match instead of dropping it",
		},
		&cli.BoolFlag{
			Name:  "whole-words",
			Usage: "Lex keywords and booleans only as whole words",
		},
		&cli.StringFlag{
			Name:  "formatter",
			Usage: "Formatter for generated source: js, none or go",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.Load(c.String("config"), !c.IsSet("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("strict") {
		conf.Lexer.Strict = c.Bool("strict")
	}
	if c.IsSet("whole-words") {
		conf.Lexer.WholeWords = c.Bool("whole-words")
	}
	if c.IsSet("formatter") {
		conf.Generator.Formatter = c.String("formatter")
	}
	if c.IsSet("log-level") {
		conf.Log.Level = c.String("log-level")
	}
	return conf, conf.Validate()
}

func newPipeline(c *cli.Context) (*pipeline.Pipeline, config.Config, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return nil, config.Config{}, err
	}
	level, err := config.ParseLevel(conf.Log.Level)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	p, err := pipeline.New(conf, logger)
	if err != nil {
		return nil, config.Config{}, err
	}
	return p, conf, nil
}

func readInput(c *cli.Context) (string, error) {
	if s := c.String("input-str"); s != "" {
		return s, nil
	}

	filename := c.Args().First()
	if filename == "" || filename == "-" {
		src, err := io.ReadAll(os.Stdin)
		return string(src), errors.Wrap(err, "read stdin")
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", filename)
	}
	return string(src), nil
}

func writeJSON(w io.Writer, indent string, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", indent)
	return encoder.Encode(v)
}

func tokens(c *cli.Context) error {
	p, conf, err := newPipeline(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	src, err := readInput(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	toks, err := p.Tokens(src)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	if err := writeJSON(os.Stdout, conf.Output.Indent, toks); err != nil {
		return cli.Exit(color.RedString("Error encoding tokens: %s", err), 1)
	}
	return nil
}

func printAST(c *cli.Context) error {
	p, conf, err := newPipeline(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	src, err := readInput(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	program, err := p.Parse(src)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	if c.Bool("tree") {
		printTree(os.Stdout, "Program", program, "")
		return nil
	}
	if err := writeJSON(os.Stdout, conf.Output.Indent, program); err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}
	return nil
}

func generate(c *cli.Context) error {
	p, _, err := newPipeline(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	src, err := readInput(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	var program *ast.Program
	if c.Bool("from-ast") {
		program = &ast.Program{}
		if err := json.Unmarshal([]byte(src), program); err != nil {
			return cli.Exit(color.RedString("Error decoding AST: %s", err), 1)
		}
	} else {
		program, err = p.Parse(src)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
	}

	out, err := p.Generate(context.Background(), program)
	if c.Bool("error-as-output") {
		fmt.Print(generator.ErrorAsOutput(out, err))
		return nil
	}
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	fmt.Print(out)
	return nil
}

func goCode(c *cli.Context) error {
	p, _, err := newPipeline(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	src, err := readInput(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	out, err := p.Go(src)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	fmt.Print(out)
	return nil
}

func lint(c *cli.Context) error {
	p, _, err := newPipeline(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	src, err := readInput(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	fixed, diags, err := p.Lint(src)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	if c.Bool("fix") {
		out, err := p.Generate(context.Background(), fixed)
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		fmt.Print(out)
		return nil
	}

	for _, d := range diags {
		fmt.Println(color.YellowString("%s", d))
	}
	if len(diags) > 0 {
		return cli.Exit(color.RedString("%d problem(s)", len(diags)), 1)
	}
	return nil
}
