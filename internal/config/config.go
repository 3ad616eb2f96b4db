package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "js2ast.yaml"

type Config struct {
	Lexer     LexerConfig     `yaml:"lexer"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
	Output    OutputConfig    `yaml:"output"`
}

type LexerConfig struct {
	// Strict turns dropped input into an error instead of silently ignoring it.
	Strict bool `yaml:"strict"`
	// WholeWords keeps keywords and booleans from matching inside longer words.
	WholeWords bool `yaml:"whole_words"`
}

type GeneratorConfig struct {
	Formatter string `yaml:"formatter"`
	Language  string `yaml:"language"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OutputConfig struct {
	Indent string `yaml:"indent"`
}

func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			Formatter: "js",
			Language:  "babel",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Indent: "  ",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error when
// optional is set, so the default config file may be absent.
func Load(path string, optional bool) (Config, error) {
	conf := Default()

	file, err := os.Open(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return conf, nil
		}
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&conf); err != nil {
		if errors.Is(err, io.EOF) {
			return conf, nil
		}
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}

	if err := conf.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return conf, nil
}

func (c Config) Validate() error {
	switch c.Generator.Formatter {
	case "js", "none", "go":
	default:
		return errors.Errorf("unknown formatter %q", c.Generator.Formatter)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (c Config) Save(path string) error {
	yml, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrapf(os.WriteFile(path, yml, 0644), "write config %s", path)
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Errorf("unknown log level %q", level)
}
