// Package config loads metnet configuration files.
//
// Configuration is written in CUE and checked against an embedded schema
// that also supplies defaults:
//
//	database: "bigg.db"
//	logging: level: "debug"
//	warnings: limit: 10
//
// Unknown fields are rejected.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded configuration.
type Config struct {
	Database string   `json:"database"`
	Logging  Logging  `json:"logging"`
	Warnings Warnings `json:"warnings"`
	Matrix   Matrix   `json:"matrix"`
	Export   Export   `json:"export"`
	Metrics  Metrics  `json:"metrics"`
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// SlogLevel maps Level to a slog.Level. Unknown values map to INFO.
func (l Logging) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Warnings configures capped warning categories.
type Warnings struct {
	Limit int `json:"limit"`
}

// Matrix configures the matrix linker.
type Matrix struct {
	AttachAllCopies bool `json:"attach_all_copies"`
}

// Export configures model export.
type Export struct {
	Indent bool `json:"indent"`
}

// Metrics configures metrics output.
type Metrics struct {
	Textfile string `json:"textfile"`
}

// Error is a configuration error with its source position when known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the schema defaults.
func Default() *Config {
	cfg, err := Parse(nil, "default.cue")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, path)
}

// Parse validates data against the schema and decodes it.
// filename is used in error positions only.
func Parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(data, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, formatCUEError(err)
	}
	return &cfg, nil
}

// formatCUEError keeps the first CUE error with its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	format, args := first.Msg()
	msg := fmt.Sprintf(format, args...)
	path := first.Path()
	if len(path) > 0 && path[0] == "#Config" {
		path = path[1:]
	}
	if len(path) > 0 {
		msg = fmt.Sprintf("%s: %s", strings.Join(path, "."), msg)
	}

	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Message: msg, Pos: positions[0]}
	}
	return &Error{Message: msg}
}
