package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/internal/tsqlite/output"
	"github.com/nsqlite/tsqlite/internal/version"
	"gopkg.in/yaml.v3"
)

const (
	defaultBlob   = "redacted"
	defaultFormat = "table"
)

// Config represents the configuration for tsqlite.
//
// Values come from, in order of precedence, flags, environment variables,
// the YAML file named by --config and the defaults.
type Config struct {
	DB         string `arg:"--db,env:TSQLITE_DB" help:"Path of the SQLite database file, or a file: URL"`
	ConfigFile string `arg:"--config,env:TSQLITE_CONFIG" help:"YAML file with defaults for db, blob and format"`
	Blob       string `arg:"--blob,env:TSQLITE_BLOB" help:"How blobs are shown in tables and field output (redacted, hex) [default: redacted]"`
	Format     string `arg:"--format,env:TSQLITE_FORMAT" help:"Output format for select (table, yaml, msgpack) [default: table]"`
	Verbose    bool   `arg:"-v,--verbose,env:TSQLITE_VERBOSE" help:"Log every statement and its result code to stderr"`

	Commands

	DatabasePath string          `arg:"-"`
	BlobFormat   cell.BlobFormat `arg:"-"`
	OutputFormat output.Format   `arg:"-"`
}

func (Config) Version() string {
	return version.String()
}

func (Config) Description() string {
	return "tsqlite inserts, updates, deletes and selects rows of a SQLite database.\n" +
		"Without a command it starts an interactive shell."
}

// File is the YAML configuration file.
type File struct {
	DB     string `yaml:"db"`
	Blob   string `yaml:"blob"`
	Format string `yaml:"format"`
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{Program: "tsqlite"},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.resolve(); err != nil {
		parser.Fail(err.Error())
	}

	return cfg
}

// Parse is MustParse returning errors instead of exiting. args does not
// include the program name.
func Parse(args []string) (Config, error) {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{Program: "tsqlite"},
		&cfg,
	)
	if err != nil {
		return Config{}, err
	}
	if err := parser.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolve fills unset values from the config file and the defaults, then
// validates them.
func (cfg *Config) resolve() error {
	if cfg.ConfigFile != "" {
		file, err := readFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		cfg.DB = firstNonEmpty(cfg.DB, file.DB)
		cfg.Blob = firstNonEmpty(cfg.Blob, file.Blob)
		cfg.Format = firstNonEmpty(cfg.Format, file.Format)
	}

	cfg.Blob = firstNonEmpty(cfg.Blob, defaultBlob)
	cfg.Format = firstNonEmpty(cfg.Format, defaultFormat)

	var err error
	if cfg.BlobFormat, err = cell.ParseBlobFormat(cfg.Blob); err != nil {
		return err
	}
	if cfg.OutputFormat, err = output.ParseFormat(cfg.Format); err != nil {
		return err
	}

	if cfg.NeedsDatabase() {
		if cfg.DatabasePath, err = parseDatabasePath(cfg.DB); err != nil {
			return err
		}
	}

	return nil
}

// NeedsDatabase reports whether the selected command opens the database.
// Only fields works without one.
func (cfg *Config) NeedsDatabase() bool {
	return cfg.Fields == nil
}

func readFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return file, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
