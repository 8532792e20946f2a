// Package config resolves pibench settings from defaults, .env files, an
// optional YAML file and PIBENCH_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/panyam/pibench/extract"
	"github.com/panyam/pibench/results"
	"github.com/panyam/pibench/runner"
)

// DefaultFile is picked up from the working directory when no --config is given.
const DefaultFile = "pibench.yaml"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Compiler      string        `yaml:"compiler"`
	CompilerFlags []string      `yaml:"compiler_flags"`
	WorkDir       string        `yaml:"work_dir"`
	Threads       int           `yaml:"threads"`
	Terms         int64         `yaml:"terms"`
	Lang          string        `yaml:"lang"`
	Show          bool          `yaml:"show"`
	Timeout       time.Duration `yaml:"timeout"`
	LogLevel      string        `yaml:"log_level"`

	Compare  CompareConfig  `yaml:"compare"`
	BusyWait BusyWaitConfig `yaml:"busywait"`
}

// CompareConfig names the files of the full strategy comparison.
type CompareConfig struct {
	Source string `yaml:"source"`
	Binary string `yaml:"binary"`
	CSV    string `yaml:"csv"`
	Chart  string `yaml:"chart"`
	JSON   string `yaml:"json"`
}

// BusyWaitConfig names the files of the busy-waiting probe and the
// labels its output is scanned for.
type BusyWaitConfig struct {
	Source string         `yaml:"source"`
	Binary string         `yaml:"binary"`
	Chart  string         `yaml:"chart"`
	JSON   string         `yaml:"json"`
	Labels extract.Labels `yaml:"labels"`
}

func Default() *Config {
	return &Config{
		Compiler:      runner.DefaultCompiler,
		CompilerFlags: append([]string(nil), runner.DefaultFlags...),
		WorkDir:       ".",
		Threads:       results.DefaultThreads,
		Terms:         results.DefaultTermCount,
		Lang:          "en",
		Show:          true,
		LogLevel:      "INFO",
		Compare: CompareConfig{
			Source: "pi_analisis.cpp",
			Binary: "pi_analisis",
			CSV:    "resultados_pi.csv",
			Chart:  "comparativa_estrategias_reales.png",
		},
		BusyWait: BusyWaitConfig{
			Source: "prueba_busy_dentro.cpp",
			Binary: "prueba_busy_dentro",
			Chart:  "analisis_busy_waiting_dentro.png",
			Labels: extract.DefaultLabels(),
		},
	}
}

// LoadEnvFiles loads .env, or .env.dev when PIBENCH_ENV=dev. A missing
// file is not an error. Variables already set in the environment win.
func LoadEnvFiles() error {
	envfile := ".env"
	if os.Getenv("PIBENCH_ENV") == "dev" {
		envfile = ".env.dev"
	}
	err := godotenv.Load(envfile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("loading %s: %w", envfile, err)
	}
	slog.Debug("loaded env file", "file", envfile)
	return nil
}

// Load builds the configuration from defaults, the YAML file at path
// (or DefaultFile if present and path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML file at path onto c. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	slog.Debug("loaded config file", "file", path)
	return nil
}

// ApplyEnv overlays PIBENCH_* variables onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PIBENCH_COMPILER", &c.Compiler)
	str("PIBENCH_WORKDIR", &c.WorkDir)
	str("PIBENCH_LANG", &c.Lang)
	str("PIBENCH_LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("PIBENCH_COMPILER_FLAGS"); ok {
		c.CompilerFlags = strings.Fields(v)
	}
	if v, ok := lookup("PIBENCH_THREADS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PIBENCH_THREADS=%q", ErrInvalid, v)
		}
		c.Threads = n
	}
	if v, ok := lookup("PIBENCH_TERMS"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: PIBENCH_TERMS=%q", ErrInvalid, v)
		}
		c.Terms = n
	}
	if v, ok := lookup("PIBENCH_SHOW"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: PIBENCH_SHOW=%q", ErrInvalid, v)
		}
		c.Show = b
	}
	if v, ok := lookup("PIBENCH_TIMEOUT"); ok && v != "" {
		if err := c.SetTimeout(v); err != nil {
			return fmt.Errorf("PIBENCH_TIMEOUT: %w", err)
		}
	}
	return nil
}

// SetTimeout parses a duration such as "90s"; "0" disables the timeout.
func (c *Config) SetTimeout(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: timeout %q", ErrInvalid, s)
	}
	c.Timeout = d
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Threads < 1:
		return fmt.Errorf("%w: threads must be at least 1, got %d", ErrInvalid, c.Threads)
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %s", ErrInvalid, c.Timeout)
	case c.Compare.Source == "" || c.Compare.Binary == "":
		return fmt.Errorf("%w: compare source and binary are required", ErrInvalid)
	case c.BusyWait.Source == "" || c.BusyWait.Binary == "":
		return fmt.Errorf("%w: busywait source and binary are required", ErrInvalid)
	}
	return nil
}

// Runner returns a runner set up with the configured toolchain.
func (c *Config) Runner() *runner.Runner {
	r := runner.New(c.WorkDir)
	r.Compiler = c.Compiler
	r.Flags = append([]string(nil), c.CompilerFlags...)
	return r
}
