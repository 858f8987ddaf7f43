// Package config loads docproxy host configuration: logging settings and
// the trait profile a host applies to the document proxies it binds.
//
// Files are TOML or YAML, chosen by extension:
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[profile]
//	return_key_type = "search"
//	autocorrection = "no"
//	secure_text_entry = false
//
// A missing file is not an error; Load returns the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Default logging settings.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Logging configures the host logger.
type Logging struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format" yaml:"format"`
}

// Config is the host configuration.
type Config struct {
	Logging Logging `toml:"logging" yaml:"logging"`
	Profile Profile `toml:"profile" yaml:"profile"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// FormatOf returns the format implied by a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads the configuration at path. A missing file yields Default.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(path, data, format)
}

var yamlLineRe = regexp.MustCompile(`line (\d+):`)

// yamlLine returns the first line number yaml.v3 reports in err, or 0.
// yaml.v3 carries positions only in its messages.
func yamlLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// Parse decodes data over the defaults and validates the profile.
// source names the data in errors.
func Parse(source string, data []byte, format Format) (Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			perr := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return Config{}, perr
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ParseError{Path: source, Line: yamlLine(err), Message: err.Error(), Err: err}
		}
	default:
		return Config{}, fmt.Errorf("%s: %w", source, ErrUnknownFormat)
	}

	if err := cfg.Profile.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: profile: %w", source, err)
	}
	return cfg, nil
}
