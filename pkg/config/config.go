// Package config holds the settings of a mining run. Settings come from an
// optional YAML file; command line flags are applied on top by the caller,
// which then calls Validate.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatSIF  = "sif"
	FormatJSON = "json"
)

const (
	DefaultTimeout = 10 * time.Minute
	MaxTimeout     = 24 * time.Hour
	MinTimeout     = time.Second
)

// Config is a mining run
type Config struct {
	// Input is the model document, YAML or JSON, optionally snappy framed
	Input string `yaml:"input" validate:"required"`
	// Output is the destination file; empty means stdout
	Output string `yaml:"output"`
	Format string `yaml:"format" validate:"oneof=sif json"`

	// Types lists the relation type tags to mine; empty means all of them
	Types []string `yaml:"types" validate:"dive,sif_tag"`
	// Extract names one relation type or variant whose matches are written
	// out as a sub-model. Enum style names such as CONTROLS_EXPRESSION_OF are
	// accepted too.
	Extract string `yaml:"extract" validate:"omitempty,sif_name"`

	Mediators     bool `yaml:"mediators"`
	SkipNormalize bool `yaml:"skip_normalize"`

	Workers int           `yaml:"workers" validate:"gte=0,lte=256"`
	Timeout time.Duration `yaml:"timeout"`

	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Format:   FormatSIF,
		Timeout:  DefaultTimeout,
		LogLevel: "info",
	}
}

// Load reads a YAML file over Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over Default
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings and clamps the timeout into range
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Format == FormatJSON && c.Extract == "" {
		return ErrJSONNeedsExtract
	}
	c.Timeout = ValidateTimeout(c.Timeout, DefaultTimeoutConfig())
	return nil
}

// ErrJSONNeedsExtract is returned for JSON output without an extraction
var ErrJSONNeedsExtract = errors.New("json output needs an extract pattern")

var (
	validate   *validator.Validate
	tagFormat  = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)
	enumFormat = regexp.MustCompile(`^[A-Z]+(_[A-Z]+)*$`)
)

func init() {
	validate = validator.New()
	// sif_tag accepts lower case hyphenated names such as controls-state-change-of
	_ = validate.RegisterValidation("sif_tag", func(fl validator.FieldLevel) bool {
		return tagFormat.MatchString(fl.Field().String())
	})
	// sif_name also accepts the enum style CONTROLS_STATE_CHANGE_OF
	_ = validate.RegisterValidation("sif_name", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return tagFormat.MatchString(s) || enumFormat.MatchString(s)
	})
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %q", field, e.Param(), e.Value())
	case "gte", "lte":
		return fmt.Errorf("%s: must be %s %s, got %v", field, e.Tag(), e.Param(), e.Value())
	case "sif_tag":
		return fmt.Errorf("%s: %q is not a lower case hyphenated name", field, e.Value())
	case "sif_name":
		return fmt.Errorf("%s: %q is neither a hyphenated tag nor an enum style name", field, e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
