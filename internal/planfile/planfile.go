// Package planfile reads and writes household plans as TOML, YAML or JSON,
// chosen by file extension.
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/lifeplan/internal/model"
)

// Format is a plan file encoding.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
)

// ErrUnknownFormat is returned for file extensions with no codec.
var ErrUnknownFormat = errors.New("unknown plan file format")

// FormatOf returns the encoding implied by a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads and validates a plan file.
func Load(path string) (model.HouseholdPlan, error) {
	var p model.HouseholdPlan
	if err := decodeFile(path, &p); err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadVariant reads a file of plan overrides.
func LoadVariant(path string) (model.Variant, error) {
	var v model.Variant
	err := decodeFile(path, &v)
	return v, err
}

// Decode parses a plan from data in the given format without validating it.
func Decode(data []byte, f Format, p *model.HouseholdPlan) error {
	return decode(data, f, p)
}

// Encode renders a plan in the given format.
func Encode(p model.HouseholdPlan, f Format) ([]byte, error) {
	switch f {
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	case YAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	case JSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Save validates and writes a plan, creating parent directories.
func Save(path string, p model.HouseholdPlan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(p, f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating plan dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}

func decodeFile(path string, v any) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-chosen plan path
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}
	if err := decode(data, f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(data []byte, f Format, v any) error {
	switch f {
	case TOML:
		if _, err := toml.Decode(string(data), v); err != nil {
			return fmt.Errorf("parsing toml: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing yaml: %w", err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("parsing json: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return nil
}
