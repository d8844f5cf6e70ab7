package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tesseradata/tessera/pkg/errors"
	"github.com/tesseradata/tessera/pkg/json"
)

// Format identifies the wire encoding of a configuration document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat guesses the document format from a file path or URL. JSON is
// the default when the extension is unrecognized.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a data-type configuration document from disk. JSON and YAML are
// both accepted, selected by extension. ${VAR_NAME} references are replaced
// with environment variable values before decoding.
func Load(path string) (*DataTypeConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read configuration file").
			WithDetail("path", path)
	}
	cfg, err := Decode(data, DetectFormat(path))
	if err != nil {
		if structured, ok := err.(*errors.Error); ok {
			return nil, structured.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Decode parses a configuration document and validates its basic shape.
// Numeric values inside transformer options are preserved as json.Number.
func Decode(data []byte, format Format) (*DataTypeConfig, error) {
	content := substituteEnvVars(string(data))

	var cfg DataTypeConfig
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "failed to parse YAML configuration")
		}
	default:
		if err := json.UnmarshalNumber([]byte(content), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, "failed to parse JSON configuration")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
