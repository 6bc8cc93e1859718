package raceid

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/raceid/internal/expr"
	"github.com/viant/raceid/service/storage"
	"gopkg.in/yaml.v3"
)

// CountMode selects which count the completion message reports.
type CountMode string

const (
	// CountRecords reports the number of records that received an identifier.
	CountRecords CountMode = "records"
	// CountKeys reports the number of top-level keys in the document.
	CountKeys CountMode = "keys"
)

const (
	DefaultInput   = "races.json"
	DefaultOutput  = "races_with_ids.json"
	DefaultKey     = "races_women"
	DefaultIDField = "id"
	DefaultIndent  = 2
)

// Config is a serialisable representation of a transform run. It can be
// populated from YAML or JSON; unset fields keep the DefaultConfig values.
type Config struct {
	Input       string    `json:"input" yaml:"input"`
	Output      string    `json:"output" yaml:"output"`
	Key         string    `json:"key" yaml:"key"`
	IDField     string    `json:"idField" yaml:"idField"`
	Indent      int       `json:"indent" yaml:"indent"`
	Count       CountMode `json:"count" yaml:"count"`
	Preview     bool      `json:"preview" yaml:"preview"`
	DiffContext int       `json:"diffContext" yaml:"diffContext"`
}

// DefaultConfig returns a Config matching the conventional file layout:
// races.json in, races_with_ids.json out, ids added to races_women.
func DefaultConfig() *Config {
	return &Config{
		Input:       DefaultInput,
		Output:      DefaultOutput,
		Key:         DefaultKey,
		IDField:     DefaultIDField,
		Indent:      DefaultIndent,
		Count:       CountRecords,
		DiffContext: 3,
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	var errs []error
	if c.Input == "" {
		errs = append(errs, fmt.Errorf("input must not be empty"))
	}
	if c.Output == "" && !c.Preview {
		errs = append(errs, fmt.Errorf("output must not be empty"))
	}
	if c.Key == "" {
		errs = append(errs, fmt.Errorf("key must not be empty"))
	}
	if c.IDField == "" {
		errs = append(errs, fmt.Errorf("idField must not be empty"))
	}
	if c.Indent < 1 {
		errs = append(errs, fmt.Errorf("indent must be >= 1"))
	}
	switch c.Count {
	case CountRecords, CountKeys:
	default:
		errs = append(errs, fmt.Errorf("unsupported count mode: %q", c.Count))
	}
	if c.DiffContext < 0 {
		errs = append(errs, fmt.Errorf("diffContext must be >= 0"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML or JSON config from URL on top of DefaultConfig.
// ${env.KEY} placeholders are expanded before decoding.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := storage.New(fs).Download(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expr.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return cfg, nil
}
