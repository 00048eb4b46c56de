package runtime

import (
	"fmt"
	"os"
	"sort"

	"github.com/panyam/owl/decl"
	"gopkg.in/yaml.v3"
)

// SessionConfig is the on-disk description of an interpreter session:
//
//	log_level: debug
//	fatal_policy: return   # or panic
//	seed_policy: raw       # or evaluated
//	max_depth: 500
//	bindings:
//	  pi: 3.14159
//	  greeting: "hello"
//	  flags: [true, false]
type SessionConfig struct {
	LogLevel    string         `yaml:"log_level"`
	FatalPolicy string         `yaml:"fatal_policy"`
	SeedPolicy  string         `yaml:"seed_policy"`
	MaxDepth    int            `yaml:"max_depth"`
	Bindings    map[string]any `yaml:"bindings"`
}

// LoadSessionConfig reads a YAML config file.
func LoadSessionConfig(path string) (*SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := ParseSessionConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseSessionConfig(data []byte) (*SessionConfig, error) {
	cfg := &SessionConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return cfg, nil
}

// Level returns the configured log level, and false if none is set.
func (c *SessionConfig) Level() (LogLevel, bool, error) {
	if c.LogLevel == "" {
		return LogLevelInfo, false, nil
	}
	level, err := ParseLogLevel(c.LogLevel)
	return level, err == nil, err
}

// Options converts the config into evaluator options.
func (c *SessionConfig) Options() ([]Option, error) {
	fatalPolicy, err := ParseFatalPolicy(c.FatalPolicy)
	if err != nil {
		return nil, err
	}
	seedPolicy, err := ParseSeedPolicy(c.SeedPolicy)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithFatalPolicy(fatalPolicy),
		WithSeedPolicy(seedPolicy),
		WithMaxDepth(c.MaxDepth),
	}, nil
}

// Seed binds every configured binding in env.
func (c *SessionConfig) Seed(env *decl.Env) error {
	names := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value, err := ToValue(c.Bindings[name])
		if err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
		env.Set(name, value)
	}
	return nil
}

// ToValue converts a decoded YAML (or JSON) value into a Value.
func ToValue(in any) (decl.Value, error) {
	switch v := in.(type) {
	case nil:
		return decl.None(), nil
	case bool:
		return decl.BoolValue(v), nil
	case int:
		return decl.NumValue(float64(v)), nil
	case int64:
		return decl.NumValue(float64(v)), nil
	case uint64:
		return decl.NumValue(float64(v)), nil
	case float64:
		return decl.NumValue(v), nil
	case string:
		return decl.StrValue(v), nil
	case []any:
		items := make([]decl.Value, len(v))
		for i, item := range v {
			value, err := ToValue(item)
			if err != nil {
				return decl.None(), fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = value
		}
		return decl.ListValue(items...), nil
	}
	return decl.None(), fmt.Errorf("unsupported value %v (%T)", in, in)
}
