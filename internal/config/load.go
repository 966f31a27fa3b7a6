package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gitin/internal/confparse"
)

// Load reads the site configuration at path on top of the defaults. An
// empty path yields the defaults. Files ending in .yaml or .yml are read as
// YAML whose nested mappings become "section/key" keys; anything else uses
// the "key = value" format. Unknown keys and malformed lines are reported
// through warn and skipped.
func Load(path string, warn func(error)) (*Config, error) {
	if warn == nil {
		warn = func(error) {}
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := expandEnv(string(data))

	if IsYAML(path) {
		err = applyYAML(cfg, []byte(expanded), warn)
	} else {
		err = Schema.Apply(cfg, confparse.NewParser(strings.NewReader(expanded)), warn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// IsYAML reports whether path names a YAML document.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func applyYAML(cfg *Config, data []byte, warn func(error)) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	flat := make(map[string]string)
	flatten("", doc, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := Schema.Set(cfg, k, flat[k]); err != nil {
			warn(err)
		}
	}
	return nil
}

// flatten turns nested mappings into "a/b" keys. Sequences are joined with
// spaces so that pinfiles may be written as a YAML list.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "/" + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			out[key] = strings.Join(parts, " ")
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
