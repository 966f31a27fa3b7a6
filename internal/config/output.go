package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gitin/internal/confparse"
)

// Init writes cfg to path, choosing the format from the extension. An
// existing file is only replaced when force is set.
func Init(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if IsYAML(path) {
		err = WriteYAML(f, cfg)
	} else {
		err = Write(f, cfg)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Write dumps cfg in the "key = value" format, one [section] per key prefix.
func Write(w io.Writer, cfg *Config) error {
	bw := bufio.NewWriter(w)
	section := ""
	Schema.Each(cfg, func(key, value string) {
		sec, name, ok := strings.Cut(key, "/")
		if !ok {
			sec, name = "", key
		}
		if sec != section {
			fmt.Fprintf(bw, "\n[%s]\n", sec)
			section = sec
		}
		fmt.Fprintf(bw, "%s = %s\n", name, quoteValue(value))
	})
	return bw.Flush()
}

// quoteValue protects values the parser would otherwise alter.
func quoteValue(v string) string {
	if v != strings.TrimSpace(v) || (len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0]) {
		return `"` + v + `"`
	}
	return v
}

// WriteYAML dumps cfg as YAML, keeping the declaration order of the keys.
func WriteYAML(w io.Writer, cfg *Config) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	sections := make(map[string]*yaml.Node)

	for _, f := range Schema {
		value, _ := Schema.Get(cfg, f.Key)
		scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
		if _, err := strconv.ParseInt(value, 10, 64); err == nil && f.Kind == confparse.KindInteger {
			scalar.Tag = "!!int"
		}

		parent := root
		name := f.Key
		if sec, rest, ok := strings.Cut(f.Key, "/"); ok {
			name = rest
			parent = sections[sec]
			if parent == nil {
				parent = &yaml.Node{Kind: yaml.MappingNode}
				sections[sec] = parent
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sec}, parent)
			}
		}
		parent.Content = append(parent.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, scalar)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
