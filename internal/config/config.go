// Package config reads the optional YAML layout file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thiagokokada/tabfilter-go/internal/table"
)

const DefaultDelay = 240 * time.Millisecond

type Column struct {
	ID     string `yaml:"id"`
	Header string `yaml:"header,omitempty"`
	Group  string `yaml:"group,omitempty"`
	Kind   string `yaml:"kind,omitempty"`
	Hidden *bool  `yaml:"hidden,omitempty"`
}

type Sort struct {
	ID   string `yaml:"id"`
	Desc bool   `yaml:"desc,omitempty"`
}

type Config struct {
	// Delay is the debounce delay of every filter input.
	Delay   time.Duration `yaml:"delay,omitempty"`
	Columns []Column      `yaml:"columns,omitempty"`
	Order   []string      `yaml:"order,omitempty"`
	Sort    []Sort        `yaml:"sort,omitempty"`
	Global  string        `yaml:"global,omitempty"`
}

func Default() *Config {
	return &Config{Delay: DefaultDelay}
}

// Load reads path. An empty path gives the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("negative delay %s", cfg.Delay)
	}
	for i, col := range cfg.Columns {
		if strings.TrimSpace(col.ID) == "" {
			return nil, fmt.Errorf("column %d has no id", i+1)
		}
		if _, err := table.ParseKind(col.Kind); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.ID, err)
		}
	}
	return cfg, nil
}

// Apply overlays the configured columns on base. Columns the source does not
// have are skipped.
func (c *Config) Apply(base []table.Column) []table.Column {
	out := append([]table.Column(nil), base...)
	index := make(map[string]int, len(out))
	for i, col := range out {
		index[col.ID] = i
	}
	for _, override := range c.Columns {
		i, ok := index[override.ID]
		if !ok {
			slog.Warn("config names an unknown column", slog.String("column", override.ID))
			continue
		}
		col := &out[i]
		if override.Header != "" {
			col.Header = override.Header
		}
		if override.Group != "" {
			col.Group = override.Group
		}
		if override.Kind != "" {
			// validated in Decode
			col.Kind, _ = table.ParseKind(override.Kind)
		}
		if override.Hidden != nil {
			col.Hidden = *override.Hidden
		}
	}
	return out
}

func (c *Config) Sorting() []table.Sort {
	if len(c.Sort) == 0 {
		return nil
	}
	out := make([]table.Sort, 0, len(c.Sort))
	for _, s := range c.Sort {
		out = append(out, table.Sort{ID: s.ID, Desc: s.Desc})
	}
	return out
}

// FromTable describes the current layout of t, so it can be saved and edited
// as a starting point.
func FromTable(t *table.Table, delay time.Duration) *Config {
	cfg := &Config{
		Delay:  delay,
		Order:  t.ColumnOrder(),
		Global: t.GlobalFilter(),
	}
	for _, col := range t.Columns() {
		hidden := !t.ColumnVisible(col.ID)
		cfg.Columns = append(cfg.Columns, Column{
			ID:     col.ID,
			Header: col.Header,
			Group:  col.Group,
			Kind:   col.Kind.String(),
			Hidden: &hidden,
		})
	}
	for _, s := range t.Sorting() {
		cfg.Sort = append(cfg.Sort, Sort{ID: s.ID, Desc: s.Desc})
	}
	return cfg
}

// Save writes c as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
