// Package yaml loads CLI flag defaults from YAML configuration files.
//
// A file maps flag names to values. Keys may use dashes or underscores.
// A top-level mapping named after a command holds values for that command
// only and takes precedence over top-level keys:
//
//	concurrency: 20
//	crawl:
//	  timeout: 5s
//	  max_visited: 1000
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// Loader is a kong.ConfigurationLoader for YAML files.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &resolver{values: values}, nil
}

type resolver struct {
	values map[string]any
}

func (r *resolver) Validate(app *kong.Application) error {
	return nil
}

func (r *resolver) Resolve(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := r.values[parent.Command.Name].(map[string]any); ok {
			if v, ok := lookup(section, flag.Name); ok {
				return v, nil
			}
		}
	}
	if v, ok := lookup(r.values, flag.Name); ok {
		return v, nil
	}
	return nil, nil
}

// lookup finds a scalar value for a flag name, trying the dashed and
// underscored spellings.
func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		v, ok := values[key]
		if !ok || v == nil {
			continue
		}
		switch v := v.(type) {
		case map[string]any:
			continue
		case []any:
			parts := make([]string, len(v))
			for i, p := range v {
				parts[i] = fmt.Sprint(p)
			}
			return strings.Join(parts, ","), true
		default:
			return fmt.Sprint(v), true
		}
	}
	return nil, false
}
