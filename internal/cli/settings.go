package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/testwrap/internal/presentation/tui"
	"github.com/aretw0/testwrap/pkg/history"
	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/aretw0/testwrap/pkg/settings"
	"gopkg.in/yaml.v3"
)

// withSettings opens location, loads its mapping and hands both to fn.
// A location with nothing saved yet yields an empty mapping.
func withSettings(ctx context.Context, location string, fn func(ports.Backend, settings.Settings) error) error {
	backend, err := openStore(location)
	if err != nil {
		return err
	}
	defer settings.Close(backend)

	s := settings.Settings{}
	if err := settings.LoadFrom(ctx, backend, s); err != nil && !errors.Is(err, settings.ErrNotFound) {
		return err
	}
	return fn(backend, s)
}

// SettingsGet prints the value stored under key.
func SettingsGet(ctx context.Context, w io.Writer, location, key string) error {
	return withSettings(ctx, location, func(_ ports.Backend, s settings.Settings) error {
		v, ok := s[key]
		if !ok {
			return fmt.Errorf("key %q not set in %s", key, location)
		}
		fmt.Fprintln(w, formatValue(v))
		return nil
	})
}

// SettingsSet parses KEY=VALUE pairs and saves them. Values are read as YAML
// scalars, so numbers and booleans keep their type.
func SettingsSet(ctx context.Context, location string, pairs []string) error {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid setting %q: expected KEY=VALUE", pair)
		}
		values[key] = parseValue(raw)
	}

	return withSettings(ctx, location, func(b ports.Backend, s settings.Settings) error {
		return settings.SetAndSaveTo(ctx, b, s, values).Err
	})
}

// SettingsUnset removes keys and saves the mapping.
func SettingsUnset(ctx context.Context, location string, keys []string) error {
	return withSettings(ctx, location, func(b ports.Backend, s settings.Settings) error {
		for _, k := range keys {
			delete(s, k)
		}
		return settings.SaveTo(ctx, b, s)
	})
}

// SettingsList prints every entry as KEY=VALUE, sorted by key.
func SettingsList(ctx context.Context, w io.Writer, location string) error {
	return withSettings(ctx, location, func(_ ports.Backend, s settings.Settings) error {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s=%s\n", k, formatValue(s[k]))
		}
		return nil
	})
}

// ShowHistory prints the runs recorded at location as a table.
func ShowHistory(ctx context.Context, w io.Writer, location string) error {
	backend, err := openStore(location)
	if err != nil {
		return err
	}
	defer settings.Close(backend)

	records, err := history.List(ctx, backend)
	if err != nil {
		return err
	}
	tui.PrintHistory(w, records)
	return nil
}

// parseValue keeps scalar YAML types and falls back to the raw string.
// Only scalars are kept because the settings encoding needs concrete types.
func parseValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case int, float64, bool, string:
		return v
	default:
		return raw
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case history.Record:
		status := "FAIL"
		if t.Passed {
			status = "PASS"
		}
		return fmt.Sprintf("%s rc=%d %s", status, t.ExitCode, t.Duration)
	default:
		return fmt.Sprint(v)
	}
}
