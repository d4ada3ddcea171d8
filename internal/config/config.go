package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads run defaults from a YAML or JSON file (selected by extension, YAML by default).
//
// Commands accept three shapes:
//
//	command: "prog --flag"
//	command: ["prog", "--flag"]
//	command: {args: ["prog"], stdout_redirect: out.txt, expected_return_code: 3}
func Load(path string) (domain.Options, error) {
	var opts domain.Options

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return opts, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return opts, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &opts); err != nil {
		return opts, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return opts, nil
}

// Decode maps a generic document onto Options. Unknown keys are rejected.
func Decode(raw map[string]any, out *domain.Options) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       commandHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

var commandSpecType = reflect.TypeOf(domain.CommandSpec{})

// commandHook lets a command be written as a bare string or list.
func commandHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != commandSpecType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return map[string]any{"args": []any{v}}, nil
	case []any:
		return map[string]any{"args": v}, nil
	}
	return data, nil
}
