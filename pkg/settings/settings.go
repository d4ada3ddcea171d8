package settings

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/aretw0/testwrap/pkg/adapters/file"
	"github.com/aretw0/testwrap/pkg/ports"
)

// ErrNotFound is returned by Load when nothing was saved at the location yet.
var ErrNotFound = ports.ErrNotFound

// Settings is a bare persisted associative mapping.
type Settings map[string]any

// Result reports the outcome of an operation whose failure the caller chose not to propagate.
type Result struct {
	OK  bool
	Err error
}

func resultOf(err error) Result {
	return Result{OK: err == nil, Err: err}
}

// Update merges values into s.
func (s Settings) Update(values map[string]any) {
	for k, v := range values {
		s[k] = v
	}
}

// Encode serializes the whole mapping.
func Encode(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(map[string]any(s)); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a blob produced by Encode.
func Decode(data []byte) (Settings, error) {
	out := make(map[string]any)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return Settings(out), nil
}

// SaveTo writes the whole mapping to the backend.
func SaveTo(ctx context.Context, b ports.Backend, s Settings) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	return b.Write(ctx, data)
}

// LoadFrom reads the backend and merges its entries into s.
// Keys present in s but absent from the backend are kept.
func LoadFrom(ctx context.Context, b ports.Backend, s Settings) error {
	if s == nil {
		return errors.New("cannot load into a nil Settings")
	}
	data, err := b.Read(ctx)
	if err != nil {
		return err
	}
	loaded, err := Decode(data)
	if err != nil {
		return err
	}
	s.Update(loaded)
	return nil
}

// Save writes the whole mapping to the file at path.
func Save(path string, s Settings) error {
	return SaveTo(context.Background(), file.New(path), s)
}

// Load reads the file at path and merges its entries into s.
func Load(path string, s Settings) error {
	return LoadFrom(context.Background(), file.New(path), s)
}

// TrySave is Save without error propagation.
func TrySave(path string, s Settings) Result {
	return resultOf(Save(path, s))
}

// TryLoad is Load without error propagation.
func TryLoad(path string, s Settings) Result {
	return resultOf(Load(path, s))
}

// SetAndSave merges values into s and quietly saves it to path.
// The in-memory update always happens; the save outcome is only reported.
func SetAndSave(path string, s Settings, values map[string]any) Result {
	return SetAndSaveTo(context.Background(), file.New(path), s, values)
}

// SetAndSaveTo is SetAndSave against any backend.
func SetAndSaveTo(ctx context.Context, b ports.Backend, s Settings, values map[string]any) Result {
	s.Update(values)
	return resultOf(SaveTo(ctx, b, s))
}
