// Package settings persists a flat key/value mapping wholesale.
//
// A Settings value is a plain map. Save and Load move the whole mapping to and
// from a file; SaveTo and LoadFrom do the same against any ports.Backend
// (file, Redis, memory). The Try variants and SetAndSave never propagate a
// failure and return a Result describing it instead.
//
// The serialized form is encoding/gob. It is opaque, read and written as a
// whole, and carries no schema version. Values stored under interface keys must
// be gob-registered (basic types are registered already).
package settings
