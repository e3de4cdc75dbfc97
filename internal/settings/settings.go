// Package settings provides the key-value store behind persisted editor state
// (recent files, open tabs, window placement).
package settings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fixed logical keys.
const (
	KeyWindowGeometry = "window/geometry"
	KeyWindowState    = "window/state"
	KeyRecentFiles    = "recent_files"
	KeyOpenTabs       = "open_tabs"
	KeyActiveTabIndex = "active_tab_index"
)

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// Port is the injected settings store. Values are opaque bytes; use the
// typed helpers for lists and integers.
type Port interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open constructs a store for the named backend. Path is ignored by the
// memory backend.
func Open(backend, path string) (Port, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBolt:
		return OpenBolt(path)
	case BackendJSON:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported settings backend %q", backend)
	}
}

// Strings reads a string list, returning def when the key is unset.
func Strings(p Port, key string, def []string) ([]string, error) {
	data, ok, err := p.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return def, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		// A bare string is accepted as a single-entry list.
		var single string
		if json.Unmarshal(data, &single) == nil {
			if single == "" {
				return nil, nil
			}
			return []string{single}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// SetStrings stores a string list.
func SetStrings(p Port, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return p.Set(key, data)
}

// Int reads an integer, returning def when the key is unset.
func Int(p Port, key string, def int) (int, error) {
	data, ok, err := p.Get(key)
	if err != nil {
		return 0, err
	}
	if !ok || len(data) == 0 {
		return def, nil
	}
	var out int
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// SetInt stores an integer.
func SetInt(p Port, key string, value int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.Set(key, data)
}

// Bytes reads an opaque value, returning nil when the key is unset.
func Bytes(p Port, key string) ([]byte, error) {
	data, ok, err := p.Get(key)
	if err != nil || !ok {
		return nil, err
	}
	return data, nil
}
