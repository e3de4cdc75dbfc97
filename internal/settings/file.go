package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pkt.systems/pslog"
)

// File is a Port that keeps all keys in one JSON document. Every Set rewrites
// the document through a temp file and rename.
type File struct {
	path string
	log  pslog.Logger
	mu   sync.Mutex
	doc  fileDocument
}

// fileDocument splits JSON values from opaque blobs so both round-trip byte
// for byte. Only compact JSON lands in Values; anything else is a blob.
type fileDocument struct {
	Values map[string]json.RawMessage `json:"values,omitempty"`
	Blobs  map[string][]byte          `json:"blobs,omitempty"`
}

// OpenFile loads (or prepares) the JSON settings document at path.
func OpenFile(path string) (*File, error) {
	return OpenFileWithLogger(path, nil)
}

// OpenFileWithLogger loads the JSON settings document with logging.
func OpenFileWithLogger(path string, logger pslog.Logger) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("settings path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("settings_path", path)
	}
	f := &File{path: path, log: logger}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Get returns the stored value.
func (f *File) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.doc.Values[key]; ok {
		return append([]byte(nil), v...), true, nil
	}
	if v, ok := f.doc.Blobs[key]; ok {
		return append([]byte(nil), v...), true, nil
	}
	return nil, false, nil
}

// Set stores a value and flushes the document. Values that are not compact
// JSON are kept as base64 blobs.
func (f *File) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.doc.clone()
	f.doc.remove(key)
	value = append([]byte(nil), value...)
	if isCompactJSON(value) {
		if f.doc.Values == nil {
			f.doc.Values = make(map[string]json.RawMessage)
		}
		f.doc.Values[key] = json.RawMessage(value)
	} else {
		if f.doc.Blobs == nil {
			f.doc.Blobs = make(map[string][]byte)
		}
		f.doc.Blobs[key] = value
	}
	if err := f.saveLocked(); err != nil {
		f.doc = prev
		return err
	}
	return nil
}

// Delete removes a key and flushes the document.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.doc.remove(key) {
		return nil
	}
	return f.saveLocked()
}

// Close is a no-op; every mutation is already flushed.
func (f *File) Close() error {
	return nil
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if f.log != nil {
				f.log.Debug("settings load miss")
			}
			return nil
		}
		if f.log != nil {
			f.log.Warn("settings load failed", "err", err)
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &f.doc); err != nil {
		if f.log != nil {
			f.log.Warn("settings load failed", "err", err)
		}
		return err
	}
	if f.log != nil {
		f.log.Debug("settings load ok", "keys", f.doc.len())
	}
	return nil
}

func (f *File) saveLocked() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f.doc); err != nil {
		return f.saveFailed(err)
	}
	data := buf.Bytes()
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "settings-*.json")
	if err != nil {
		return f.saveFailed(err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return f.saveFailed(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return f.saveFailed(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return f.saveFailed(err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return f.saveFailed(err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return f.saveFailed(err)
	}
	if f.log != nil {
		f.log.Trace("settings save ok", "keys", f.doc.len())
	}
	return nil
}

func (f *File) saveFailed(err error) error {
	if f.log != nil {
		f.log.Warn("settings save failed", "err", err)
	}
	return err
}

// isCompactJSON reports whether value is JSON the encoder writes back
// unchanged.
func isCompactJSON(value []byte) bool {
	if len(value) == 0 || !json.Valid(value) {
		return false
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return false
	}
	return bytes.Equal(compact.Bytes(), value)
}

func (d *fileDocument) remove(key string) bool {
	_, inValues := d.Values[key]
	_, inBlobs := d.Blobs[key]
	delete(d.Values, key)
	delete(d.Blobs, key)
	return inValues || inBlobs
}

func (d fileDocument) clone() fileDocument {
	out := fileDocument{}
	if d.Values != nil {
		out.Values = make(map[string]json.RawMessage, len(d.Values))
		for k, v := range d.Values {
			out.Values[k] = v
		}
	}
	if d.Blobs != nil {
		out.Blobs = make(map[string][]byte, len(d.Blobs))
		for k, v := range d.Blobs {
			out.Blobs[k] = v
		}
	}
	return out
}

func (d fileDocument) len() int {
	return len(d.Values) + len(d.Blobs)
}
