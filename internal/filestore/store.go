// Package filestore reads, writes and deletes user documents on disk.
//
// Writes are not atomic: an existing file is copied to path+".bak" on a
// best-effort basis and then overwritten in place.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/schema"
)

// BackupSuffix is appended to a document path to form its backup path.
const BackupSuffix = ".bak"

// Options configures a Store.
type Options struct {
	MaxSize        int64
	DisableBackups bool
	Logger         pslog.Logger
}

// Store performs document I/O with a size ceiling and encoding fallback.
type Store struct {
	maxSize int64
	backups bool
	log     pslog.Logger
}

// New constructs a Store.
func New(opts Options) *Store {
	if opts.MaxSize <= 0 {
		opts.MaxSize = schema.DefaultMaxFileSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Store{maxSize: opts.MaxSize, backups: !opts.DisableBackups, log: logger}
}

// MaxSize returns the configured size ceiling in bytes.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Read loads a document. The size is checked before any bytes are read.
// Content that is not valid UTF-8 is decoded as ISO-8859-1 instead.
func (s *Store) Read(path string) (string, schema.ContentFormat, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", schema.ErrNotFound, path)
		}
		return "", "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("%w: %s is a directory", schema.ErrNotFound, path)
	}
	if info.Size() > s.maxSize {
		return "", "", fmt.Errorf("%w: %s is %s, maximum is %s", schema.ErrTooLarge, path, formatMB(info.Size()), formatMB(s.maxSize))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", schema.ErrNotFound, path)
		}
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	format := schema.FormatForPath(path)
	content, err := decodeUTF8(data)
	if err != nil {
		s.log.Debug("filestore decode fallback", "path", path, "encoding", "latin-1")
		content, err = decodeLatin1(data)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", path, err)
		}
	}
	s.log.Trace("filestore read ok", "path", path, "bytes", len(data), "format", format)
	return content, format, nil
}

// Write stores content at path. A backup of the previous file is attempted
// first; its failure never blocks the write.
func (s *Store) Write(path, content string, format schema.ContentFormat) error {
	if s.backups {
		if err := s.backup(path); err != nil {
			s.log.Debug("filestore backup skipped", "path", path, "err", err)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Warn("filestore write failed", "path", path, "err", err)
			return fmt.Errorf("%w: %s: %w", schema.ErrWriteFailed, path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.log.Warn("filestore write failed", "path", path, "err", err)
		return fmt.Errorf("%w: %s: %w", schema.ErrWriteFailed, path, err)
	}
	s.log.Trace("filestore write ok", "path", path, "bytes", len(content), "format", format)
	return nil
}

// Delete removes a document.
func (s *Store) Delete(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", schema.ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %w", schema.ErrDeleteFailed, path, err)
	}
	if err := os.Remove(path); err != nil {
		s.log.Warn("filestore delete failed", "path", path, "err", err)
		return fmt.Errorf("%w: %s: %w", schema.ErrDeleteFailed, path, err)
	}
	s.log.Debug("filestore delete ok", "path", path)
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *Store) backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+BackupSuffix, data, 0o644)
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", schema.ErrDecode
	}
	return string(data), nil
}

func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", schema.ErrDecode, err)
	}
	return string(out), nil
}

func formatMB(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
}

// Exists reports whether path names an existing regular file.
func (s *Store) Exists(path string) bool {
	return Exists(path)
}
