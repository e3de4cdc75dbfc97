package schema

import (
	"testing"
	"time"
)

func TestNormalizeServiceConfigDefaults(t *testing.T) {
	cfg, err := NormalizeServiceConfig(ServiceConfig{StateDir: t.TempDir()})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Fatalf("expected max file size %d, got %d", DefaultMaxFileSize, cfg.MaxFileSize)
	}
	if cfg.MaxRecentFiles != 10 {
		t.Fatalf("expected 10 recent files, got %d", cfg.MaxRecentFiles)
	}
	if cfg.DefaultExtension != ".html" {
		t.Fatalf("expected .html default extension, got %q", cfg.DefaultExtension)
	}
	if cfg.UntitledPrefix != "Untitled" {
		t.Fatalf("expected Untitled prefix, got %q", cfg.UntitledPrefix)
	}
	if cfg.StatusInterval != 100*time.Millisecond {
		t.Fatalf("expected 100ms status interval, got %s", cfg.StatusInterval)
	}
}

func TestNormalizeServiceConfigAddsExtensionDot(t *testing.T) {
	cfg, err := NormalizeServiceConfig(ServiceConfig{StateDir: t.TempDir(), DefaultExtension: "txt"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.DefaultExtension != ".txt" {
		t.Fatalf("expected .txt, got %q", cfg.DefaultExtension)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want ContentFormat
	}{
		{path: "notes.html", want: FormatRichText},
		{path: "/tmp/NOTES.HTML", want: FormatRichText},
		{path: "notes.txt", want: FormatPlainText},
		{path: "notes.htm", want: FormatPlainText},
		{path: "README", want: FormatPlainText},
		{path: "", want: FormatPlainText},
	}
	for _, tc := range tests {
		if got := FormatForPath(tc.path); got != tc.want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
