package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/tabpad/internal/version"
	"pkt.systems/tabpad/schema"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		value   string
		want    schema.SearchDirection
		wantErr bool
	}{
		{value: "", want: schema.DirectionNone},
		{value: "none", want: schema.DirectionNone},
		{value: "next", want: schema.DirectionForward},
		{value: "Forward", want: schema.DirectionForward},
		{value: "prev", want: schema.DirectionBackward},
		{value: "backward", want: schema.DirectionBackward},
		{value: "sideways", wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseDirection(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseDirection(%q): expected error", tc.value)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseDirection(%q): %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("parseDirection(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestSearchCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(doc, []byte("The cat sat on the mat"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	out, err := execute(t, "", "-c", filepath.Join(dir, "absent.yaml"), "search", doc, "at", "--cursor", "6", "--direction", "next")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := strings.Join([]string{
		"2/3",
		"  [5-7] " + schema.HighlightMatchColor,
		"> [9-11] " + schema.HighlightActiveColor,
		"  [20-22] " + schema.HighlightMatchColor,
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("unexpected search output:\n%s", out)
	}
}

func TestConfigInitRespectsForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	out, err := execute(t, "", "-c", path, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("expected written path, got %q", out)
	}
	if _, err := execute(t, "", "-c", path, "config", "init"); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := execute(t, "", "-c", path, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}

func TestShellSavesAndPersistsSession(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)
	doc := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(doc, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(doc)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	input := "/cursor 5\n/type !\n/save\n/status\n/quit\n"
	out, err := execute(t, input, "-c", cfgPath, "shell", "-q", doc)
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, "saved: "+resolved) {
		t.Fatalf("expected save confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "Line 1, Col 7 | 1 words, 6 chars | UTF-8") {
		t.Fatalf("expected status line, got:\n%s", out)
	}
	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	if string(data) != "hello!" {
		t.Fatalf("unexpected saved content %q", data)
	}

	out, err = execute(t, "", "-c", cfgPath, "session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if strings.TrimSpace(out) != "* 1. "+resolved {
		t.Fatalf("unexpected session output %q", out)
	}
	out, err = execute(t, "", "-c", cfgPath, "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if strings.TrimSpace(out) != "1. "+resolved {
		t.Fatalf("unexpected recent output %q", out)
	}
	if _, err := execute(t, "", "-c", cfgPath, "recent", "--clear"); err != nil {
		t.Fatalf("recent --clear: %v", err)
	}
	if out, err = execute(t, "", "-c", cfgPath, "recent"); err != nil || out != "" {
		t.Fatalf("expected empty recent list, got %q (%v)", out, err)
	}
}

func TestShellPromptsBeforeClosingDirtyTab(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)
	input := "/new\n/type draft\n/close\nc\n/tabs\n/quit\ny\n"
	out, err := execute(t, input, "-c", cfgPath, "shell", "-q", "--ephemeral")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(out, "Save changes to Untitled 2?") {
		t.Fatalf("expected close prompt, got:\n%s", out)
	}
	if !strings.Contains(out, "close canceled") || !strings.Contains(out, "* 2. ●Untitled 2") {
		t.Fatalf("expected dirty tab kept open, got:\n%s", out)
	}
	if !strings.Contains(out, "1 tab(s) have unsaved changes") {
		t.Fatalf("expected quit prompt, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != version.Banner()+"\n" {
		t.Fatalf("unexpected version output %q", out)
	}
	out, err = execute(t, "", "version", "--verbose")
	if err != nil {
		t.Fatalf("version --verbose: %v", err)
	}
	if !strings.Contains(out, "module:   "+version.Module()) || !strings.Contains(out, "revision: ") || !strings.Contains(out, "built:    ") {
		t.Fatalf("unexpected verbose output %q", out)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	content := "config_version: 1\nstate_dir: " + filepath.Join(dir, "state") + "\nsettings:\n  backend: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
