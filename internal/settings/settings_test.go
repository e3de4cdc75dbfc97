package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openBackends(t *testing.T) map[string]Port {
	t.Helper()
	dir := t.TempDir()
	boltStore, err := Open(BackendBolt, filepath.Join(dir, "settings.db"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { _ = boltStore.Close() })
	fileStore, err := Open(BackendJSON, filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	memStore, err := Open(BackendMemory, "")
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	return map[string]Port{
		BackendBolt:   boltStore,
		BackendJSON:   fileStore,
		BackendMemory: memStore,
	}
}

func TestPortTypedValues(t *testing.T) {
	for name, port := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := Strings(port, KeyOpenTabs, []string{"default"})
			if err != nil {
				t.Fatalf("strings default: %v", err)
			}
			if diff := cmp.Diff([]string{"default"}, got); diff != "" {
				t.Fatalf("default mismatch (-want +got):\n%s", diff)
			}
			want := []string{"/tmp/a.txt", "/tmp/b.html"}
			if err := SetStrings(port, KeyOpenTabs, want); err != nil {
				t.Fatalf("set strings: %v", err)
			}
			got, err = Strings(port, KeyOpenTabs, nil)
			if err != nil {
				t.Fatalf("strings: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("strings mismatch (-want +got):\n%s", diff)
			}

			idx, err := Int(port, KeyActiveTabIndex, 7)
			if err != nil {
				t.Fatalf("int default: %v", err)
			}
			if idx != 7 {
				t.Fatalf("expected default 7, got %d", idx)
			}
			if err := SetInt(port, KeyActiveTabIndex, 2); err != nil {
				t.Fatalf("set int: %v", err)
			}
			if idx, err = Int(port, KeyActiveTabIndex, 0); err != nil || idx != 2 {
				t.Fatalf("expected 2, got %d (%v)", idx, err)
			}

			if err := port.Delete(KeyOpenTabs); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, err := port.Get(KeyOpenTabs); err != nil || ok {
				t.Fatalf("expected key removed, ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestPortOpaqueBytes(t *testing.T) {
	for name, port := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			blob := []byte{0x01, 0xff, 0x00, 'g'}
			if err := port.Set(KeyWindowGeometry, blob); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := Bytes(port, KeyWindowGeometry)
			if err != nil {
				t.Fatalf("bytes: %v", err)
			}
			if diff := cmp.Diff(blob, got); diff != "" {
				t.Fatalf("blob mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStringsAcceptsBareString(t *testing.T) {
	port := NewMemory()
	if err := port.Set(KeyRecentFiles, []byte(`"/tmp/only.txt"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := Strings(port, KeyRecentFiles, nil)
	if err != nil {
		t.Fatalf("strings: %v", err)
	}
	if diff := cmp.Diff([]string{"/tmp/only.txt"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := SetStrings(store, KeyRecentFiles, []string{"/a"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	store, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	got, err := Strings(store, KeyRecentFiles, nil)
	if err != nil {
		t.Fatalf("strings: %v", err)
	}
	if diff := cmp.Diff([]string{"/a"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := SetInt(store, KeyActiveTabIndex, 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	idx, err := Int(reopened, KeyActiveTabIndex, 0)
	if err != nil {
		t.Fatalf("int: %v", err)
	}
	if idx != 3 {
		t.Fatalf("expected 3, got %d", idx)
	}
}

func TestFilePreservesOpaqueBytesAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	values := map[string][]byte{
		KeyWindowGeometry: []byte(`{ "x": 1 }`),
		KeyWindowState:    []byte(`{"html":"<b>&</b>"}`),
		KeyRecentFiles:    []byte(`["/a","/b"]`),
	}
	for key, value := range values {
		if err := store.Set(key, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	for key, want := range values {
		got, ok, err := reopened.Get(key)
		if err != nil || !ok {
			t.Fatalf("get %s: ok=%v err=%v", key, ok, err)
		}
		if diff := cmp.Diff(string(want), string(got)); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestFileLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("write bad json: %v", err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open("registry", ""); err == nil {
		t.Fatalf("expected unsupported backend error")
	}
}
