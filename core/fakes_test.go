package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/tabpad/internal/filestore"
	"pkt.systems/tabpad/internal/memsurface"
	"pkt.systems/tabpad/internal/registry"
	"pkt.systems/tabpad/internal/settings"
	"pkt.systems/tabpad/schema"
)

var errInjected = errors.New("injected failure")

type fakePrompter struct {
	closeChoice schema.CloseChoice
	savePath    string
	saveOK      bool
	deleteOK    bool
	quitOK      bool

	closeCalls  int
	saveCalls   int
	deleteCalls int
	quitCalls   int
	lastDirty   int
	suggested   string
}

func (p *fakePrompter) ConfirmClose(ctx context.Context, tab schema.TabSnapshot) (schema.CloseChoice, error) {
	p.closeCalls++
	return p.closeChoice, nil
}

func (p *fakePrompter) ChooseSavePath(ctx context.Context, tab schema.TabSnapshot, suggested string) (string, bool, error) {
	p.saveCalls++
	p.suggested = suggested
	return p.savePath, p.saveOK, nil
}

func (p *fakePrompter) ConfirmDelete(ctx context.Context, path string) (bool, error) {
	p.deleteCalls++
	return p.deleteOK, nil
}

func (p *fakePrompter) ConfirmQuit(ctx context.Context, dirtyTabs int) (bool, error) {
	p.quitCalls++
	p.lastDirty = dirtyTabs
	return p.quitOK, nil
}

// flakyFiles wraps the real store and fails writes on demand.
type flakyFiles struct {
	*filestore.Store
	failWrite bool
}

func (f *flakyFiles) Write(path, content string, format schema.ContentFormat) error {
	if f.failWrite {
		return errors.Join(schema.ErrWriteFailed, errInjected)
	}
	return f.Store.Write(path, content, format)
}

// countingRegistry counts session snapshots written.
type countingRegistry struct {
	*registry.Registry
	sessionSaves int
}

func (r *countingRegistry) SaveSession(snapshot schema.SessionSnapshot) error {
	r.sessionSaves++
	return r.Registry.SaveSession(snapshot)
}

type recordingSink struct {
	tabs   []schema.TabEvent
	search []schema.SearchEvent
	status []schema.StatusEvent
}

func (s *recordingSink) OnTabEvent(event schema.TabEvent)       { s.tabs = append(s.tabs, event) }
func (s *recordingSink) OnSearchEvent(event schema.SearchEvent) { s.search = append(s.search, event) }
func (s *recordingSink) OnStatusEvent(event schema.StatusEvent) { s.status = append(s.status, event) }

type harness struct {
	svc      Service
	files    *flakyFiles
	registry *countingRegistry
	prompter *fakePrompter
	sink     *recordingSink
	dir      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithSettings(t, settings.NewMemory())
}

func newHarnessWithSettings(t *testing.T, port settings.Port) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		files:    &flakyFiles{Store: filestore.New(filestore.Options{})},
		registry: &countingRegistry{Registry: registry.New(port, registry.Options{})},
		prompter: &fakePrompter{},
		sink:     &recordingSink{},
		dir:      dir,
	}
	svc, err := NewService(schema.ServiceConfig{StateDir: filepath.Join(dir, "state")}, ServiceDeps{
		Files:     h.files,
		Registry:  h.registry,
		Prompter:  h.prompter,
		EventSink: h.sink,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	h.svc = svc
	return h
}

func (h *harness) restore(t *testing.T) schema.RestoreSessionResponse {
	t.Helper()
	resp, err := h.svc.Restore(context.Background(), schema.RestoreSessionRequest{})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	return resp
}

func (h *harness) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	resolved, err := resolvePath(path)
	if err != nil {
		t.Fatalf("resolve %s: %v", path, err)
	}
	return resolved
}

func (h *harness) open(t *testing.T, path string) schema.TabSnapshot {
	t.Helper()
	resp, err := h.svc.OpenFile(context.Background(), schema.OpenFileRequest{Path: path})
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	return resp.Tab
}

func (h *harness) tabs(t *testing.T) schema.ListTabsResponse {
	t.Helper()
	resp, err := h.svc.ListTabs(context.Background(), schema.ListTabsRequest{})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	return resp
}

func (h *harness) surface(t *testing.T, id schema.TabID) *memsurface.Surface {
	t.Helper()
	surface, err := h.svc.Surface(id)
	if err != nil {
		t.Fatalf("surface %s: %v", id, err)
	}
	mem, ok := surface.(*memsurface.Surface)
	if !ok {
		t.Fatalf("expected memsurface, got %T", surface)
	}
	return mem
}

// edit replaces a tab's text and notifies the service, as a host would.
func (h *harness) edit(t *testing.T, id schema.TabID, text string) schema.ContentChangedResponse {
	t.Helper()
	h.surface(t, id).SetText(text)
	resp, err := h.svc.ContentChanged(context.Background(), schema.ContentChangedRequest{TabID: id})
	if err != nil {
		t.Fatalf("content changed: %v", err)
	}
	return resp
}

func tabIDs(tabs []schema.TabSnapshot) []schema.TabID {
	out := make([]schema.TabID, 0, len(tabs))
	for _, tab := range tabs {
		out = append(out, tab.ID)
	}
	return out
}
