package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/internal/filestore"
	"pkt.systems/tabpad/internal/logx"
	"pkt.systems/tabpad/internal/memsurface"
	"pkt.systems/tabpad/internal/registry"
	"pkt.systems/tabpad/internal/settings"
	"pkt.systems/tabpad/schema"
	"pkt.systems/tabpad/search"
)

// service implements the core service behavior.
type service struct {
	cfg       schema.ServiceConfig
	files     FileStore
	registry  SessionRegistry
	surfaces  SurfaceFactory
	prompter  Prompter
	sink      EventSink
	logger    pslog.Logger
	tabs      map[schema.TabID]*tab
	order     []schema.TabID
	active    schema.TabID
	untitled  int
	restoring bool
}

// NewService constructs the core service implementation.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) (Service, error) {
	normalized, err := schema.NormalizeServiceConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg = normalized
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if deps.Files == nil {
		deps.Files = filestore.New(filestore.Options{
			MaxSize:        cfg.MaxFileSize,
			DisableBackups: cfg.DisableBackups,
			Logger:         logger,
		})
	}
	if deps.Registry == nil {
		deps.Registry = registry.New(settings.NewMemory(), registry.Options{MaxRecent: cfg.MaxRecentFiles, Logger: logger})
	}
	if deps.Surfaces == nil {
		deps.Surfaces = func(id schema.TabID) Surface { return memsurface.New(id) }
	}
	return &service{
		cfg:      cfg,
		files:    deps.Files,
		registry: deps.Registry,
		surfaces: deps.Surfaces,
		prompter: deps.Prompter,
		sink:     deps.EventSink,
		logger:   logger,
		tabs:     make(map[schema.TabID]*tab),
	}, nil
}

func (s *service) Restore(ctx context.Context, req schema.RestoreSessionRequest) (schema.RestoreSessionResponse, error) {
	if ctx == nil {
		return schema.RestoreSessionResponse{}, errors.New("missing context")
	}
	log := logx.Ctx(ctx)
	s.restoring = true
	defer func() { s.restoring = false }()

	snapshot, err := s.registry.Session()
	if err != nil {
		log.Warn("service session load failed", "err", err)
		snapshot = schema.SessionSnapshot{}
	}
	log.Info("service session restore start", "tabs", len(snapshot.OpenFilePaths), "active_index", snapshot.ActiveIndex)

	resp := schema.RestoreSessionResponse{}
	var opened []*tab
	for _, path := range snapshot.OpenFilePaths {
		if !s.files.Exists(path) {
			log.Info("service session restore skipped", "path", path, "reason", "missing")
			resp.Skipped = append(resp.Skipped, path)
			continue
		}
		t, existing, err := s.openPath(ctx, path)
		if err != nil {
			log.Warn("service session restore skipped", "path", path, "err", err)
			resp.Skipped = append(resp.Skipped, path)
			continue
		}
		if !existing {
			opened = append(opened, t)
		}
	}
	if len(opened) > 0 {
		target := opened[registry.ClampIndex(snapshot.ActiveIndex, len(opened))]
		s.activate(target.ID)
	}
	if len(s.order) == 0 {
		s.createUntitled()
	}
	for _, t := range opened {
		resp.Restored = append(resp.Restored, t.Snapshot(t.ID == s.active))
	}
	resp.ActiveTab = s.active
	s.restoring = false
	s.persist(log)
	log.Info("service session restored", "restored", len(resp.Restored), "skipped", len(resp.Skipped), "active", s.active)
	return resp, nil
}

func (s *service) NewTab(ctx context.Context, req schema.NewTabRequest) (schema.NewTabResponse, error) {
	if ctx == nil {
		return schema.NewTabResponse{}, errors.New("missing context")
	}
	t := s.createUntitled()
	s.persist(logx.Ctx(ctx))
	logx.WithTab(ctx, t.ID).Info("service tab created", "title", t.Name())
	return schema.NewTabResponse{Tab: t.Snapshot(true)}, nil
}

func (s *service) OpenFile(ctx context.Context, req schema.OpenFileRequest) (schema.OpenFileResponse, error) {
	if ctx == nil {
		return schema.OpenFileResponse{}, errors.New("missing context")
	}
	if strings.TrimSpace(req.Path) == "" {
		return schema.OpenFileResponse{}, fmt.Errorf("%w: path is required", schema.ErrInvalidRequest)
	}
	log := logx.WithPath(logx.Ctx(ctx), req.Path)
	t, existing, err := s.openPath(ctx, req.Path)
	if err != nil {
		log.Warn("service file open failed", "err", err)
		s.emitStatus(schema.StatusEvent{Message: fmt.Sprintf("Could not open %s: %v", filepath.Base(req.Path), err)})
		return schema.OpenFileResponse{}, err
	}
	s.activate(t.ID)
	s.persist(log)
	if existing {
		log.Info("service file already open", "tab", t.ID)
	} else {
		log.Info("service file opened", "tab", t.ID, "format", t.Format)
	}
	return schema.OpenFileResponse{Tab: t.Snapshot(true), AlreadyOpen: existing}, nil
}

// openPath returns the tab bound to path, loading it into a new tab when no
// tab holds it yet. New tabs are appended but not activated.
func (s *service) openPath(ctx context.Context, path string) (*tab, bool, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, false, err
	}
	if t := s.tabForPath(resolved); t != nil {
		return t, true, nil
	}
	s.emitStatus(schema.StatusEvent{Message: "Loading " + filepath.Base(resolved) + "..."})
	content, format, err := s.files.Read(resolved)
	if err != nil {
		return nil, false, err
	}
	id := newTabID()
	t := newTab(id, filepath.Base(resolved), s.surfaces(id))
	t.Rebind(resolved)
	t.Format = format
	if err := t.surface.SetSerializedContent(content, format); err != nil {
		return nil, false, err
	}
	t.surface.ClearDirty()
	t.MarkSaved(content)
	s.appendTab(t)
	if err := s.registry.AddRecent(resolved); err != nil {
		logx.WithPath(logx.Ctx(ctx), resolved).Warn("service recent update failed", "err", err)
	}
	s.emitStatus(schema.StatusEvent{TabID: id, Message: "Opened: " + resolved})
	return t, false, nil
}

func (s *service) CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error) {
	if ctx == nil {
		return schema.CloseTabResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.CloseTabResponse{}, err
	}
	log := logx.WithTabPath(ctx, t.ID, t.Path)
	ctx = logx.ContextWithTabLogger(ctx, log, t.ID)
	if len(s.order) <= 1 {
		log.Info("service tab close refused", "reason", "last tab")
		return schema.CloseTabResponse{Tab: t.Snapshot(t.ID == s.active), ActiveTab: s.active}, schema.ErrLastTab
	}
	resp := schema.CloseTabResponse{Choice: schema.CloseDiscard}
	if t.Dirty() {
		if s.prompter == nil {
			return schema.CloseTabResponse{}, schema.ErrNoPrompter
		}
		choice, err := s.prompter.ConfirmClose(ctx, t.Snapshot(t.ID == s.active))
		if err != nil {
			return schema.CloseTabResponse{}, err
		}
		resp.Choice = choice
		switch choice {
		case schema.CloseSave:
			if err := s.saveTab(ctx, t); err != nil {
				log.Warn("service tab close aborted", "err", err)
				resp.Tab = t.Snapshot(t.ID == s.active)
				resp.ActiveTab = s.active
				return resp, err
			}
		case schema.CloseDiscard:
		default:
			log.Info("service tab close canceled")
			resp.Tab = t.Snapshot(t.ID == s.active)
			resp.ActiveTab = s.active
			return resp, nil
		}
	}
	resp.Tab = s.removeTab(t.ID)
	resp.Closed = true
	resp.ActiveTab = s.active
	s.persist(log)
	log.Info("service tab closed", "active", s.active)
	return resp, nil
}

func (s *service) SaveTab(ctx context.Context, req schema.SaveTabRequest) (schema.SaveTabResponse, error) {
	if ctx == nil {
		return schema.SaveTabResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.SaveTabResponse{}, err
	}
	if err := s.saveTab(ctx, t); err != nil {
		return schema.SaveTabResponse{Tab: t.Snapshot(t.ID == s.active)}, err
	}
	return schema.SaveTabResponse{Tab: t.Snapshot(t.ID == s.active)}, nil
}

func (s *service) SaveTabAs(ctx context.Context, req schema.SaveTabAsRequest) (schema.SaveTabAsResponse, error) {
	if ctx == nil {
		return schema.SaveTabAsResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.SaveTabAsResponse{}, err
	}
	if err := s.saveTabAs(ctx, t, req.Path); err != nil {
		return schema.SaveTabAsResponse{Tab: t.Snapshot(t.ID == s.active)}, err
	}
	return schema.SaveTabAsResponse{Tab: t.Snapshot(t.ID == s.active)}, nil
}

func (s *service) saveTab(ctx context.Context, t *tab) error {
	if !t.Bound() {
		return s.saveTabAs(ctx, t, "")
	}
	return s.writeTab(ctx, t)
}

func (s *service) saveTabAs(ctx context.Context, t *tab, path string) error {
	log := logx.WithTab(ctx, t.ID)
	if strings.TrimSpace(path) == "" {
		if s.prompter == nil {
			return schema.ErrNoPrompter
		}
		chosen, ok, err := s.prompter.ChooseSavePath(ctx, t.Snapshot(t.ID == s.active), s.suggestedPath(t))
		if err != nil {
			return err
		}
		if !ok || strings.TrimSpace(chosen) == "" {
			log.Info("service tab save canceled")
			return schema.ErrSaveCanceled
		}
		path = chosen
	}
	if filepath.Ext(path) == "" {
		path += s.cfg.DefaultExtension
	}
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if other := s.tabForPath(resolved); other != nil && other.ID != t.ID {
		log.Warn("service tab save refused", "path", resolved, "open_in", other.ID)
		return fmt.Errorf("%w: %s", schema.ErrAlreadyOpen, resolved)
	}
	prevPath, prevFormat := t.Path, t.Format
	t.Rebind(resolved)
	if err := s.writeTab(ctx, t); err != nil {
		t.Path, t.Format = prevPath, prevFormat
		return err
	}
	return nil
}

func (s *service) writeTab(ctx context.Context, t *tab) error {
	log := logx.WithFormat(logx.WithTabPath(ctx, t.ID, t.Path), t.Format)
	content := t.surface.SerializedContent(t.Format)
	if err := s.files.Write(t.Path, content, t.Format); err != nil {
		log.Warn("service tab save failed", "err", err)
		s.emitStatus(schema.StatusEvent{TabID: t.ID, Message: fmt.Sprintf("Could not save %s: %v", filepath.Base(t.Path), err)})
		return err
	}
	t.MarkSaved(content)
	t.surface.ClearDirty()
	if err := s.registry.AddRecent(t.Path); err != nil {
		log.Warn("service recent update failed", "err", err)
	}
	s.emitTabEvent(schema.TabEventUpdated, t)
	s.emitStatus(schema.StatusEvent{TabID: t.ID, Message: "Saved: " + t.Path})
	s.persist(log)
	log.Info("service tab saved", "bytes", len(content))
	return nil
}

func (s *service) suggestedPath(t *tab) string {
	if t.Bound() {
		return t.Path
	}
	return t.placeholder + s.cfg.DefaultExtension
}

func (s *service) ActivateTab(ctx context.Context, req schema.ActivateTabRequest) (schema.ActivateTabResponse, error) {
	if ctx == nil {
		return schema.ActivateTabResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.ActivateTabResponse{}, err
	}
	s.activate(t.ID)
	s.persist(logx.WithTab(ctx, t.ID))
	return schema.ActivateTabResponse{Tab: t.Snapshot(true)}, nil
}

func (s *service) ActivateTabNumber(ctx context.Context, req schema.ActivateTabNumberRequest) (schema.ActivateTabResponse, error) {
	if ctx == nil {
		return schema.ActivateTabResponse{}, errors.New("missing context")
	}
	if req.Number < 1 || req.Number > 9 {
		return schema.ActivateTabResponse{}, fmt.Errorf("%w: tab number %d", schema.ErrInvalidRequest, req.Number)
	}
	if len(s.order) == 0 {
		return schema.ActivateTabResponse{}, schema.ErrNoTabs
	}
	index := req.Number - 1
	if req.Number == 9 {
		index = len(s.order) - 1
	}
	if index >= len(s.order) {
		return schema.ActivateTabResponse{}, fmt.Errorf("%w: no tab %d", schema.ErrTabNotFound, req.Number)
	}
	return s.ActivateTab(ctx, schema.ActivateTabRequest{TabID: s.order[index]})
}

func (s *service) MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error) {
	if ctx == nil {
		return schema.MoveTabResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.MoveTabResponse{}, err
	}
	from := s.indexOf(t.ID)
	to := registry.ClampIndex(req.Index, len(s.order))
	if from != to {
		s.order = removeTabID(s.order, t.ID)
		s.order = append(s.order, "")
		copy(s.order[to+1:], s.order[to:])
		s.order[to] = t.ID
		s.sinkTab(schema.TabEvent{Type: schema.TabEventMoved, Tab: t.Snapshot(t.ID == s.active), Index: to, ActiveTab: s.active})
		s.persist(logx.WithTab(ctx, t.ID))
		logx.WithTab(ctx, t.ID).Debug("service tab moved", "from", from, "to", to)
	}
	return schema.MoveTabResponse{Tabs: s.snapshots()}, nil
}

func (s *service) ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error) {
	if ctx == nil {
		return schema.ListTabsResponse{}, errors.New("missing context")
	}
	return schema.ListTabsResponse{Tabs: s.snapshots(), ActiveTab: s.active}, nil
}

func (s *service) DeleteCurrentFile(ctx context.Context, req schema.DeleteCurrentFileRequest) (schema.DeleteCurrentFileResponse, error) {
	if ctx == nil {
		return schema.DeleteCurrentFileResponse{}, errors.New("missing context")
	}
	t, err := s.lookup("")
	if err != nil {
		return schema.DeleteCurrentFileResponse{}, err
	}
	if !t.Bound() {
		return schema.DeleteCurrentFileResponse{}, schema.ErrNotBound
	}
	log := logx.WithTabPath(ctx, t.ID, t.Path)
	if !s.files.Exists(t.Path) {
		return schema.DeleteCurrentFileResponse{}, fmt.Errorf("%w: %s", schema.ErrNotFound, t.Path)
	}
	if s.prompter == nil {
		return schema.DeleteCurrentFileResponse{}, schema.ErrNoPrompter
	}
	ok, err := s.prompter.ConfirmDelete(ctx, t.Path)
	if err != nil {
		return schema.DeleteCurrentFileResponse{}, err
	}
	resp := schema.DeleteCurrentFileResponse{Path: t.Path}
	if !ok {
		log.Info("service file delete canceled")
		resp.Tab = t.Snapshot(true)
		resp.ActiveTab = s.active
		return resp, nil
	}
	if err := s.files.Delete(t.Path); err != nil {
		log.Warn("service file delete failed", "err", err)
		return schema.DeleteCurrentFileResponse{}, err
	}
	resp.Deleted = true
	resp.Tab = s.removeTab(t.ID)
	if len(s.order) == 0 {
		s.createUntitled()
	}
	resp.ActiveTab = s.active
	s.emitStatus(schema.StatusEvent{Message: "Deleted: " + resp.Path})
	s.persist(log)
	log.Info("service file deleted")
	return resp, nil
}

func (s *service) ContentChanged(ctx context.Context, req schema.ContentChangedRequest) (schema.ContentChangedResponse, error) {
	if ctx == nil {
		return schema.ContentChangedResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.ContentChangedResponse{}, err
	}
	wasDirty := t.Dirty()
	t.MarkDirty()
	if !wasDirty {
		s.emitTabEvent(schema.TabEventUpdated, t)
	}
	resp := schema.ContentChangedResponse{Tab: t.Snapshot(t.ID == s.active)}
	if t.search != nil {
		snap := s.refreshSearch(t, t.surface.CursorOffset())
		resp.Search = &snap
	}
	return resp, nil
}

func (s *service) CursorMoved(ctx context.Context, req schema.CursorMovedRequest) (schema.CursorMovedResponse, error) {
	if ctx == nil {
		return schema.CursorMovedResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.CursorMovedResponse{}, err
	}
	if t.search == nil {
		return schema.CursorMovedResponse{}, nil
	}
	snap := s.refreshSearch(t, req.Offset)
	return schema.CursorMovedResponse{Search: &snap}, nil
}

// refreshSearch recomputes matches and the counter after an edit or cursor
// move. The selection is left alone.
func (s *service) refreshSearch(t *tab, cursor int) schema.SearchSnapshot {
	t.search.result = search.Find(search.Query{
		Text:          t.surface.PlainText(),
		Pattern:       t.search.query,
		CaseSensitive: t.search.caseSensitive,
		Cursor:        cursor,
	})
	snap := t.searchSnapshot()
	s.sinkSearch(schema.SearchEvent{Search: snap})
	return snap
}

func (s *service) Find(ctx context.Context, req schema.FindRequest) (schema.FindResponse, error) {
	if ctx == nil {
		return schema.FindResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.FindResponse{}, err
	}
	if req.Query == "" {
		t.search = nil
		snap := schema.SearchSnapshot{TabID: t.ID, ActiveIndex: -1}
		s.sinkSearch(schema.SearchEvent{Search: snap})
		return schema.FindResponse{Search: snap}, nil
	}
	result := search.Find(search.Query{
		Text:          t.surface.PlainText(),
		Pattern:       req.Query,
		CaseSensitive: req.CaseSensitive,
		Cursor:        t.surface.CursorOffset(),
		Direction:     req.Direction,
	})
	if span, ok := result.ActiveSpan(); ok {
		t.surface.SetSelection(span.Start, span.End)
	}
	t.search = &searchState{query: req.Query, caseSensitive: req.CaseSensitive, result: result}
	snap := t.searchSnapshot()
	s.sinkSearch(schema.SearchEvent{Search: snap})
	logx.WithTab(ctx, t.ID).Trace("service search", "query_len", len(req.Query), "matches", len(result.Matches), "direction", req.Direction)
	return schema.FindResponse{Search: snap}, nil
}

func (s *service) ClearSearch(ctx context.Context, req schema.ClearSearchRequest) (schema.ClearSearchResponse, error) {
	if ctx == nil {
		return schema.ClearSearchResponse{}, errors.New("missing context")
	}
	t, err := s.lookup(req.TabID)
	if err != nil {
		return schema.ClearSearchResponse{}, err
	}
	t.search = nil
	s.sinkSearch(schema.SearchEvent{Search: schema.SearchSnapshot{TabID: t.ID, ActiveIndex: -1}})
	return schema.ClearSearchResponse{}, nil
}

func (s *service) Status(ctx context.Context, req schema.StatusRequest) (schema.StatusResponse, error) {
	if ctx == nil {
		return schema.StatusResponse{}, errors.New("missing context")
	}
	t, err := s.lookup("")
	if err != nil {
		return schema.StatusResponse{}, err
	}
	return schema.StatusResponse{Status: statusFor(t)}, nil
}

func (s *service) RecentFiles(ctx context.Context, req schema.RecentFilesRequest) (schema.RecentFilesResponse, error) {
	if ctx == nil {
		return schema.RecentFilesResponse{}, errors.New("missing context")
	}
	paths, err := s.registry.RecentFiles()
	if err != nil {
		return schema.RecentFilesResponse{}, err
	}
	return schema.RecentFilesResponse{Paths: paths}, nil
}

func (s *service) ClearRecentFiles(ctx context.Context, req schema.ClearRecentFilesRequest) (schema.ClearRecentFilesResponse, error) {
	if ctx == nil {
		return schema.ClearRecentFilesResponse{}, errors.New("missing context")
	}
	if err := s.registry.ClearRecent(); err != nil {
		return schema.ClearRecentFilesResponse{}, err
	}
	logx.Ctx(ctx).Info("service recent cleared")
	return schema.ClearRecentFilesResponse{}, nil
}

func (s *service) Quit(ctx context.Context, req schema.QuitRequest) (schema.QuitResponse, error) {
	if ctx == nil {
		return schema.QuitResponse{}, errors.New("missing context")
	}
	log := logx.Ctx(ctx)
	dirty := 0
	for _, id := range s.order {
		if s.tabs[id].Dirty() {
			dirty++
		}
	}
	resp := schema.QuitResponse{DirtyCount: dirty}
	if dirty > 0 {
		if s.prompter == nil {
			return resp, schema.ErrNoPrompter
		}
		ok, err := s.prompter.ConfirmQuit(ctx, dirty)
		if err != nil {
			return resp, err
		}
		if !ok {
			log.Info("service quit canceled", "dirty", dirty)
			return resp, nil
		}
	}
	if err := s.registry.SaveWindow(req.Window); err != nil {
		log.Warn("service window save failed", "err", err)
	}
	s.persist(log)
	resp.Accepted = true
	log.Info("service quit", "dirty", dirty, "tabs", len(s.order))
	return resp, nil
}

func (s *service) Surface(id schema.TabID) (Surface, error) {
	t, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return t.surface, nil
}

// lookup returns the tab for id, or the active tab when id is empty.
func (s *service) lookup(id schema.TabID) (*tab, error) {
	if id == "" {
		id = s.active
		if id == "" {
			return nil, schema.ErrNoTabs
		}
	}
	t := s.tabs[id]
	if t == nil {
		return nil, fmt.Errorf("%w: %s", schema.ErrTabNotFound, id)
	}
	return t, nil
}

func (s *service) tabForPath(path string) *tab {
	for _, id := range s.order {
		if t := s.tabs[id]; t.Path == path {
			return t
		}
	}
	return nil
}

func (s *service) indexOf(id schema.TabID) int {
	for i, current := range s.order {
		if current == id {
			return i
		}
	}
	return -1
}

func (s *service) createUntitled() *tab {
	s.untitled++
	id := newTabID()
	t := newTab(id, fmt.Sprintf("%s %d", s.cfg.UntitledPrefix, s.untitled), s.surfaces(id))
	s.appendTab(t)
	s.activate(id)
	return t
}

func (s *service) appendTab(t *tab) {
	s.tabs[t.ID] = t
	s.order = append(s.order, t.ID)
	s.sinkTab(schema.TabEvent{Type: schema.TabEventCreated, Tab: t.Snapshot(false), Index: len(s.order) - 1, ActiveTab: s.active})
}

func (s *service) activate(id schema.TabID) {
	if s.active == id {
		return
	}
	s.active = id
	t := s.tabs[id]
	s.sinkTab(schema.TabEvent{Type: schema.TabEventActivated, Tab: t.Snapshot(true), Index: s.indexOf(id), ActiveTab: id})
}

// removeTab drops a tab and, when it was active, focuses its right
// neighbour or else its left one.
func (s *service) removeTab(id schema.TabID) schema.TabSnapshot {
	t := s.tabs[id]
	index := s.indexOf(id)
	wasActive := s.active == id
	snap := t.Snapshot(false)
	delete(s.tabs, id)
	s.order = removeTabID(s.order, id)
	if wasActive {
		s.active = ""
	}
	s.sinkTab(schema.TabEvent{Type: schema.TabEventClosed, Tab: snap, Index: index, ActiveTab: s.active})
	if wasActive && len(s.order) > 0 {
		next := index
		if next >= len(s.order) {
			next = len(s.order) - 1
		}
		s.activate(s.order[next])
	}
	return snap
}

func (s *service) snapshots() []schema.TabSnapshot {
	out := make([]schema.TabSnapshot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tabs[id].Snapshot(id == s.active))
	}
	return out
}

// sessionSnapshot lists bound tabs in order with the active tab's position
// among them.
func (s *service) sessionSnapshot() schema.SessionSnapshot {
	snap := schema.SessionSnapshot{OpenFilePaths: []string{}}
	for _, id := range s.order {
		t := s.tabs[id]
		if !t.Bound() {
			continue
		}
		if id == s.active {
			snap.ActiveIndex = len(snap.OpenFilePaths)
		}
		snap.OpenFilePaths = append(snap.OpenFilePaths, t.Path)
	}
	return snap
}

func (s *service) persist(log pslog.Logger) {
	if s.restoring {
		return
	}
	if err := s.registry.SaveSession(s.sessionSnapshot()); err != nil {
		log.Warn("service session persist failed", "err", err)
	}
}

func (s *service) emitTabEvent(eventType schema.TabEventType, t *tab) {
	s.sinkTab(schema.TabEvent{Type: eventType, Tab: t.Snapshot(t.ID == s.active), Index: s.indexOf(t.ID), ActiveTab: s.active})
}

func (s *service) sinkTab(event schema.TabEvent) {
	if s.sink != nil {
		s.sink.OnTabEvent(event)
	}
}

func (s *service) sinkSearch(event schema.SearchEvent) {
	if s.sink != nil {
		s.sink.OnSearchEvent(event)
	}
}

func (s *service) emitStatus(event schema.StatusEvent) {
	if s.sink != nil {
		s.sink.OnStatusEvent(event)
	}
}

func (t *tab) searchSnapshot() schema.SearchSnapshot {
	if t.search == nil {
		return schema.SearchSnapshot{TabID: t.ID, ActiveIndex: -1}
	}
	r := t.search.result
	return schema.SearchSnapshot{
		TabID:         t.ID,
		Query:         t.search.query,
		CaseSensitive: t.search.caseSensitive,
		Matches:       r.Matches,
		ActiveIndex:   r.Active,
		Highlights:    r.Highlights,
		Counter:       r.Counter,
	}
}

func removeTabID(order []schema.TabID, id schema.TabID) []schema.TabID {
	out := order[:0]
	for _, current := range order {
		if current != id {
			out = append(out, current)
		}
	}
	return out
}

// resolvePath returns an absolute path with symlinks evaluated. A leaf that
// does not exist yet is joined onto its resolved parent so the path matches
// what a later open of the written file resolves to.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs)), nil
	}
	return abs, nil
}
