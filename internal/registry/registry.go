// Package registry keeps the recent files list, the open-tab session snapshot
// and the window placement blobs on top of a settings.Port.
package registry

import (
	"context"
	"path/filepath"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/internal/filestore"
	"pkt.systems/tabpad/internal/settings"
	"pkt.systems/tabpad/schema"
)

// Options configures a Registry.
type Options struct {
	MaxRecent int
	Logger    pslog.Logger
	// Exists reports whether a path should survive read-time filtering.
	// Defaults to filestore.Exists.
	Exists func(path string) bool
}

// Registry persists recent files and the session snapshot.
type Registry struct {
	port      settings.Port
	maxRecent int
	exists    func(string) bool
	log       pslog.Logger
}

// New constructs a Registry over port.
func New(port settings.Port, opts Options) *Registry {
	if opts.MaxRecent <= 0 {
		opts.MaxRecent = schema.DefaultMaxRecentFiles
	}
	if opts.Exists == nil {
		opts.Exists = filestore.Exists
	}
	logger := opts.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Registry{port: port, maxRecent: opts.MaxRecent, exists: opts.Exists, log: logger}
}

// MaxRecent returns the recent list cap.
func (r *Registry) MaxRecent() int {
	return r.maxRecent
}

// RecentFiles returns the recent list, most recent first, with missing files
// removed and the cap applied.
func (r *Registry) RecentFiles() ([]string, error) {
	paths, err := settings.Strings(r.port, settings.KeyRecentFiles, nil)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		key := filepath.Clean(path)
		if path == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		if !r.exists(path) {
			r.log.Trace("registry recent pruned", "path", path)
			continue
		}
		seen[key] = struct{}{}
		out = append(out, path)
		if len(out) == r.maxRecent {
			break
		}
	}
	return out, nil
}

// AddRecent moves path to the front of the recent list.
func (r *Registry) AddRecent(path string) error {
	if path == "" {
		return nil
	}
	current, err := settings.Strings(r.port, settings.KeyRecentFiles, nil)
	if err != nil {
		return err
	}
	key := filepath.Clean(path)
	next := make([]string, 0, r.maxRecent)
	next = append(next, path)
	for _, existing := range current {
		if len(next) == r.maxRecent {
			break
		}
		if existing == "" || filepath.Clean(existing) == key {
			continue
		}
		next = append(next, existing)
	}
	if err := settings.SetStrings(r.port, settings.KeyRecentFiles, next); err != nil {
		r.log.Warn("registry recent save failed", "path", path, "err", err)
		return err
	}
	return nil
}

// ClearRecent empties the recent list.
func (r *Registry) ClearRecent() error {
	return settings.SetStrings(r.port, settings.KeyRecentFiles, nil)
}

// SaveSession stores the open file paths and the active index into them.
// An out of range index is stored as 0.
func (r *Registry) SaveSession(snapshot schema.SessionSnapshot) error {
	active := snapshot.ActiveIndex
	if active < 0 || active >= len(snapshot.OpenFilePaths) {
		active = 0
	}
	if err := settings.SetStrings(r.port, settings.KeyOpenTabs, snapshot.OpenFilePaths); err != nil {
		r.log.Warn("registry session save failed", "err", err)
		return err
	}
	if err := settings.SetInt(r.port, settings.KeyActiveTabIndex, active); err != nil {
		r.log.Warn("registry session save failed", "err", err)
		return err
	}
	r.log.Trace("registry session saved", "tabs", len(snapshot.OpenFilePaths), "active", active)
	return nil
}

// Session returns the stored snapshot as written. Hosts filter missing paths
// while reopening and clamp the index with ClampIndex.
func (r *Registry) Session() (schema.SessionSnapshot, error) {
	paths, err := settings.Strings(r.port, settings.KeyOpenTabs, nil)
	if err != nil {
		return schema.SessionSnapshot{}, err
	}
	active, err := settings.Int(r.port, settings.KeyActiveTabIndex, 0)
	if err != nil {
		return schema.SessionSnapshot{}, err
	}
	return schema.SessionSnapshot{OpenFilePaths: paths, ActiveIndex: active}, nil
}

// ClearSession forgets the open tabs.
func (r *Registry) ClearSession() error {
	if err := r.port.Delete(settings.KeyOpenTabs); err != nil {
		return err
	}
	return r.port.Delete(settings.KeyActiveTabIndex)
}

// SaveWindow stores the host's window placement blobs.
func (r *Registry) SaveWindow(state schema.WindowState) error {
	if state.Geometry != nil {
		if err := r.port.Set(settings.KeyWindowGeometry, state.Geometry); err != nil {
			return err
		}
	}
	if state.State != nil {
		if err := r.port.Set(settings.KeyWindowState, state.State); err != nil {
			return err
		}
	}
	return nil
}

// Window returns the stored window placement blobs.
func (r *Registry) Window() (schema.WindowState, error) {
	geometry, err := settings.Bytes(r.port, settings.KeyWindowGeometry)
	if err != nil {
		return schema.WindowState{}, err
	}
	state, err := settings.Bytes(r.port, settings.KeyWindowState)
	if err != nil {
		return schema.WindowState{}, err
	}
	return schema.WindowState{Geometry: geometry, State: state}, nil
}

// ClampIndex bounds index to [0, n). It returns 0 for an empty list.
func ClampIndex(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
