package core

import (
	"path/filepath"

	"pkt.systems/tabpad/schema"
	"pkt.systems/tabpad/search"
)

const dirtyMarker = "●"

// tab tracks the state of a single open document.
type tab struct {
	ID          schema.TabID
	Path        string
	Format      schema.ContentFormat
	placeholder string
	dirty       bool
	saved       string
	surface     Surface
	search      *searchState
}

type searchState struct {
	query         string
	caseSensitive bool
	result        search.Result
}

func newTab(id schema.TabID, placeholder string, surface Surface) *tab {
	return &tab{
		ID:          id,
		Format:      schema.FormatPlainText,
		placeholder: placeholder,
		surface:     surface,
	}
}

// MarkDirty flags unsaved changes.
func (t *tab) MarkDirty() {
	t.dirty = true
}

// MarkSaved clears the dirty flag and records the saved content.
func (t *tab) MarkSaved(content string) {
	t.dirty = false
	t.saved = content
}

// Dirty reports whether the tab has unsaved changes.
func (t *tab) Dirty() bool {
	return t.dirty
}

// Bound reports whether the tab has a file on disk.
func (t *tab) Bound() bool {
	return t.Path != ""
}

// Rebind points the tab at a new file and recomputes its format.
func (t *tab) Rebind(path string) {
	t.Path = path
	t.Format = schema.FormatForPath(path)
}

// Name returns the base file name or the placeholder.
func (t *tab) Name() string {
	if t.Path != "" {
		return filepath.Base(t.Path)
	}
	return t.placeholder
}

// DisplayName returns the tab title, prefixed with a marker when dirty.
func (t *tab) DisplayName() string {
	if t.dirty {
		return dirtyMarker + t.Name()
	}
	return t.Name()
}

// Snapshot returns a host-friendly view of the tab.
func (t *tab) Snapshot(active bool) schema.TabSnapshot {
	return schema.TabSnapshot{
		ID:     t.ID,
		Title:  t.DisplayName(),
		Path:   t.Path,
		Format: t.Format,
		Dirty:  t.dirty,
		Active: active,
	}
}
