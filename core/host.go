package core

import (
	"context"

	"pkt.systems/tabpad/schema"
)

// Surface is the host's editable text widget for one tab. Offsets are rune
// offsets into PlainText.
type Surface interface {
	PlainText() string
	SerializedContent(format schema.ContentFormat) string
	SetSerializedContent(content string, format schema.ContentFormat) error
	Dirty() bool
	ClearDirty()
	// CursorOffset returns the selection start.
	CursorOffset() int
	SetSelection(start, end int)
}

// SurfaceFactory creates the widget backing a new tab.
type SurfaceFactory func(id schema.TabID) Surface

// Prompter asks the user to decide on destructive or path-selecting steps.
type Prompter interface {
	ConfirmClose(ctx context.Context, tab schema.TabSnapshot) (schema.CloseChoice, error)
	// ChooseSavePath returns ok=false when the user dismisses the prompt.
	ChooseSavePath(ctx context.Context, tab schema.TabSnapshot, suggested string) (path string, ok bool, err error)
	ConfirmDelete(ctx context.Context, path string) (bool, error)
	ConfirmQuit(ctx context.Context, dirtyTabs int) (bool, error)
}

// FileStore reads and writes user documents.
type FileStore interface {
	Read(path string) (string, schema.ContentFormat, error)
	Write(path, content string, format schema.ContentFormat) error
	Delete(path string) error
	Exists(path string) bool
}

// SessionRegistry persists recent files, the open-tab snapshot and window
// placement.
type SessionRegistry interface {
	RecentFiles() ([]string, error)
	AddRecent(path string) error
	ClearRecent() error
	SaveSession(snapshot schema.SessionSnapshot) error
	Session() (schema.SessionSnapshot, error)
	SaveWindow(state schema.WindowState) error
}
