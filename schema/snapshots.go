package schema

// TabSnapshot is a read-only view of tab state for hosts.
type TabSnapshot struct {
	ID     TabID
	Title  string
	Path   string
	Format ContentFormat
	Dirty  bool
	Active bool
}

// Bound reports whether the tab is associated with a file on disk.
func (t TabSnapshot) Bound() bool {
	return t.Path != ""
}

// SessionSnapshot is the persisted record of open file-backed tabs.
type SessionSnapshot struct {
	OpenFilePaths []string
	ActiveIndex   int
}

// WindowState holds the opaque window placement blobs owned by the host.
type WindowState struct {
	Geometry []byte
	State    []byte
}

// Highlight colors for search matches.
const (
	HighlightActiveColor = "#FF8C00"
	HighlightMatchColor  = "#FFD700"
)

// Highlight is one search match the host should paint.
type Highlight struct {
	Span   Span
	Active bool
	Color  string
}

// MatchCounter is the "current/total" indicator shown next to the search box.
// Current is 1-based; both are zero when there are no matches.
type MatchCounter struct {
	Current int
	Total   int
}

// SearchSnapshot reports the search state of one tab.
type SearchSnapshot struct {
	TabID         TabID
	Query         string
	CaseSensitive bool
	Matches       []Span
	ActiveIndex   int
	Highlights    []Highlight
	Counter       MatchCounter
}

// StatusSnapshot is the periodic status-bar view of the active tab.
type StatusSnapshot struct {
	TabID    TabID
	Title    string
	Path     string
	Line     int
	Column   int
	Words    int
	Chars    int
	Encoding string
}
