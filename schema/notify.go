package schema

// TabEventType describes tab lifecycle or state changes.
type TabEventType string

const (
	// TabEventCreated indicates a tab was created.
	TabEventCreated TabEventType = "created"
	// TabEventClosed indicates a tab was closed.
	TabEventClosed TabEventType = "closed"
	// TabEventActivated indicates a tab became active.
	TabEventActivated TabEventType = "activated"
	// TabEventUpdated indicates a tab title, binding or dirty state changed.
	TabEventUpdated TabEventType = "updated"
	// TabEventMoved indicates a tab changed position.
	TabEventMoved TabEventType = "moved"
)

// TabEvent represents a change to a tab or the tab list.
type TabEvent struct {
	Type      TabEventType
	Tab       TabSnapshot
	Index     int
	ActiveTab TabID
}

// SearchEvent carries the highlight set the host should render for a tab.
// An empty Highlights slice clears all search highlighting.
type SearchEvent struct {
	Search SearchSnapshot
}

// StatusEvent carries a transient status-bar message.
type StatusEvent struct {
	TabID   TabID
	Message string
}
