package schema

// Session lifecycle.

// RestoreSessionRequest describes a request to reopen the last session.
type RestoreSessionRequest struct{}

// RestoreSessionResponse reports which paths were reopened or skipped.
type RestoreSessionResponse struct {
	Restored  []TabSnapshot
	Skipped   []string
	ActiveTab TabID
}

// QuitRequest describes a request to end the session.
type QuitRequest struct {
	Window WindowState
}

// QuitResponse reports whether the host may exit.
type QuitResponse struct {
	Accepted   bool
	DirtyCount int
}

// Tab lifecycle.

// NewTabRequest describes a request to create an unsaved tab.
type NewTabRequest struct{}

// NewTabResponse reports the created tab.
type NewTabResponse struct {
	Tab TabSnapshot
}

// OpenFileRequest describes a request to open a file in a tab.
type OpenFileRequest struct {
	Path string
}

// OpenFileResponse reports the tab showing the file.
type OpenFileResponse struct {
	Tab         TabSnapshot
	AlreadyOpen bool
}

// CloseTabRequest describes a request to close a tab.
type CloseTabRequest struct {
	TabID TabID
}

// CloseTabResponse reports whether the tab closed.
type CloseTabResponse struct {
	Tab       TabSnapshot
	Closed    bool
	Choice    CloseChoice
	ActiveTab TabID
}

// SaveTabRequest describes a request to save a tab to its bound path.
type SaveTabRequest struct {
	TabID TabID
}

// SaveTabResponse reports the saved tab.
type SaveTabResponse struct {
	Tab TabSnapshot
}

// SaveTabAsRequest describes a request to save a tab under a new path.
// An empty Path asks the host prompter for one.
type SaveTabAsRequest struct {
	TabID TabID
	Path  string
}

// SaveTabAsResponse reports the rebound tab.
type SaveTabAsResponse struct {
	Tab TabSnapshot
}

// ActivateTabRequest describes a request to focus a tab.
type ActivateTabRequest struct {
	TabID TabID
}

// ActivateTabResponse reports the activated tab.
type ActivateTabResponse struct {
	Tab TabSnapshot
}

// ActivateTabNumberRequest focuses a tab by its 1-based number; 9 is the last tab.
type ActivateTabNumberRequest struct {
	Number int
}

// MoveTabRequest describes a user reorder of a tab.
type MoveTabRequest struct {
	TabID TabID
	Index int
}

// MoveTabResponse reports the new tab order.
type MoveTabResponse struct {
	Tabs []TabSnapshot
}

// ListTabsRequest describes a request to list tabs.
type ListTabsRequest struct{}

// ListTabsResponse reports tabs in visual order and the active tab.
type ListTabsResponse struct {
	Tabs      []TabSnapshot
	ActiveTab TabID
}

// DeleteCurrentFileRequest describes a request to delete the active tab's file.
type DeleteCurrentFileRequest struct{}

// DeleteCurrentFileResponse reports the deleted file and removed tab.
type DeleteCurrentFileResponse struct {
	Deleted   bool
	Path      string
	Tab       TabSnapshot
	ActiveTab TabID
}

// Host notifications.

// ContentChangedRequest notifies the core that a tab's text changed.
type ContentChangedRequest struct {
	TabID TabID
}

// ContentChangedResponse reports the tab after the change.
type ContentChangedResponse struct {
	Tab    TabSnapshot
	Search *SearchSnapshot
}

// CursorMovedRequest notifies the core that a tab's cursor moved.
type CursorMovedRequest struct {
	TabID  TabID
	Offset int
}

// CursorMovedResponse reports the live search counter, if a search is active.
type CursorMovedResponse struct {
	Search *SearchSnapshot
}

// Search.

// FindRequest runs an incremental search or navigation in a tab.
type FindRequest struct {
	TabID         TabID
	Query         string
	CaseSensitive bool
	Direction     SearchDirection
}

// FindResponse reports matches, highlights and the counter.
type FindResponse struct {
	Search SearchSnapshot
}

// ClearSearchRequest drops a tab's search highlights.
type ClearSearchRequest struct {
	TabID TabID
}

// ClearSearchResponse is returned by ClearSearch.
type ClearSearchResponse struct{}

// Status and registry.

// StatusRequest asks for the active tab's status bar view.
type StatusRequest struct{}

// StatusResponse reports the active tab's status bar view.
type StatusResponse struct {
	Status StatusSnapshot
}

// RecentFilesRequest asks for the recent files list.
type RecentFilesRequest struct{}

// RecentFilesResponse reports recent files, most recent first.
type RecentFilesResponse struct {
	Paths []string
}

// ClearRecentFilesRequest clears the recent files list.
type ClearRecentFilesRequest struct{}

// ClearRecentFilesResponse is returned by ClearRecentFiles.
type ClearRecentFilesResponse struct{}
