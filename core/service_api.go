package core

import (
	"context"

	"pkt.systems/tabpad/schema"
)

// Service is the host-agnostic API for the tab session and search. It is
// driven from a single event loop and is not safe for concurrent use.
type Service interface {
	Restore(ctx context.Context, req schema.RestoreSessionRequest) (schema.RestoreSessionResponse, error)
	NewTab(ctx context.Context, req schema.NewTabRequest) (schema.NewTabResponse, error)
	OpenFile(ctx context.Context, req schema.OpenFileRequest) (schema.OpenFileResponse, error)
	CloseTab(ctx context.Context, req schema.CloseTabRequest) (schema.CloseTabResponse, error)
	SaveTab(ctx context.Context, req schema.SaveTabRequest) (schema.SaveTabResponse, error)
	SaveTabAs(ctx context.Context, req schema.SaveTabAsRequest) (schema.SaveTabAsResponse, error)
	ActivateTab(ctx context.Context, req schema.ActivateTabRequest) (schema.ActivateTabResponse, error)
	ActivateTabNumber(ctx context.Context, req schema.ActivateTabNumberRequest) (schema.ActivateTabResponse, error)
	MoveTab(ctx context.Context, req schema.MoveTabRequest) (schema.MoveTabResponse, error)
	ListTabs(ctx context.Context, req schema.ListTabsRequest) (schema.ListTabsResponse, error)
	DeleteCurrentFile(ctx context.Context, req schema.DeleteCurrentFileRequest) (schema.DeleteCurrentFileResponse, error)
	ContentChanged(ctx context.Context, req schema.ContentChangedRequest) (schema.ContentChangedResponse, error)
	CursorMoved(ctx context.Context, req schema.CursorMovedRequest) (schema.CursorMovedResponse, error)
	Find(ctx context.Context, req schema.FindRequest) (schema.FindResponse, error)
	ClearSearch(ctx context.Context, req schema.ClearSearchRequest) (schema.ClearSearchResponse, error)
	Status(ctx context.Context, req schema.StatusRequest) (schema.StatusResponse, error)
	RecentFiles(ctx context.Context, req schema.RecentFilesRequest) (schema.RecentFilesResponse, error)
	ClearRecentFiles(ctx context.Context, req schema.ClearRecentFilesRequest) (schema.ClearRecentFilesResponse, error)
	Quit(ctx context.Context, req schema.QuitRequest) (schema.QuitResponse, error)
	// Surface returns the widget backing a tab so hosts can edit it.
	Surface(id schema.TabID) (Surface, error)
}
