package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pkt.systems/tabpad/schema"
)

const sampleText = "The cat sat on the mat"

func TestFindSelectsActiveMatchAndWraps(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	ctx := context.Background()
	tab := h.tabs(t).Tabs[0]
	h.edit(t, tab.ID, sampleText)
	surface := h.surface(t, tab.ID)
	surface.MoveCursor(0)

	resp, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "at"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	wantSpans := []schema.Span{{Start: 5, End: 7}, {Start: 9, End: 11}, {Start: 20, End: 22}}
	if diff := cmp.Diff(wantSpans, resp.Search.Matches); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
	if resp.Search.Counter != (schema.MatchCounter{Current: 1, Total: 3}) {
		t.Fatalf("expected 1/3, got %+v", resp.Search.Counter)
	}
	if start, end := surface.Selection(); start != 5 || end != 7 {
		t.Fatalf("expected selection 5-7, got %d-%d", start, end)
	}

	steps := []struct {
		direction schema.SearchDirection
		current   int
		start     int
	}{
		{schema.DirectionForward, 2, 9},
		{schema.DirectionForward, 3, 20},
		{schema.DirectionForward, 1, 5},
		{schema.DirectionBackward, 3, 20},
		{schema.DirectionBackward, 2, 9},
	}
	for i, step := range steps {
		resp, err = h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "at", Direction: step.direction})
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if resp.Search.Counter.Current != step.current {
			t.Fatalf("step %d: expected %d/3, got %+v", i, step.current, resp.Search.Counter)
		}
		if start, _ := surface.Selection(); start != step.start {
			t.Fatalf("step %d: expected selection at %d, got %d", i, step.start, start)
		}
	}
}

func TestFindCaseSensitivity(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	ctx := context.Background()
	tab := h.tabs(t).Tabs[0]
	h.edit(t, tab.ID, sampleText)

	resp, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "The", CaseSensitive: true})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if resp.Search.Counter.Total != 1 {
		t.Fatalf("expected 1 case-sensitive match, got %+v", resp.Search.Counter)
	}
	resp, err = h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "The"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if resp.Search.Counter.Total != 2 {
		t.Fatalf("expected 2 case-insensitive matches, got %+v", resp.Search.Counter)
	}
	active := 0
	for _, hl := range resp.Search.Highlights {
		if hl.Active {
			active++
			if hl.Color != schema.HighlightActiveColor {
				t.Fatalf("unexpected active color %q", hl.Color)
			}
		} else if hl.Color != schema.HighlightMatchColor {
			t.Fatalf("unexpected match color %q", hl.Color)
		}
	}
	if active != 1 {
		t.Fatalf("expected one active highlight, got %d", active)
	}
}

func TestCursorMovedUpdatesCounterWithoutMovingSelection(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	ctx := context.Background()
	tab := h.tabs(t).Tabs[0]
	h.edit(t, tab.ID, sampleText)
	h.surface(t, tab.ID).MoveCursor(0)
	if _, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "at"}); err != nil {
		t.Fatalf("find: %v", err)
	}

	resp, err := h.svc.CursorMoved(ctx, schema.CursorMovedRequest{TabID: tab.ID, Offset: 15})
	if err != nil {
		t.Fatalf("cursor moved: %v", err)
	}
	if resp.Search == nil || resp.Search.Counter != (schema.MatchCounter{Current: 3, Total: 3}) {
		t.Fatalf("expected 3/3 after moving past the second match, got %+v", resp.Search)
	}
	if start, end := h.surface(t, tab.ID).Selection(); start != 5 || end != 7 {
		t.Fatalf("cursor notifications must not move the selection, got %d-%d", start, end)
	}
	last := h.sink.search[len(h.sink.search)-1]
	if last.Search.Counter.Current != 3 {
		t.Fatalf("expected search event with updated counter, got %+v", last)
	}
}

func TestCursorMovedWithoutSearchIsQuiet(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	tab := h.tabs(t).Tabs[0]
	resp, err := h.svc.CursorMoved(context.Background(), schema.CursorMovedRequest{TabID: tab.ID, Offset: 3})
	if err != nil {
		t.Fatalf("cursor moved: %v", err)
	}
	if resp.Search != nil || len(h.sink.search) != 0 {
		t.Fatalf("expected no search activity")
	}
}

func TestContentChangedRecountsMatches(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	ctx := context.Background()
	tab := h.tabs(t).Tabs[0]
	h.edit(t, tab.ID, sampleText)
	if _, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "at"}); err != nil {
		t.Fatalf("find: %v", err)
	}
	resp := h.edit(t, tab.ID, sampleText+" at last")
	if resp.Search == nil || resp.Search.Counter.Total != 4 {
		t.Fatalf("expected 4 matches after edit, got %+v", resp.Search)
	}
}

func TestEmptyQueryClearsHighlights(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	ctx := context.Background()
	tab := h.tabs(t).Tabs[0]
	h.edit(t, tab.ID, sampleText)
	if _, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "at"}); err != nil {
		t.Fatalf("find: %v", err)
	}
	resp, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: ""})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if resp.Search.Counter != (schema.MatchCounter{}) || len(resp.Search.Highlights) != 0 {
		t.Fatalf("expected cleared search, got %+v", resp.Search)
	}
	changed := h.edit(t, tab.ID, "at at")
	if changed.Search != nil {
		t.Fatalf("cleared search must not be recomputed on edit")
	}

	if _, err := h.svc.Find(ctx, schema.FindRequest{TabID: tab.ID, Query: "at"}); err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := h.svc.ClearSearch(ctx, schema.ClearSearchRequest{TabID: tab.ID}); err != nil {
		t.Fatalf("clear search: %v", err)
	}
	last := h.sink.search[len(h.sink.search)-1]
	if len(last.Search.Highlights) != 0 || last.Search.TabID != tab.ID {
		t.Fatalf("expected empty highlight event, got %+v", last)
	}
}

func TestFindNoMatches(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	tab := h.tabs(t).Tabs[0]
	resp, err := h.svc.Find(context.Background(), schema.FindRequest{TabID: tab.ID, Query: "longer than the document"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if resp.Search.Counter != (schema.MatchCounter{}) || resp.Search.ActiveIndex != -1 {
		t.Fatalf("expected 0/0, got %+v", resp.Search)
	}
}

func TestStatusReportsCursorAndCounts(t *testing.T) {
	h := newHarness(t)
	h.restore(t)
	tab := h.tabs(t).Tabs[0]
	h.edit(t, tab.ID, "hello world\nsecond line here")
	h.surface(t, tab.ID).MoveCursor(14)

	resp, err := h.svc.Status(context.Background(), schema.StatusRequest{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	want := schema.StatusSnapshot{
		TabID:    tab.ID,
		Title:    "●Untitled 1",
		Line:     2,
		Column:   3,
		Words:    5,
		Chars:    28,
		Encoding: "UTF-8",
	}
	if diff := cmp.Diff(want, resp.Status); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	again, _ := h.svc.Status(context.Background(), schema.StatusRequest{})
	if diff := cmp.Diff(resp, again); diff != "" {
		t.Fatalf("status must be idempotent (-first +second):\n%s", diff)
	}
}
