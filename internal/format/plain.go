// Package format renders session events and search highlights as plain text
// lines for line-oriented hosts.
package format

import (
	"fmt"
	"strings"

	"pkt.systems/tabpad/internal/eventbus"
	"pkt.systems/tabpad/schema"
)

// Line markers.
const (
	StatusMarker    = "» "
	ActiveMarker    = "> "
	InactiveMarker  = "  "
	dirtyTitleGlyph = "●"
)

// PlainRenderer formats events as plain text lines.
type PlainRenderer struct {
	// ShowSearch also renders search events; line hosts usually print the
	// counter from the command result instead.
	ShowSearch bool
}

// NewPlainRenderer returns a default plain-text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// FormatEvent converts a bus event into user-facing lines. Events that need
// no output yield nil.
func (p *PlainRenderer) FormatEvent(event eventbus.Event) []string {
	switch event.Type {
	case eventbus.EventStatus:
		return markLines(StatusMarker, splitLines(event.Status.Message))
	case eventbus.EventTab:
		return p.formatTab(event.Tab)
	case eventbus.EventSearch:
		if !p.ShowSearch {
			return nil
		}
		return p.formatSearch(event.Search.Search)
	default:
		return nil
	}
}

func (p *PlainRenderer) formatTab(event schema.TabEvent) []string {
	title := strings.TrimPrefix(event.Tab.Title, dirtyTitleGlyph)
	switch event.Type {
	case schema.TabEventCreated:
		return []string{StatusMarker + "tab created: " + title}
	case schema.TabEventClosed:
		return []string{StatusMarker + "tab closed: " + title}
	case schema.TabEventMoved:
		return []string{fmt.Sprintf("%stab moved: %s to %d", StatusMarker, title, event.Index+1)}
	default:
		return nil
	}
}

func (p *PlainRenderer) formatSearch(search schema.SearchSnapshot) []string {
	if search.Query == "" {
		return []string{StatusMarker + "search cleared"}
	}
	return []string{fmt.Sprintf("%ssearch %q: %d/%d", StatusMarker, search.Query, search.Counter.Current, search.Counter.Total)}
}

// FormatHighlights lists every highlighted span, marking the active one.
func FormatHighlights(highlights []schema.Highlight) []string {
	lines := make([]string, 0, len(highlights))
	for _, h := range highlights {
		marker := InactiveMarker
		if h.Active {
			marker = ActiveMarker
		}
		lines = append(lines, fmt.Sprintf("%s[%d-%d] %s", marker, h.Span.Start, h.Span.End, h.Color))
	}
	return lines
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func markLines(marker string, lines []string) []string {
	if marker == "" || len(lines) == 0 {
		return lines
	}
	marked := make([]string, 0, len(lines))
	for _, line := range lines {
		marked = append(marked, marker+line)
	}
	return marked
}
