package schema

import (
	"path/filepath"
	"strings"
)

// TabID identifies an open document tab. It is opaque and stable for the
// lifetime of the tab; it is never a position.
type TabID string

// ContentFormat describes how a document is serialized on disk.
type ContentFormat string

const (
	// FormatPlainText stores raw text.
	FormatPlainText ContentFormat = "plain"
	// FormatRichText stores the full serialized HTML document.
	FormatRichText ContentFormat = "rich"
)

// RichTextExtension is the file extension that selects FormatRichText.
const RichTextExtension = ".html"

// FormatForPath derives the content format from a file extension.
func FormatForPath(path string) ContentFormat {
	if strings.EqualFold(filepath.Ext(path), RichTextExtension) {
		return FormatRichText
	}
	return FormatPlainText
}

// CloseChoice is the host's answer when a dirty tab is about to close.
type CloseChoice string

const (
	// CloseSave saves the tab before closing it.
	CloseSave CloseChoice = "save"
	// CloseDiscard closes the tab without saving.
	CloseDiscard CloseChoice = "discard"
	// CloseCancel aborts the close.
	CloseCancel CloseChoice = "cancel"
)

// SearchDirection selects how the active match is chosen relative to the cursor.
type SearchDirection string

const (
	// DirectionNone keeps the match at (or nearest after) the cursor.
	DirectionNone SearchDirection = ""
	// DirectionForward moves to the next match, wrapping to the first.
	DirectionForward SearchDirection = "forward"
	// DirectionBackward moves to the previous match, wrapping to the last.
	DirectionBackward SearchDirection = "backward"
)

// Span is a half-open [Start, End) range of rune offsets into a document's
// plain-text projection.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}
