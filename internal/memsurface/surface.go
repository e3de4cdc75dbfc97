// Package memsurface is an in-memory editing surface for headless hosts and
// tests. Rich text is stored as HTML; only its text projection is editable.
package memsurface

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"pkt.systems/tabpad/schema"
)

// Surface holds one document's text, cursor and selection.
type Surface struct {
	id        schema.TabID
	text      []rune
	source    string
	sourceFmt schema.ContentFormat
	dirty     bool
	selStart  int
	selEnd    int
}

// New returns an empty surface.
func New(id schema.TabID) *Surface {
	return &Surface{id: id}
}

// ID returns the tab the surface belongs to.
func (s *Surface) ID() schema.TabID {
	return s.id
}

// PlainText returns the editable text projection.
func (s *Surface) PlainText() string {
	return string(s.text)
}

// SerializedContent renders the document in format. Loaded HTML is returned
// verbatim until the text is edited.
func (s *Surface) SerializedContent(format schema.ContentFormat) string {
	if format == schema.FormatRichText {
		if s.source != "" && s.sourceFmt == schema.FormatRichText {
			return s.source
		}
		return renderHTML(string(s.text))
	}
	return string(s.text)
}

// SetSerializedContent replaces the document. It does not mark the surface
// dirty and moves the cursor to the start.
func (s *Surface) SetSerializedContent(content string, format schema.ContentFormat) error {
	text := content
	if format == schema.FormatRichText {
		parsed, err := htmlText(content)
		if err != nil {
			return fmt.Errorf("%w: %w", schema.ErrDecode, err)
		}
		text = parsed
		s.source = content
	} else {
		s.source = ""
	}
	s.sourceFmt = format
	s.text = []rune(text)
	s.selStart, s.selEnd = 0, 0
	return nil
}

// Dirty reports whether the text changed since the last ClearDirty.
func (s *Surface) Dirty() bool {
	return s.dirty
}

// ClearDirty resets the modification flag.
func (s *Surface) ClearDirty() {
	s.dirty = false
}

// CursorOffset returns the selection start.
func (s *Surface) CursorOffset() int {
	return s.selStart
}

// Selection returns the selected range.
func (s *Surface) Selection() (int, int) {
	return s.selStart, s.selEnd
}

// SelectedText returns the text inside the selection.
func (s *Surface) SelectedText() string {
	return string(s.text[s.selStart:s.selEnd])
}

// SetSelection selects [start, end), clamped to the text.
func (s *Surface) SetSelection(start, end int) {
	start = s.clamp(start)
	end = s.clamp(end)
	if end < start {
		start, end = end, start
	}
	s.selStart, s.selEnd = start, end
}

// MoveCursor collapses the selection at offset.
func (s *Surface) MoveCursor(offset int) {
	s.SetSelection(offset, offset)
}

// SetText replaces the whole text as a user edit.
func (s *Surface) SetText(text string) {
	s.text = []rune(text)
	s.edited()
	s.MoveCursor(len(s.text))
}

// Insert types text at offset and leaves the cursor after it.
func (s *Surface) Insert(offset int, text string) {
	offset = s.clamp(offset)
	ins := []rune(text)
	next := make([]rune, 0, len(s.text)+len(ins))
	next = append(next, s.text[:offset]...)
	next = append(next, ins...)
	next = append(next, s.text[offset:]...)
	s.text = next
	s.edited()
	s.MoveCursor(offset + len(ins))
}

// Delete removes [start, end) and leaves the cursor at start.
func (s *Surface) Delete(start, end int) {
	start = s.clamp(start)
	end = s.clamp(end)
	if end < start {
		start, end = end, start
	}
	if start == end {
		return
	}
	s.text = append(s.text[:start:start], s.text[end:]...)
	s.edited()
	s.MoveCursor(start)
}

func (s *Surface) edited() {
	s.dirty = true
	s.source = ""
}

func (s *Surface) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s.text) {
		return len(s.text)
	}
	return offset
}

func renderHTML(text string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"></head><body>\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "ul": true, "ol": true, "table": true,
}

var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "title": true,
}

// htmlText projects an HTML document to plain text: blocks become lines and
// <br> becomes a newline.
func htmlText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	closed := false
	var walk func(n *html.Node, pre bool)
	walk = func(n *html.Node, pre bool) {
		switch n.Type {
		case html.TextNode:
			if !pre && strings.TrimSpace(n.Data) == "" && strings.Contains(n.Data, "\n") {
				return
			}
			if closed {
				b.WriteByte('\n')
				closed = false
			}
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "br" {
				if closed {
					b.WriteByte('\n')
					closed = false
				}
				b.WriteByte('\n')
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block && closed {
			b.WriteByte('\n')
			closed = false
		}
		inPre := pre || (n.Type == html.ElementNode && n.Data == "pre")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inPre)
		}
		if block {
			closed = true
		}
	}
	walk(doc, false)
	return b.String(), nil
}
