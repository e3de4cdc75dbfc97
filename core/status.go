package core

import (
	"strings"

	"pkt.systems/tabpad/schema"
)

// EncodingLabel is the encoding shown in the status bar. Documents are
// always written as UTF-8.
const EncodingLabel = "UTF-8"

// statusFor derives the status bar view from the tab. It only reads state.
func statusFor(t *tab) schema.StatusSnapshot {
	text := []rune(t.surface.PlainText())
	cursor := t.surface.CursorOffset()
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	line, column := 1, 1
	for _, r := range text[:cursor] {
		if r == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return schema.StatusSnapshot{
		TabID:    t.ID,
		Title:    t.DisplayName(),
		Path:     t.Path,
		Line:     line,
		Column:   column,
		Words:    len(strings.Fields(string(text))),
		Chars:    len(text),
		Encoding: EncodingLabel,
	}
}
