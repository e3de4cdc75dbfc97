// Package search locates query occurrences in a document's plain text and
// picks the active match for incremental find and wraparound navigation.
//
// All offsets are rune offsets into the plain text. Case-insensitive matching
// lowercases one rune at a time, so the comparison text always has the same
// length as the original and spans map back without adjustment.
package search

import (
	"unicode"

	"pkt.systems/tabpad/schema"
)

// Query describes one search over a document.
type Query struct {
	Text          string
	Pattern       string
	CaseSensitive bool
	Cursor        int
	Direction     schema.SearchDirection
}

// Result is the outcome of a search. Active is -1 when there are no matches.
type Result struct {
	Matches    []schema.Span
	Active     int
	Highlights []schema.Highlight
	Counter    schema.MatchCounter
}

// ActiveSpan returns the active match, if any.
func (r Result) ActiveSpan() (schema.Span, bool) {
	if r.Active < 0 || r.Active >= len(r.Matches) {
		return schema.Span{}, false
	}
	return r.Matches[r.Active], true
}

// Find runs the query. It never fails: an empty pattern, an empty document or
// a pattern with no occurrences all yield a zero counter.
func Find(q Query) Result {
	matches := Matches(q.Text, q.Pattern, q.CaseSensitive)
	if len(matches) == 0 {
		return Result{Active: -1}
	}
	active := pickActive(matches, q.Cursor, q.Direction)
	return Result{
		Matches:    matches,
		Active:     active,
		Highlights: highlights(matches, active),
		Counter:    schema.MatchCounter{Current: active + 1, Total: len(matches)},
	}
}

// Matches returns every non-overlapping occurrence of pattern in text, left
// to right.
func Matches(text, pattern string, caseSensitive bool) []schema.Span {
	if pattern == "" || text == "" {
		return nil
	}
	hay := []rune(text)
	needle := []rune(pattern)
	if len(needle) > len(hay) {
		return nil
	}
	if !caseSensitive {
		hay = lowerRunes(hay)
		needle = lowerRunes(needle)
	}
	var out []schema.Span
	n := len(needle)
	for i := 0; i+n <= len(hay); {
		if hay[i] == needle[0] && equalRunes(hay[i:i+n], needle) {
			out = append(out, schema.Span{Start: i, End: i + n})
			i += n
			continue
		}
		i++
	}
	return out
}

// Count returns the number of non-overlapping occurrences of pattern in text.
func Count(text, pattern string, caseSensitive bool) int {
	return len(Matches(text, pattern, caseSensitive))
}

func pickActive(matches []schema.Span, cursor int, dir schema.SearchDirection) int {
	switch dir {
	case schema.DirectionForward:
		for i, m := range matches {
			if m.Start > cursor {
				return i
			}
		}
		return 0
	case schema.DirectionBackward:
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].Start < cursor {
				return i
			}
		}
		return len(matches) - 1
	default:
		for i, m := range matches {
			if m.Start >= cursor {
				return i
			}
		}
		return 0
	}
}

func highlights(matches []schema.Span, active int) []schema.Highlight {
	out := make([]schema.Highlight, len(matches))
	for i, m := range matches {
		h := schema.Highlight{Span: m, Color: schema.HighlightMatchColor}
		if i == active {
			h.Active = true
			h.Color = schema.HighlightActiveColor
		}
		out[i] = h
	}
	return out
}

func lowerRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
