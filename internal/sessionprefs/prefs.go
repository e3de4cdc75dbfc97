// Package sessionprefs keeps the search bar state of one interactive shell:
// the remembered query and the case toggle shared by /find, /next and /prev.
package sessionprefs

import (
	"context"
	"errors"

	"pkt.systems/tabpad/schema"
)

// ErrNoQuery is returned when navigation is requested before any /find.
var ErrNoQuery = errors.New("no active search; use /find <text>")

// Prefs captures per-shell search preferences that outlive a single command.
type Prefs struct {
	CaseSensitive bool
	LastQuery     string
}

type prefsKey struct{}

// New returns a new Prefs instance with defaults applied.
func New() *Prefs {
	return &Prefs{}
}

// ToggleCase flips case sensitivity and returns the new value.
func (p *Prefs) ToggleCase() bool {
	p.CaseSensitive = !p.CaseSensitive
	return p.CaseSensitive
}

// Find remembers query and builds an incremental find for the active tab.
// An empty query clears the search.
func (p *Prefs) Find(query string) schema.FindRequest {
	p.LastQuery = query
	return schema.FindRequest{Query: query, CaseSensitive: p.CaseSensitive}
}

// Navigate repeats the remembered query in direction.
func (p *Prefs) Navigate(direction schema.SearchDirection) (schema.FindRequest, error) {
	if p.LastQuery == "" {
		return schema.FindRequest{}, ErrNoQuery
	}
	return schema.FindRequest{Query: p.LastQuery, CaseSensitive: p.CaseSensitive, Direction: direction}, nil
}

// Clear forgets the remembered query; the case toggle is kept.
func (p *Prefs) Clear() {
	p.LastQuery = ""
}

// WithContext stores prefs in the context.
func WithContext(ctx context.Context, prefs *Prefs) context.Context {
	if ctx == nil || prefs == nil {
		return ctx
	}
	return context.WithValue(ctx, prefsKey{}, prefs)
}

// FromContext returns the prefs stored in the context, if any.
func FromContext(ctx context.Context) *Prefs {
	if ctx == nil {
		return nil
	}
	prefs, _ := ctx.Value(prefsKey{}).(*Prefs)
	return prefs
}
