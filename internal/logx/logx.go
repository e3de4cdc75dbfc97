package logx

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/schema"
)

type contextKey int

const (
	tabKey contextKey = iota
	pathKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithTab annotates the logger with the tab id if present.
func WithTab(ctx context.Context, tabID schema.TabID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if tabID != "" {
		if current, ok := ctx.Value(tabKey).(schema.TabID); ok && current == tabID {
			return log
		}
		log = log.With("tab", tabID)
	}
	return log
}

// WithTabPath annotates the logger with tab and path identifiers.
func WithTabPath(ctx context.Context, tabID schema.TabID, path string) pslog.Logger {
	log := WithTab(ctx, tabID)
	if path != "" {
		if current, ok := ctx.Value(pathKey).(string); ok && current == path {
			return log
		}
		log = log.With("path", path)
	}
	return log
}

// WithPath annotates the logger with a file path when available.
func WithPath(log pslog.Logger, path string) pslog.Logger {
	if path != "" {
		log = log.With("path", path)
	}
	return log
}

// WithFormat annotates the logger with a content format when available.
func WithFormat(log pslog.Logger, format schema.ContentFormat) pslog.Logger {
	if format != "" {
		log = log.With("format", format)
	}
	return log
}

// ContextWithTab stores the tab marker on the context for log de-duplication.
func ContextWithTab(ctx context.Context, tabID schema.TabID) context.Context {
	if ctx == nil || tabID == "" {
		return ctx
	}
	return context.WithValue(ctx, tabKey, tabID)
}

// ContextWithPath stores the path marker on the context for log de-duplication.
func ContextWithPath(ctx context.Context, path string) context.Context {
	if ctx == nil || path == "" {
		return ctx
	}
	return context.WithValue(ctx, pathKey, path)
}

// ContextWithTabLogger attaches the logger and tab marker to the context.
func ContextWithTabLogger(ctx context.Context, log pslog.Logger, tabID schema.TabID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithTab(ctx, tabID)
}

// CopyContextFields copies tab/path markers from src to dst.
func CopyContextFields(dst context.Context, src context.Context) context.Context {
	if src == nil {
		return dst
	}
	if tab, ok := src.Value(tabKey).(schema.TabID); ok && tab != "" {
		dst = ContextWithTab(dst, tab)
	}
	if path, ok := src.Value(pathKey).(string); ok && path != "" {
		dst = ContextWithPath(dst, path)
	}
	return dst
}
