package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"pkt.systems/tabpad/core"
	"pkt.systems/tabpad/internal/command"
	"pkt.systems/tabpad/schema"
)

func TestWatchStatusPrintsOnChange(t *testing.T) {
	ctx := context.Background()
	svc, err := core.NewService(schema.ServiceConfig{StateDir: t.TempDir()}, core.ServiceDeps{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Restore(ctx, schema.RestoreSessionRequest{}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	var buf bytes.Buffer
	out := &lockedWriter{w: &buf}
	snapshot := func() string {
		out.mu.Lock()
		defer out.mu.Unlock()
		return buf.String()
	}
	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !strings.Contains(snapshot(), want) {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %q, got %q", want, snapshot())
			}
			time.Sleep(time.Millisecond)
		}
	}

	var mu sync.Mutex
	stop := watchStatus(ctx, &mu, svc, out, time.Millisecond)
	empty := "» No file | Line 1, Col 1 | 0 words, 0 chars | UTF-8"
	waitFor(empty)

	handler := command.NewHandler(svc, nil, command.HandlerConfig{})
	mu.Lock()
	err = handler.Type(ctx, "hello")
	mu.Unlock()
	if err != nil {
		t.Fatalf("type: %v", err)
	}
	waitFor("» No file | Line 1, Col 6 | 1 words, 5 chars | UTF-8")
	stop()

	if got := strings.Count(snapshot(), empty); got != 1 {
		t.Fatalf("expected unchanged status printed once, got %d in %q", got, snapshot())
	}
}
