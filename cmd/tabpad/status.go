package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/core"
	"pkt.systems/tabpad/internal/command"
	"pkt.systems/tabpad/internal/format"
	"pkt.systems/tabpad/schema"
)

// watchStatus polls the status bar every interval and prints it when it
// changes. mu must be held by every other caller of svc. The returned stop
// function waits for the watcher to exit.
func watchStatus(ctx context.Context, mu *sync.Mutex, svc core.Service, out io.Writer, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = schema.DefaultStatusInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var last string
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			mu.Lock()
			resp, err := svc.Status(ctx, schema.StatusRequest{})
			mu.Unlock()
			if err != nil {
				pslog.Ctx(ctx).Debug("shell status refresh failed", "err", err)
				continue
			}
			line := command.FormatStatus(resp.Status)
			if line == last {
				continue
			}
			last = line
			_, _ = fmt.Fprintln(out, format.StatusMarker+line)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
