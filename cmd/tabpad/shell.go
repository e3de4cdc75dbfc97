package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/core"
	"pkt.systems/tabpad/internal/command"
	"pkt.systems/tabpad/internal/eventbus"
	"pkt.systems/tabpad/internal/format"
	"pkt.systems/tabpad/internal/sessionprefs"
	"pkt.systems/tabpad/schema"
)

func newShellCmd(cfgPath *string) *cobra.Command {
	var ephemeral bool
	var disableAuditTrails bool
	var quiet bool
	var watch bool
	cmd := &cobra.Command{
		Use:   "shell [files...]",
		Short: "Edit documents in tabs from a line-oriented shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			a, err := openApp(*cfgPath, ephemeral, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if disableAuditTrails {
				a.cfg.Logging.DisableAuditTrails = true
			}
			return runShell(cmd.Context(), a, cmd.InOrStdin(), cmd.OutOrStdout(), args, shellOptions{
				showEvents:  !quiet,
				watchStatus: watch,
			})
		},
	}
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep session state in memory only")
	cmd.Flags().BoolVar(&disableAuditTrails, "disable-audit-trails", false, "disable audit logging of commands")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print status events")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print the status bar whenever it changes (polled every status.interval_ms)")
	return cmd
}

type shellOptions struct {
	showEvents  bool
	watchStatus bool
}

func runShell(ctx context.Context, a *app, stdin io.Reader, stdout io.Writer, files []string, opts shellOptions) error {
	logger := pslog.Ctx(ctx)
	out := &lockedWriter{w: stdout}
	in := bufio.NewReader(stdin)
	bus := eventbus.New(logger)

	svc, err := core.NewService(a.cfg.ServiceConfig(), core.ServiceDeps{
		Files:     a.files,
		Registry:  a.registry,
		Prompter:  &linePrompter{in: in, out: out},
		EventSink: bus,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if opts.showEvents {
		events, cancel := bus.Subscribe(eventbus.AllTabs)
		done := make(chan struct{})
		go func() {
			defer close(done)
			printEvents(events, out)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	restored, err := svc.Restore(ctx, schema.RestoreSessionRequest{})
	if err != nil {
		return err
	}
	logger.Info("shell session restored", "restored", len(restored.Restored), "skipped", len(restored.Skipped))
	for _, path := range restored.Skipped {
		_, _ = fmt.Fprintf(out, "skipped missing file: %s\n", path)
	}
	for _, path := range files {
		if _, err := svc.OpenFile(ctx, schema.OpenFileRequest{Path: path}); err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}
	}

	handler := command.NewHandler(svc, out, command.HandlerConfig{
		DisableAuditLogging: a.cfg.Logging.DisableAuditTrails,
	})
	ctx = sessionprefs.WithContext(ctx, sessionprefs.New())
	// mu serializes service access between the command loop and the watcher.
	var mu sync.Mutex
	if opts.watchStatus {
		stop := watchStatus(ctx, &mu, svc, out, a.cfg.ServiceConfig().StatusInterval)
		defer stop()
	}
	handle := func(line string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		return handler.Handle(ctx, line)
	}
	for {
		line, err := readLine(in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			logger.Info("shell input closed")
			if _, err := handle("/quit"); err != nil && !errors.Is(err, command.ErrQuit) {
				return err
			}
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		handled, err := handle(line)
		if errors.Is(err, command.ErrQuit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if !handled {
			mu.Lock()
			err := handler.Type(ctx, line+"\n")
			mu.Unlock()
			if err != nil {
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func printEvents(events <-chan eventbus.Event, out io.Writer) {
	renderer := format.NewPlainRenderer()
	for event := range events {
		for _, line := range renderer.FormatEvent(event) {
			_, _ = fmt.Fprintln(out, line)
		}
	}
}
