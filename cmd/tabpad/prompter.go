package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"pkt.systems/tabpad/schema"
)

// linePrompter answers core prompts from the same line reader the shell
// reads commands from.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *linePrompter) ConfirmClose(ctx context.Context, tab schema.TabSnapshot) (schema.CloseChoice, error) {
	answer, err := p.ask(fmt.Sprintf("Save changes to %s? [s]ave/[d]iscard/[c]ancel: ", strings.TrimPrefix(tab.Title, "●")))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return schema.CloseCancel, nil
		}
		return schema.CloseCancel, err
	}
	switch strings.ToLower(answer) {
	case "s", "save":
		return schema.CloseSave, nil
	case "d", "discard":
		return schema.CloseDiscard, nil
	default:
		return schema.CloseCancel, nil
	}
}

func (p *linePrompter) ChooseSavePath(ctx context.Context, tab schema.TabSnapshot, suggested string) (string, bool, error) {
	answer, err := p.ask(fmt.Sprintf("Save as (suggested %s, empty cancels): ", suggested))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, err
	}
	if answer == "" {
		return "", false, nil
	}
	return answer, true, nil
}

func (p *linePrompter) ConfirmDelete(ctx context.Context, path string) (bool, error) {
	return p.confirm(fmt.Sprintf("Delete %s? [y/N]: ", path), false)
}

// ConfirmQuit treats a closed input as consent; nothing can answer later.
func (p *linePrompter) ConfirmQuit(ctx context.Context, dirtyTabs int) (bool, error) {
	return p.confirm(fmt.Sprintf("%d tab(s) have unsaved changes. Quit anyway? [y/N]: ", dirtyTabs), true)
}

func (p *linePrompter) confirm(question string, onEOF bool) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return onEOF, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *linePrompter) ask(question string) (string, error) {
	_, _ = fmt.Fprint(p.out, question)
	return readLine(p.in)
}

// readLine returns one line without its terminator. A final line without a
// newline is returned before io.EOF is reported.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// lockedWriter serializes writes from the command loop and the event printer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
