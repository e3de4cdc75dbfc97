package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pkt.systems/tabpad/core"
	"pkt.systems/tabpad/internal/logx"
	"pkt.systems/tabpad/internal/sessionprefs"
	"pkt.systems/tabpad/internal/version"
	"pkt.systems/tabpad/schema"
)

// ErrQuit is returned by Handle once /quit has been accepted.
var ErrQuit = errors.New("quit")

// HandlerConfig configures slash command behavior.
type HandlerConfig struct {
	DisableAuditLogging bool
	// Window is handed to Quit so hosts can persist their placement.
	Window func() schema.WindowState
}

// Editor is the part of a surface the shell needs to type and move the cursor.
type Editor interface {
	Insert(offset int, text string)
	MoveCursor(offset int)
	CursorOffset() int
}

// Handler routes slash commands to service operations and prints results.
type Handler struct {
	service core.Service
	out     io.Writer
	cfg     HandlerConfig
	// fallback holds search state for hosts that do not put Prefs in ctx.
	fallback *sessionprefs.Prefs
}

// NewHandler constructs a command handler.
func NewHandler(service core.Service, out io.Writer, cfg HandlerConfig) *Handler {
	if out == nil {
		out = io.Discard
	}
	return &Handler{service: service, out: out, cfg: cfg, fallback: sessionprefs.New()}
}

// Handle inspects input and executes slash commands. Input that is not a
// slash command is reported as unhandled.
func (h *Handler) Handle(ctx context.Context, input string) (bool, error) {
	if ctx == nil {
		return false, errors.New("missing context")
	}
	cmd, ok := Parse(input)
	if !ok {
		return false, nil
	}
	log := logx.Ctx(ctx).With("command", cmd.Name, "args", len(cmd.Args))
	if !h.cfg.DisableAuditLogging {
		log.Debug("audit command", "command_type", "slash", "command", strings.TrimSpace(input))
	}
	log.Info("command slash request")
	var err error
	switch cmd.Name {
	case "":
		log.Warn("command slash rejected", "reason", "empty")
		return true, fmt.Errorf("invalid command")
	case "new":
		err = h.handleNew(ctx)
	case "open":
		err = h.handleOpen(ctx, cmd)
	case "close":
		err = h.handleClose(ctx)
	case "save":
		err = h.handleSave(ctx)
	case "saveas":
		err = h.handleSaveAs(ctx, cmd)
	case "tab":
		err = h.handleTab(ctx, cmd)
	case "tabs":
		err = h.handleTabs(ctx)
	case "move":
		err = h.handleMove(ctx, cmd)
	case "type":
		err = h.Type(ctx, cmd.Remainder)
	case "cursor":
		err = h.handleCursor(ctx, cmd)
	case "text":
		err = h.handleText(ctx)
	case "find":
		err = h.handleFind(ctx, cmd.Remainder, schema.DirectionNone)
	case "next":
		err = h.handleFind(ctx, "", schema.DirectionForward)
	case "prev":
		err = h.handleFind(ctx, "", schema.DirectionBackward)
	case "case":
		err = h.handleCase(ctx)
	case "clear":
		err = h.handleClear(ctx)
	case "status":
		err = h.handleStatus(ctx)
	case "recent":
		err = h.handleRecent(ctx, cmd)
	case "delete":
		err = h.handleDelete(ctx)
	case "help":
		err = h.handleHelp()
	case "version":
		h.println(version.Banner())
	case "quit", "q":
		err = h.handleQuit(ctx)
	default:
		log.Warn("command slash rejected", "reason", "unknown")
		return true, fmt.Errorf("unknown command: /%s", cmd.Name)
	}
	if err != nil && !errors.Is(err, ErrQuit) {
		log.Warn("command slash failed", "err", err)
	}
	return true, err
}

// Type inserts text at the active tab's cursor and notifies the service.
func (h *Handler) Type(ctx context.Context, text string) error {
	tab, editor, err := h.activeEditor(ctx)
	if err != nil {
		return err
	}
	editor.Insert(editor.CursorOffset(), text)
	resp, err := h.service.ContentChanged(ctx, schema.ContentChangedRequest{TabID: tab.ID})
	if err != nil {
		return err
	}
	if resp.Search != nil {
		h.printCounter(*resp.Search)
	}
	return nil
}

func (h *Handler) handleNew(ctx context.Context) error {
	resp, err := h.service.NewTab(ctx, schema.NewTabRequest{})
	if err != nil {
		return err
	}
	h.println("tab opened: " + resp.Tab.Title)
	return nil
}

func (h *Handler) handleOpen(ctx context.Context, cmd Command) error {
	if cmd.Remainder == "" {
		return fmt.Errorf("usage: /open <path>")
	}
	resp, err := h.service.OpenFile(ctx, schema.OpenFileRequest{Path: cmd.Remainder})
	if err != nil {
		return err
	}
	if resp.AlreadyOpen {
		h.println("already open: " + resp.Tab.Title)
		return nil
	}
	h.println("tab opened: " + resp.Tab.Title)
	return nil
}

func (h *Handler) handleClose(ctx context.Context) error {
	resp, err := h.service.CloseTab(ctx, schema.CloseTabRequest{})
	if err != nil {
		return err
	}
	if !resp.Closed {
		h.println("close canceled")
		return nil
	}
	h.println("tab closed: " + strings.TrimPrefix(resp.Tab.Title, "●"))
	return nil
}

func (h *Handler) handleSave(ctx context.Context) error {
	resp, err := h.service.SaveTab(ctx, schema.SaveTabRequest{})
	if err != nil {
		return err
	}
	h.println("saved: " + resp.Tab.Path)
	return nil
}

func (h *Handler) handleSaveAs(ctx context.Context, cmd Command) error {
	resp, err := h.service.SaveTabAs(ctx, schema.SaveTabAsRequest{Path: cmd.Remainder})
	if err != nil {
		return err
	}
	h.println("saved: " + resp.Tab.Path)
	return nil
}

func (h *Handler) handleTab(ctx context.Context, cmd Command) error {
	n, err := cmd.IntArg("/tab <1-9>")
	if err != nil {
		return err
	}
	resp, err := h.service.ActivateTabNumber(ctx, schema.ActivateTabNumberRequest{Number: n})
	if err != nil {
		return err
	}
	h.println("active: " + resp.Tab.Title)
	return nil
}

func (h *Handler) handleTabs(ctx context.Context) error {
	resp, err := h.service.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		return err
	}
	h.printTabs(resp.Tabs)
	return nil
}

func (h *Handler) handleMove(ctx context.Context, cmd Command) error {
	pos, err := cmd.IntArg("/move <position>")
	if err != nil {
		return err
	}
	if pos < 1 {
		return fmt.Errorf("usage: /move <position>")
	}
	resp, err := h.service.MoveTab(ctx, schema.MoveTabRequest{Index: pos - 1, TabID: h.activeID(ctx)})
	if err != nil {
		return err
	}
	h.printTabs(resp.Tabs)
	return nil
}

func (h *Handler) handleCursor(ctx context.Context, cmd Command) error {
	offset, err := cmd.IntArg("/cursor <offset>")
	if err != nil {
		return err
	}
	tab, editor, err := h.activeEditor(ctx)
	if err != nil {
		return err
	}
	editor.MoveCursor(offset)
	resp, err := h.service.CursorMoved(ctx, schema.CursorMovedRequest{TabID: tab.ID, Offset: editor.CursorOffset()})
	if err != nil {
		return err
	}
	if resp.Search != nil {
		h.printCounter(*resp.Search)
	}
	return nil
}

func (h *Handler) handleText(ctx context.Context) error {
	surface, err := h.service.Surface("")
	if err != nil {
		return err
	}
	h.println(surface.PlainText())
	return nil
}

func (h *Handler) handleFind(ctx context.Context, query string, direction schema.SearchDirection) error {
	prefs := h.prefs(ctx)
	req, err := prefs.Navigate(direction)
	if direction == schema.DirectionNone {
		req, err = prefs.Find(query), nil
	}
	if err != nil {
		return err
	}
	resp, err := h.service.Find(ctx, req)
	if err != nil {
		return err
	}
	h.printCounter(resp.Search)
	return nil
}

func (h *Handler) handleCase(ctx context.Context) error {
	prefs := h.prefs(ctx)
	if prefs.ToggleCase() {
		h.println("case sensitive: on")
	} else {
		h.println("case sensitive: off")
	}
	if prefs.LastQuery == "" {
		return nil
	}
	return h.handleFind(ctx, prefs.LastQuery, schema.DirectionNone)
}

func (h *Handler) handleClear(ctx context.Context) error {
	h.prefs(ctx).Clear()
	_, err := h.service.ClearSearch(ctx, schema.ClearSearchRequest{})
	return err
}

func (h *Handler) handleStatus(ctx context.Context) error {
	resp, err := h.service.Status(ctx, schema.StatusRequest{})
	if err != nil {
		return err
	}
	h.println(FormatStatus(resp.Status))
	return nil
}

func (h *Handler) handleRecent(ctx context.Context, cmd Command) error {
	if len(cmd.Args) > 0 && strings.EqualFold(cmd.Args[0], "clear") {
		if _, err := h.service.ClearRecentFiles(ctx, schema.ClearRecentFilesRequest{}); err != nil {
			return err
		}
		h.println("recent files cleared")
		return nil
	}
	resp, err := h.service.RecentFiles(ctx, schema.RecentFilesRequest{})
	if err != nil {
		return err
	}
	if len(resp.Paths) == 0 {
		h.println("no recent files")
		return nil
	}
	for i, path := range resp.Paths {
		h.println(fmt.Sprintf("%d. %s", i+1, path))
	}
	return nil
}

func (h *Handler) handleDelete(ctx context.Context) error {
	resp, err := h.service.DeleteCurrentFile(ctx, schema.DeleteCurrentFileRequest{})
	if err != nil {
		return err
	}
	if !resp.Deleted {
		h.println("delete canceled")
		return nil
	}
	h.println("deleted: " + resp.Path)
	return nil
}

func (h *Handler) handleQuit(ctx context.Context) error {
	req := schema.QuitRequest{}
	if h.cfg.Window != nil {
		req.Window = h.cfg.Window()
	}
	resp, err := h.service.Quit(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Accepted {
		h.println("quit canceled")
		return nil
	}
	return ErrQuit
}

func (h *Handler) handleHelp() error {
	for _, line := range helpLines() {
		h.println(line)
	}
	return nil
}

func helpLines() []string {
	return []string{
		"Commands:",
		"  /new                 open an untitled tab",
		"  /open <path>         open a file (refocuses if already open)",
		"  /close               close the active tab",
		"  /save                save the active tab",
		"  /saveas [path]       save under a new path",
		"  /tab <1-9>           switch tab (9 = last)",
		"  /tabs                list tabs",
		"  /move <position>     move the active tab",
		"  /type <text>         insert text at the cursor",
		"  /cursor <offset>     move the cursor",
		"  /text                print the active document",
		"  /find <text>         incremental search",
		"  /next, /prev         jump between matches",
		"  /case                toggle case sensitivity",
		"  /clear               clear search highlights",
		"  /status              show cursor and counts",
		"  /recent [clear]      list or clear recent files",
		"  /delete              delete the active file",
		"  /version             show version",
		"  /quit                exit",
		"Lines without a leading / are typed into the active tab.",
	}
}

// FormatStatus renders a status bar line.
func FormatStatus(status schema.StatusSnapshot) string {
	path := status.Path
	if path == "" {
		path = "No file"
	}
	return fmt.Sprintf("%s | Line %d, Col %d | %d words, %d chars | %s", path, status.Line, status.Column, status.Words, status.Chars, status.Encoding)
}

// FormatCounter renders the search counter and the active span.
func FormatCounter(search schema.SearchSnapshot) string {
	line := fmt.Sprintf("%d/%d", search.Counter.Current, search.Counter.Total)
	if search.ActiveIndex >= 0 && search.ActiveIndex < len(search.Matches) {
		span := search.Matches[search.ActiveIndex]
		line += fmt.Sprintf(" [%d-%d]", span.Start, span.End)
	}
	return line
}

func (h *Handler) printCounter(search schema.SearchSnapshot) {
	h.println(FormatCounter(search))
}

func (h *Handler) printTabs(tabs []schema.TabSnapshot) {
	for i, tab := range tabs {
		marker := " "
		if tab.Active {
			marker = "*"
		}
		h.println(fmt.Sprintf("%s %d. %s", marker, i+1, tab.Title))
	}
}

func (h *Handler) println(line string) {
	_, _ = fmt.Fprintln(h.out, line)
}

func (h *Handler) prefs(ctx context.Context) *sessionprefs.Prefs {
	if prefs := sessionprefs.FromContext(ctx); prefs != nil {
		return prefs
	}
	return h.fallback
}

func (h *Handler) activeID(ctx context.Context) schema.TabID {
	resp, err := h.service.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		return ""
	}
	return resp.ActiveTab
}

func (h *Handler) activeEditor(ctx context.Context) (schema.TabSnapshot, Editor, error) {
	resp, err := h.service.ListTabs(ctx, schema.ListTabsRequest{})
	if err != nil {
		return schema.TabSnapshot{}, nil, err
	}
	var active schema.TabSnapshot
	for _, tab := range resp.Tabs {
		if tab.ID == resp.ActiveTab {
			active = tab
		}
	}
	if active.ID == "" {
		return schema.TabSnapshot{}, nil, schema.ErrNoTabs
	}
	surface, err := h.service.Surface(active.ID)
	if err != nil {
		return schema.TabSnapshot{}, nil, err
	}
	editor, ok := surface.(Editor)
	if !ok {
		return schema.TabSnapshot{}, nil, fmt.Errorf("surface for %s is not editable", active.Title)
	}
	return active, editor, nil
}
