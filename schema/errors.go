package schema

import "errors"

var (
	// ErrNotFound indicates a file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrTooLarge indicates a file exceeds the configured size ceiling.
	ErrTooLarge = errors.New("file too large")
	// ErrWriteFailed indicates the primary write of a document failed.
	ErrWriteFailed = errors.New("write failed")
	// ErrDeleteFailed indicates a file could not be removed.
	ErrDeleteFailed = errors.New("delete failed")
	// ErrDecode indicates content was not valid UTF-8. It is recovered by the
	// file store and never returned to callers.
	ErrDecode = errors.New("decode failed")

	// ErrTabNotFound indicates a requested tab could not be found.
	ErrTabNotFound = errors.New("tab not found")
	// ErrNoTabs indicates the session has not been initialized.
	ErrNoTabs = errors.New("no tabs")
	// ErrLastTab indicates the last remaining tab cannot be closed.
	ErrLastTab = errors.New("cannot close the last tab")
	// ErrAlreadyOpen indicates a path is already bound to another tab.
	ErrAlreadyOpen = errors.New("file already open in another tab")
	// ErrNotBound indicates the tab has no file on disk.
	ErrNotBound = errors.New("tab is not saved to a file")
	// ErrSaveCanceled indicates the user dismissed the save path prompt.
	ErrSaveCanceled = errors.New("save canceled")
	// ErrNoPrompter indicates a host prompt was required but none is configured.
	ErrNoPrompter = errors.New("prompter not configured")
	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("invalid request")
)
