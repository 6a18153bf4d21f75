package automation

import (
	"context"
	"time"
)

// Control is one addressable element on a page. Implementations wrap a live
// browser element; test fakes script its behavior.
type Control interface {
	ScrollIntoView(ctx context.Context) error
	Click(ctx context.Context) error
	Clear(ctx context.Context) error
	Type(ctx context.Context, value string) error
	// SetValueWithEvent writes the value directly and dispatches a bubbling
	// input event, for widgets that swallow synthetic keystrokes.
	SetValueWithEvent(ctx context.Context, value string) error
}

// Page is one browser tab.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// WaitFor blocks until an element matching the XPath is visible or the
	// timeout elapses.
	WaitFor(ctx context.Context, xpath string, timeout time.Duration) (Control, error)
	// ClickByText clicks the first element whose trimmed text content equals
	// the given string, via script, bypassing overlay interception.
	ClickByText(ctx context.Context, text string) error
	// Texts returns the text content of every element matching the XPath, in
	// document order.
	Texts(ctx context.Context, xpath string) ([]string, error)
}

// Session owns a live browser and its open pages.
type Session interface {
	Page() Page
	// AdoptNewestPage switches to the most recently opened page. The portal
	// opens registration in a fresh tab; the old one is abandoned, not
	// closed.
	AdoptNewestPage(ctx context.Context) (Page, error)
	Close() error
}

// SessionFactory opens a fresh browser session for one run.
type SessionFactory func(ctx context.Context) (Session, error)
