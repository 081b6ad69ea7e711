package browser

import (
	"context"
	"errors"
	"strings"
)

type By int

const (
	ByID By = iota
	ByCSS
	ByXPath
)

// Locator addresses an element in the page. Locators live in data tables
// owned by the UI clients, so a markup change upstream is a table edit,
// not a logic change.
type Locator struct {
	By    By
	Value string
}

func ID(value string) Locator    { return Locator{By: ByID, Value: value} }
func CSS(value string) Locator   { return Locator{By: ByCSS, Value: value} }
func XPath(value string) Locator { return Locator{By: ByXPath, Value: value} }

// Session is the minimal browser capability surface the UI clients need.
// The real implementation drives a Chrome instance; tests substitute fakes.
type Session interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, loc Locator) error
	Click(ctx context.Context, loc Locator) error
	SendKeys(ctx context.Context, loc Locator, text string) error
	// SetValue replaces an input's current value instead of appending keystrokes.
	SetValue(ctx context.Context, loc Locator, text string) error
	Text(ctx context.Context, loc Locator) (string, error)
	// TextAll returns the text of every element matching a CSS locator.
	TextAll(ctx context.Context, loc Locator) ([]string, error)
	Href(ctx context.Context, loc Locator) (string, error)
	// Visible reports whether the element exists and is displayed.
	Visible(ctx context.Context, loc Locator) (bool, error)
	// NewTab opens url in a fresh tab, leaving this session's page (and its
	// scroll position) untouched. The returned session must be closed.
	NewTab(ctx context.Context, url string) (Session, error)
	Close() error
}

// IsTransientDOMErr reports whether an error looks like a stale or detached
// element race worth retrying, as opposed to an element that never appears.
func IsTransientDOMErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		// a bounded wait running out means the element never showed up;
		// retrying will not help
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "could not find node") ||
		strings.Contains(msg, "node not found") ||
		strings.Contains(msg, "detached") ||
		strings.Contains(msg, "stale")
}
