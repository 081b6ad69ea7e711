package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeSession drives a real Chrome instance through the DevTools protocol.
type ChromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	waitTimeout time.Duration
}

// NewChromeSession starts a Chrome instance and returns a session bound to
// its initial tab. Every operation on the session is bounded by waitTimeout.
func NewChromeSession(ctx context.Context, headless bool, waitTimeout time.Duration) (*ChromeSession, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}

	// start the browser process now so a broken chrome install fails fast
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &ChromeSession{
		ctx:         browserCtx,
		cancel:      cancel,
		waitTimeout: waitTimeout,
	}, nil
}

func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	// chromedp actions must run on the session's own context (it carries the
	// browser target); the caller's context only contributes cancellation
	opCtx, opCancel := context.WithTimeout(s.ctx, s.waitTimeout)
	defer opCancel()
	stop := context.AfterFunc(ctx, opCancel)
	defer stop()
	return chromedp.Run(opCtx, actions...)
}

func queryOption(loc Locator) chromedp.QueryOption {
	switch loc.By {
	case ByID:
		return chromedp.ByID
	case ByXPath:
		return chromedp.BySearch
	default:
		return chromedp.ByQuery
	}
}

func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *ChromeSession) WaitVisible(ctx context.Context, loc Locator) error {
	return s.run(ctx, chromedp.WaitVisible(loc.Value, queryOption(loc)))
}

func (s *ChromeSession) Click(ctx context.Context, loc Locator) error {
	return s.run(ctx, chromedp.Click(loc.Value, queryOption(loc)))
}

func (s *ChromeSession) SendKeys(ctx context.Context, loc Locator, text string) error {
	return s.run(ctx, chromedp.SendKeys(loc.Value, text, queryOption(loc)))
}

func (s *ChromeSession) SetValue(ctx context.Context, loc Locator, text string) error {
	return s.run(ctx, chromedp.SetValue(loc.Value, text, queryOption(loc)))
}

func (s *ChromeSession) Text(ctx context.Context, loc Locator) (string, error) {
	var out string
	if err := s.run(ctx, chromedp.Text(loc.Value, &out, queryOption(loc))); err != nil {
		return "", err
	}
	return out, nil
}

func (s *ChromeSession) TextAll(ctx context.Context, loc Locator) ([]string, error) {
	if loc.By == ByXPath {
		return nil, fmt.Errorf("text all: xpath locators are not supported")
	}
	sel := loc.Value
	if loc.By == ByID {
		sel = "#" + sel
	}
	expr := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(e => e.textContent)`, sel,
	)
	var out []string
	if err := s.run(ctx, chromedp.Evaluate(expr, &out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ChromeSession) Href(ctx context.Context, loc Locator) (string, error) {
	var href string
	var ok bool
	if err := s.run(ctx, chromedp.AttributeValue(loc.Value, "href", &href, &ok, queryOption(loc))); err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("element %q has no href", loc.Value)
	}
	return href, nil
}

func (s *ChromeSession) Visible(ctx context.Context, loc Locator) (bool, error) {
	if loc.By == ByXPath {
		return false, fmt.Errorf("visible: xpath locators are not supported")
	}
	sel := loc.Value
	if loc.By == ByID {
		sel = "#" + sel
	}
	expr := fmt.Sprintf(
		`(() => { const e = document.querySelector(%q); return e !== null && getComputedStyle(e).display !== "none"; })()`,
		sel,
	)
	var visible bool
	if err := s.run(ctx, chromedp.Evaluate(expr, &visible)); err != nil {
		return false, err
	}
	return visible, nil
}

func (s *ChromeSession) NewTab(ctx context.Context, url string) (Session, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.ctx)
	tab := &ChromeSession{
		ctx:         tabCtx,
		cancel:      tabCancel,
		waitTimeout: s.waitTimeout,
	}
	if err := tab.Navigate(ctx, url); err != nil {
		tabCancel()
		return nil, fmt.Errorf("open tab: %w", err)
	}
	return tab, nil
}

func (s *ChromeSession) Close() error {
	s.cancel()
	return nil
}
