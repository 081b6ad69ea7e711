// Package garmin drives the Garmin Connect web UI through a browser
// session. There is no public API for the operations needed here, so the
// client clicks through the site the way a person would.
package garmin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lmehl/trainsync/internal/browser"
	"github.com/lmehl/trainsync/pkg"
)

const (
	signinPath = "/signin/"

	domRetryAttempts = 3
	domRetryInterval = 2 * time.Second
)

var (
	ErrLoginFailed = errors.New("garmin: login failed")
	// ErrInteraction marks a page interaction that kept failing after the
	// stale-node retries were exhausted.
	ErrInteraction = errors.New("garmin: page interaction failed")
)

type Credentials struct {
	Email    string
	Password string
}

type Client struct {
	session  browser.Session
	baseURL  string
	creds    Credentials
	locators Locators
	retry    pkg.RetryPolicy
	now      func() time.Time
}

func NewClient(session browser.Session, baseURL string, creds Credentials) *Client {
	return &Client{
		session:  session,
		baseURL:  strings.TrimRight(baseURL, "/"),
		creds:    creds,
		locators: DefaultLocators(),
		retry:    pkg.ConstantRetry("garmin ui", domRetryAttempts, domRetryInterval, browser.IsTransientDOMErr),
		now:      time.Now,
	}
}

// Login signs in with the configured credentials. Success is judged by the
// main navigation becoming visible.
func (c *Client) Login(ctx context.Context) error {
	if err := c.session.Navigate(ctx, c.baseURL+signinPath); err != nil {
		return fmt.Errorf("open signin page: %w", err)
	}
	if err := c.session.SendKeys(ctx, c.locators[RoleLoginEmail], c.creds.Email); err != nil {
		return fmt.Errorf("enter email: %w", err)
	}
	if err := c.session.SendKeys(ctx, c.locators[RoleLoginPassword], c.creds.Password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	if err := c.session.Click(ctx, c.locators[RoleLoginSubmit]); err != nil {
		return fmt.Errorf("submit signin form: %w", err)
	}
	if err := c.session.WaitVisible(ctx, c.locators[RoleNavActivities]); err != nil {
		return fmt.Errorf("%w: %s", ErrLoginFailed, err)
	}
	log.Debugf("garmin: signed in as %s", c.creds.Email)
	return nil
}

// OpenActivityOverview navigates to the activity list, newest first.
func (c *Client) OpenActivityOverview(ctx context.Context) error {
	if err := c.clickRetrying(ctx, RoleNavActivities); err != nil {
		return fmt.Errorf("open activities menu: %w", err)
	}
	if err := c.clickRetrying(ctx, RoleActivitiesLink); err != nil {
		return fmt.Errorf("open activity overview: %w", err)
	}
	if err := c.session.WaitVisible(ctx, c.locators[RoleActivityListItem]); err != nil {
		return fmt.Errorf("wait for activity list: %w", err)
	}
	return nil
}

// OpenFirstActivity opens the newest activity's detail page.
func (c *Client) OpenFirstActivity(ctx context.Context) error {
	if err := c.clickRetrying(ctx, RoleActivityListLink); err != nil {
		return fmt.Errorf("open first activity: %w", err)
	}
	return nil
}

// ClickPrevious moves from the current detail page to the next older activity.
func (c *Client) ClickPrevious(ctx context.Context) error {
	if err := c.clickRetrying(ctx, RolePreviousButton); err != nil {
		return fmt.Errorf("click previous activity: %w", err)
	}
	return nil
}

// ActivityDateTime reads the start time of the currently open activity
// from its detail title.
func (c *Client) ActivityDateTime(ctx context.Context) (time.Time, error) {
	var text string
	err := c.retry.Do(ctx, func() error {
		var err error
		text, err = c.session.Text(ctx, c.locators[RoleDetailTitle])
		return err
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("read activity title: %w", err)
	}
	return ParseDetailTitle(text, c.now())
}

// ActivityName reads the name of the currently open activity.
func (c *Client) ActivityName(ctx context.Context) (string, error) {
	name, err := c.session.Text(ctx, c.locators[RoleDetailName])
	if err != nil {
		return "", fmt.Errorf("read activity name: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// EditActivity overwrites the open activity's title and description.
func (c *Client) EditActivity(ctx context.Context, title, note string) error {
	if err := c.clickRetrying(ctx, RoleTitleEditTrigger); err != nil {
		return fmt.Errorf("open title editor: %w", err)
	}
	if err := c.session.SetValue(ctx, c.locators[RoleTitleInput], title); err != nil {
		return fmt.Errorf("set activity title: %w", err)
	}
	if err := c.clickRetrying(ctx, RoleTitleSave); err != nil {
		return fmt.Errorf("save activity title: %w", err)
	}

	// the edit button is hidden when the note editor is already open
	visible, err := c.session.Visible(ctx, c.locators[RoleEditNoteButton])
	if err != nil {
		return fmt.Errorf("check note editor state: %w", err)
	}
	if visible {
		if err := c.clickRetrying(ctx, RoleEditNoteButton); err != nil {
			return fmt.Errorf("open note editor: %w", err)
		}
	}

	err = c.retry.Do(ctx, func() error {
		return c.session.SetValue(ctx, c.locators[RoleNoteTextarea], note)
	})
	if err != nil {
		return fmt.Errorf("set activity note: %w", err)
	}
	if err := c.clickRetrying(ctx, RoleNoteSave); err != nil {
		return fmt.Errorf("save activity note: %w", err)
	}
	return nil
}

// ListedDates returns the dates of the activities currently rendered in the
// overview list, newest first. Times are midnight, the list shows no clock.
func (c *Client) ListedDates(ctx context.Context) ([]time.Time, error) {
	texts, err := c.session.TextAll(ctx, c.locators[RoleActivityListDates])
	if err != nil {
		return nil, fmt.Errorf("read listed dates: %w", err)
	}
	dates := make([]time.Time, 0, len(texts))
	for _, text := range texts {
		d, err := ParseListDate(text, c.now().Location())
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// FirstActivityDateTime reads the newest activity's start time by opening
// its detail page in a fresh tab, so the overview keeps its scroll position.
func (c *Client) FirstActivityDateTime(ctx context.Context) (time.Time, error) {
	href, err := c.session.Href(ctx, c.locators[RoleActivityListLink])
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve first activity link: %w", err)
	}
	if strings.HasPrefix(href, "/") {
		href = c.baseURL + href
	}

	tab, err := c.session.NewTab(ctx, href)
	if err != nil {
		return time.Time{}, fmt.Errorf("open activity tab: %w", err)
	}
	defer func() {
		if err := tab.Close(); err != nil {
			log.Errorf("garmin: close activity tab: %s", err)
		}
	}()

	var text string
	err = c.retry.Do(ctx, func() error {
		var err error
		text, err = tab.Text(ctx, c.locators[RoleDetailTitle])
		return err
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("read activity title: %w", err)
	}
	return ParseDetailTitle(text, c.now())
}

func (c *Client) clickRetrying(ctx context.Context, role Role) error {
	loc := c.locators[role]
	err := c.retry.Do(ctx, func() error {
		return c.session.Click(ctx, loc)
	})
	if err != nil && browser.IsTransientDOMErr(err) {
		return fmt.Errorf("%w: %s", ErrInteraction, err)
	}
	return err
}
