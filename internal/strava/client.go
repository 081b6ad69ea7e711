package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	authBaseURL = "https://www.strava.com/oauth/authorize"

	// RedirectURL is where the authorize flow sends the browser back to;
	// cmd/auth listens there during the one-time interactive authorization.
	RedirectURL = "http://localhost:8080/exchange"

	// perPage is the maximum the athlete activities endpoint allows.
	perPage = 200
)

// ErrAuthRequired means no usable token pair exists and an interactive
// authorization (cmd/auth) is needed before anything else can run.
var ErrAuthRequired = errors.New("strava authorization required, run the auth command first")

type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("strava request %s failed with status %d", e.URL, e.StatusCode)
}

// Client talks to the Strava REST API with the persisted token pair.
// On a failed request it refreshes the access token once, persists the
// new pair, and retries the request once.
type Client struct {
	baseURL    string
	conf       *oauth2.Config
	store      *TokenStore
	httpClient *http.Client
}

func NewClient(baseURL, clientID, clientSecret string, store *TokenStore, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  RedirectURL,
			Scopes:       []string{"activity:read_all"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authBaseURL,
				TokenURL: baseURL + "/oauth/token",
			},
		},
		store:      store,
		httpClient: httpClient,
	}
}

// Activity fetches the detailed representation of a single activity,
// including the private note.
func (c *Client) Activity(ctx context.Context, id int64) (*Activity, error) {
	url := fmt.Sprintf("%s/activities/%d?include_all_efforts=false", c.baseURL, id)
	var activity Activity
	if err := c.getJSON(ctx, url, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ActivitiesInRange lists activity summaries between start and end
// (inclusive, local wall-clock converted to epoch seconds). Only the
// first page of up to 200 results is fetched; further pages are not
// followed. That cap was never hit in practice, but a full window
// produces a warning so a truncated sync does not go unnoticed.
func (c *Client) ActivitiesInRange(ctx context.Context, start, end time.Time) ([]Activity, error) {
	url := fmt.Sprintf(
		"%s/athlete/activities?after=%d&before=%d&page=1&per_page=%d",
		c.baseURL, start.Unix(), end.Unix(), perPage,
	)

	var activities []Activity
	if err := c.getJSON(ctx, url, &activities); err != nil {
		return nil, err
	}

	if len(activities) == perPage {
		log.Warnf(
			"strava: activity list hit the single page cap of %d, window %s - %s may be truncated",
			perPage, start.Format(time.DateOnly), end.Format(time.DateOnly),
		)
	}

	return activities, nil
}

// AuthCodeURL returns the link the operator opens to grant access.
func (c *Client) AuthCodeURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token pair and persists it.
func (c *Client) Exchange(ctx context.Context, code string) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := c.store.Save(Tokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	tokens, err := c.store.Load()
	if err != nil {
		return err
	}
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		return ErrAuthRequired
	}

	accessToken := tokens.AccessToken
	if accessToken != "" {
		err = c.do(ctx, url, accessToken, out)
		if err == nil {
			return nil
		}
		log.Warnf("strava: request failed (%s), refreshing access token and retrying once", err)
	}

	accessToken, err = c.refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return err
	}

	return c.do(ctx, url, accessToken, out)
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrAuthRequired
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}

	newTokens := Tokens{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	if newTokens.RefreshToken == "" {
		// token endpoint did not rotate the refresh token
		newTokens.RefreshToken = refreshToken
	}
	if err := c.store.Save(newTokens); err != nil {
		return "", fmt.Errorf("save refreshed tokens: %w", err)
	}

	log.Debugln("strava: access token refreshed and persisted")

	return tok.AccessToken, nil
}

func (c *Client) do(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
