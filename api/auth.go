package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mediapulse/pulse/errors"
)

// authCookieName is the session cookie the backend issues on login.
const authCookieName = "ar_token"

// Login exchanges the dashboard password for a session token. The backend
// answers with a redirect either way: a token cookie on success, a
// ?error=1 location on a wrong password. The token is installed on the
// client and returned so callers can persist it.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	form := url.Values{}
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "build login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", errors.BackendUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			c.token = cookie.Value
			return cookie.Value, nil
		}
	}

	if loc := resp.Header.Get("Location"); strings.Contains(loc, "error=1") {
		return "", errors.AuthFailed()
	}
	return "", errors.AuthFailed()
}

// Logout drops the session on both sides.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/logout", nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "build logout request")
	}
	c.attachAuth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.BackendUnreachable(c.baseURL, err)
	}
	resp.Body.Close()

	c.token = ""
	return nil
}
