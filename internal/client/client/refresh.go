package client

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoAccessToken is returned by RefreshAccessToken when the server
// answered with success but no token.
var ErrNoAccessToken = errors.New("refresh response carried no access token")

// TokenResponse is the body of login and refresh responses.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RefreshAccessToken asks the server for a new access token using only the
// refresh cookie held by the cookie jar. It never attaches the current
// credential and never recurses into refresh handling.
func (c *HTTPClient) RefreshAccessToken(ctx context.Context) (string, error) {
	raw, err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/refresh", Anonymous: true})
	if err != nil {
		return "", err
	}

	tr, err := Decode[TokenResponse](raw)
	if err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return tr.AccessToken, nil
}
