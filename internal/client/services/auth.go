// Package services contains application services for the desk client.
// This file defines the authentication flow: login, register, logout and
// the two refresh variants (silent startup refresh and post-expiry refresh).
package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/clinicdesk/internal/client/client"
	"github.com/dmitrijs2005/clinicdesk/internal/client/metrics"
	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

const (
	loginFailed        = "Login failed"
	registrationFailed = "Registration failed"
)

// API is the part of the request pipeline the services use.
type API interface {
	Execute(ctx context.Context, method, endpoint string, body any, header http.Header) (json.RawMessage, error)
	Do(ctx context.Context, req client.Request) (json.RawMessage, error)
	RefreshAccessToken(ctx context.Context) (string, error)
}

// AuthService defines authentication operations for the REPL.
//
// Contract:
//   - Login: authenticate and install the credential and identity.
//   - Register: create an account; does not log in.
//   - Logout: best-effort server logout, then always clear the session.
//   - SilentRefresh: startup re-authentication from the refresh cookie;
//     never reports failure, only forgets the identity hint.
//   - Refresh: post-expiry refresh; reports whether a new credential is
//     installed. Satisfies client.Refresher.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	SilentRefresh(ctx context.Context)
	Refresh(ctx context.Context) bool
}

type authService struct {
	api     API
	state   *session.State
	log     logging.Logger
	metrics *metrics.Client
}

// NewAuthService constructs an AuthService bound to the pipeline and
// session state. m may be nil.
func NewAuthService(api API, state *session.State, log logging.Logger, m *metrics.Client) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{api: api, state: state, log: log, metrics: m}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return err
	}

	raw, err := a.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/login", Body: body, Anonymous: true})
	if err != nil {
		return authError(err, loginFailed)
	}

	tr, err := client.Decode[client.TokenResponse](raw)
	if err != nil || tr.AccessToken == "" {
		return &client.AuthenticationError{Message: loginFailed, Err: err}
	}

	if err := a.state.Install(ctx, tr.AccessToken, username); err != nil {
		a.log.Warn(ctx, "failed to persist identity hint", "error", err)
	}
	a.log.Info(ctx, "logged in", "username", username)
	return nil
}

func (a *authService) Register(ctx context.Context, username, password string) error {
	body, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return err
	}

	if _, err := a.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/register", Body: body, Anonymous: true}); err != nil {
		return authError(err, registrationFailed)
	}
	return nil
}

// Logout clears the session whether or not the server call succeeded. The
// call's error, if any, is returned afterwards.
func (a *authService) Logout(ctx context.Context) error {
	_, callErr := a.api.Execute(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if callErr != nil {
		a.log.Warn(ctx, "logout call failed", "error", callErr)
	}

	if err := a.state.Clear(ctx); err != nil {
		a.log.Warn(ctx, "failed to delete identity hint", "error", err)
	}
	return callErr
}

func (a *authService) SilentRefresh(ctx context.Context) {
	hints := a.state.Hints()

	username, err := hints.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read identity hint", "error", err)
		return
	}
	if username == "" {
		return
	}

	token, err := a.api.RefreshAccessToken(ctx)
	a.metrics.Refresh("startup", err == nil)
	if err != nil {
		a.log.Debug(ctx, "silent refresh failed", "error", err)
		if err := hints.Delete(ctx); err != nil {
			a.log.Warn(ctx, "failed to delete identity hint", "error", err)
		}
		return
	}

	if err := a.state.Install(ctx, token, username); err != nil {
		a.log.Warn(ctx, "failed to persist identity hint", "error", err)
	}
	a.log.Info(ctx, "session restored", "username", username)
}

func (a *authService) Refresh(ctx context.Context) bool {
	token, err := a.api.RefreshAccessToken(ctx)
	a.metrics.Refresh("expiry", err == nil)
	if err != nil {
		a.log.Debug(ctx, "refresh failed", "error", err)
		return false
	}
	a.state.SetToken(token)
	return true
}

func authError(err error, fallback string) error {
	var re *client.RequestError
	if errors.As(err, &re) && re.Status != 0 {
		msg := re.Message
		if msg == "" || msg == common.MessageFallback {
			msg = fallback
		}
		return &client.AuthenticationError{Message: msg, Err: err}
	}
	return &client.AuthenticationError{Message: fallback, Err: err}
}
