package client

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clinicdesk/internal/client/session"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetadataRepo(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(context.Background(), db))
	return metadata.NewSQLiteRepository(db)
}

func TestPersistentJar_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	u, _ := url.Parse("http://127.0.0.1:8080/api/auth/login")

	j, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	j.SetCookies(u, []*http.Cookie{{Name: common.RefreshCookieName, Value: "r-1", Path: "/", MaxAge: 3600, HttpOnly: true}})

	j2, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)

	refreshURL, _ := url.Parse("http://127.0.0.1:8080/api/auth/refresh")
	got := j2.Cookies(refreshURL)
	require.Len(t, got, 1)
	assert.Equal(t, common.RefreshCookieName, got[0].Name)
	assert.Equal(t, "r-1", got[0].Value)
}

func TestPersistentJar_NegativeMaxAgeRemoves(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	u, _ := url.Parse("http://127.0.0.1:8080/api/auth/logout")

	j, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	j.SetCookies(u, []*http.Cookie{{Name: common.RefreshCookieName, Value: "r-1", Path: "/", MaxAge: 3600}})
	j.SetCookies(u, []*http.Cookie{{Name: common.RefreshCookieName, Value: "", Path: "/", MaxAge: -1}})

	assert.Empty(t, j.Cookies(u))

	j2, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	assert.Empty(t, j2.Cookies(u))
}

func TestPersistentJar_SkipsExpiredOnLoad(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	u, _ := url.Parse("http://127.0.0.1:8080/")

	j, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	j.SetCookies(u, []*http.Cookie{{Name: "short", Value: "v", Path: "/", MaxAge: 60}})

	j2, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	assert.Empty(t, j2.Cookies(u))
}

func TestPersistentJar_UnreadableStoreIsIgnored(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	require.NoError(t, repo.Set(ctx, common.CookiesKey, []byte("{broken")))

	j, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	u, _ := url.Parse("http://127.0.0.1:8080/")
	assert.Empty(t, j.Cookies(u))
}

func TestPersistentJar_Clear(t *testing.T) {
	ctx := context.Background()
	repo := newMetadataRepo(t)
	u, _ := url.Parse("http://127.0.0.1:8080/")

	j, err := NewPersistentJar(ctx, repo, nil)
	require.NoError(t, err)
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1", Path: "/", MaxAge: 60}})

	require.NoError(t, j.Clear(ctx))
	assert.Empty(t, j.Cookies(u))

	raw, err := repo.Get(ctx, common.CookiesKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRefreshAccessToken_UsesCookieNotCredential(t *testing.T) {
	var gotAuth, gotCookie string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: common.RefreshCookieName, Value: "r-1", Path: "/", HttpOnly: true, MaxAge: 600})
		_, _ = io.WriteString(w, `{"access_token":"A1"}`)
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if c, err := r.Cookie(common.RefreshCookieName); err == nil {
			gotCookie = c.Value
		}
		_, _ = io.WriteString(w, `{"access_token":"A2"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx := context.Background()
	jar, err := NewPersistentJar(ctx, newMetadataRepo(t), nil)
	require.NoError(t, err)

	st := session.NewState(nil)
	c := NewHTTPClient(srv.URL+"/api", st, WithHTTPClient(&http.Client{Jar: jar}))

	_, err = c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Anonymous: true})
	require.NoError(t, err)
	st.SetToken("A1")

	tok, err := c.RefreshAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", tok)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "r-1", gotCookie)
}

func TestRefreshAccessToken_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rejected", http.StatusUnauthorized, `{"error":"refresh token not found"}`},
		{"no token", http.StatusOK, `{}`},
		{"bad body", http.StatusOK, `{"access_token":5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, session.NewState(nil))
			tok, err := c.RefreshAccessToken(context.Background())
			assert.Error(t, err)
			assert.Empty(t, tok)
		})
	}
}
