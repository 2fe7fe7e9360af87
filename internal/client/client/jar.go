package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

type storedCookie struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// PersistentJar is an http.CookieJar that mirrors every cookie it accepts
// into the metadata table, so the refresh cookie outlives the process.
type PersistentJar struct {
	inner *cookiejar.Jar
	repo  metadata.Repository
	log   logging.Logger
	now   func() time.Time

	mu     sync.Mutex
	stored map[string]storedCookie
}

// NewPersistentJar loads previously stored cookies that have not expired.
func NewPersistentJar(ctx context.Context, repo metadata.Repository, log logging.Logger) (*PersistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}

	j := &PersistentJar{
		inner:  inner,
		repo:   repo,
		log:    log,
		now:    time.Now,
		stored: map[string]storedCookie{},
	}

	raw, err := repo.Get(ctx, common.CookiesKey)
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	if raw == nil {
		return j, nil
	}

	var list []storedCookie
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Warn(ctx, "discarding unreadable stored cookies", "error", err)
		return j, nil
	}

	now := j.now()
	for _, sc := range list {
		if !sc.Expires.IsZero() && !sc.Expires.After(now) {
			continue
		}
		u, err := url.Parse(sc.URL)
		if err != nil {
			continue
		}
		j.inner.SetCookies(u, []*http.Cookie{sc.cookie()})
		j.stored[cookieKey(sc)] = sc
	}
	return j, nil
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	inner := j.inner
	j.mu.Unlock()
	return inner.Cookies(u)
}

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.inner.SetCookies(u, cookies)
	now := j.now()
	for _, c := range cookies {
		sc := storedCookie{
			URL:      (&url.URL{Scheme: u.Scheme, Host: u.Host}).String(),
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
		switch {
		case c.MaxAge < 0:
			delete(j.stored, cookieKey(sc))
			continue
		case c.MaxAge > 0:
			sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		case !c.Expires.IsZero():
			sc.Expires = c.Expires
		}
		if !sc.Expires.IsZero() && !sc.Expires.After(now) {
			delete(j.stored, cookieKey(sc))
			continue
		}
		j.stored[cookieKey(sc)] = sc
	}
	list := make([]storedCookie, 0, len(j.stored))
	for _, sc := range j.stored {
		list = append(list, sc)
	}
	j.mu.Unlock()

	if err := j.save(list); err != nil {
		j.log.Warn(context.Background(), "failed to persist cookies", "error", err)
	}
}

// Clear drops every stored cookie.
func (j *PersistentJar) Clear(ctx context.Context) error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.inner = inner
	j.stored = map[string]storedCookie{}
	j.mu.Unlock()
	return j.repo.Delete(ctx, common.CookiesKey)
}

func (j *PersistentJar) save(list []storedCookie) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return j.repo.Set(context.Background(), common.CookiesKey, data)
}

func (sc storedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     sc.Name,
		Value:    sc.Value,
		Path:     sc.Path,
		Domain:   sc.Domain,
		Expires:  sc.Expires,
		Secure:   sc.Secure,
		HttpOnly: sc.HttpOnly,
	}
}

func cookieKey(sc storedCookie) string {
	return sc.URL + "|" + sc.Domain + "|" + sc.Path + "|" + sc.Name
}
