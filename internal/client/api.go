// Package client is a Go client for the BeerList API together with the
// view layer that drives it: an application shell over a beer collection,
// per-beer item views with inline editing, and login/register forms.
//
// Views are single-owner and not safe for concurrent use. Network calls take
// a context and return a Result; wrap them with Async to run them off the
// caller's goroutine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// API talks to the BeerList HTTP server. The session cookie set by login or
// register is kept in the client's cookie jar and sent on later writes.
type API struct {
	base *url.URL
	http *http.Client
}

// NewAPI returns an API rooted at baseURL. httpClient may be nil; when it has
// no cookie jar a copy with a fresh jar is used.
func NewAPI(baseURL string, httpClient *http.Client) (*API, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	hc := &http.Client{}
	if httpClient != nil {
		cp := *httpClient
		hc = &cp
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	return &API{base: base, http: hc}, nil
}

// BeerForm holds the four create-form fields as typed. ABV is sent as text and
// parsed by the server; an empty ABV means none.
type BeerForm struct {
	Name     string `json:"name"`
	Style    string `json:"style"`
	ABV      string `json:"abv"`
	ImageURL string `json:"image_url"`
}

func (a *API) ListBeers(ctx context.Context) Result[[]Beer] {
	var beers []Beer
	if err := a.do(ctx, http.MethodGet, a.base.JoinPath("beers"), nil, &beers); err != nil {
		return Fail[[]Beer](err)
	}
	return Ok(beers)
}

func (a *API) CreateBeer(ctx context.Context, form BeerForm) Result[Beer] {
	var created Beer
	if err := a.do(ctx, http.MethodPost, a.base.JoinPath("beers"), form, &created); err != nil {
		return Fail[Beer](err)
	}
	return Ok(created)
}

// SaveBeer sends the whole record. The server applies only the name.
func (a *API) SaveBeer(ctx context.Context, b Beer) Result[Beer] {
	var saved Beer
	if err := a.do(ctx, http.MethodPut, a.base.JoinPath("beers", b.ID), b, &saved); err != nil {
		return Fail[Beer](err)
	}
	return Ok(saved)
}

func (a *API) DestroyBeer(ctx context.Context, id string) Result[struct{}] {
	if err := a.do(ctx, http.MethodDelete, a.base.JoinPath("beers", id), nil, nil); err != nil {
		return Fail[struct{}](err)
	}
	return Ok(struct{}{})
}

// Authenticate posts the credentials to their endpoint (/login or /register)
// and returns the session principal. Validation is the caller's job.
func (a *API) Authenticate(ctx context.Context, creds Credentials) Result[Principal] {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{creds.Username, creds.Password}

	var p Principal
	if err := a.do(ctx, http.MethodPost, a.base.JoinPath(creds.Endpoint()), body, &p); err != nil {
		return Fail[Principal](err)
	}
	return Ok(p)
}

func (a *API) do(ctx context.Context, method string, u *url.URL, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
