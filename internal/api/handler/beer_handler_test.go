package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/beerlist/beerlist/internal/core/domain"
	"github.com/beerlist/beerlist/internal/core/ports"
)

type stubBeerService struct {
	listFn   func(ctx context.Context) ([]*domain.Beer, error)
	createFn func(ctx context.Context, in ports.CreateBeerInput) (*domain.Beer, error)
	renameFn func(ctx context.Context, id, name string) (*domain.Beer, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBeerService) ListBeers(ctx context.Context) ([]*domain.Beer, error) {
	return s.listFn(ctx)
}

func (s *stubBeerService) CreateBeer(ctx context.Context, in ports.CreateBeerInput) (*domain.Beer, error) {
	return s.createFn(ctx, in)
}

func (s *stubBeerService) RenameBeer(ctx context.Context, id, name string) (*domain.Beer, error) {
	return s.renameFn(ctx, id, name)
}

func (s *stubBeerService) DeleteBeer(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func floatPtr(f float64) *float64 { return &f }

func newBeerContext(method, target, body, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBeerHandler_List(t *testing.T) {
	stub := &stubBeerService{
		listFn: func(ctx context.Context) ([]*domain.Beer, error) {
			return []*domain.Beer{
				{ID: "b1", Name: "Pilsner", Style: "Lager", ImageURL: "http://img/p.png", ABV: floatPtr(4.8)},
				{ID: "b2", Name: "Mystery"},
			}, nil
		},
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, rec := newBeerContext(http.MethodGet, "/beers", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 beers, got %d", len(resp))
	}
	if resp[0]["id"] != "b1" || resp[0]["image_url"] != "http://img/p.png" || resp[0]["abv"] != 4.8 {
		t.Fatalf("unexpected first beer: %+v", resp[0])
	}
	if resp[1]["abv"] != nil {
		t.Fatalf("expected null abv, got %v", resp[1]["abv"])
	}
}

func TestBeerHandler_List_Empty(t *testing.T) {
	stub := &stubBeerService{
		listFn: func(ctx context.Context) ([]*domain.Beer, error) { return []*domain.Beer{}, nil },
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, rec := newBeerContext(http.MethodGet, "/beers", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestBeerHandler_List_StoreError(t *testing.T) {
	stub := &stubBeerService{
		listFn: func(ctx context.Context) ([]*domain.Beer, error) { return nil, errors.New("boom") },
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, rec := newBeerContext(http.MethodGet, "/beers", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestBeerHandler_Create(t *testing.T) {
	var got ports.CreateBeerInput
	stub := &stubBeerService{
		createFn: func(ctx context.Context, in ports.CreateBeerInput) (*domain.Beer, error) {
			got = in
			return &domain.Beer{ID: "new-id", Name: in.Name, Style: in.Style, ImageURL: in.ImageURL, ABV: in.ABV}, nil
		},
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	body := `{"_id":"client-id","id":"client-id","name":"IPA","style":"Ale","image_url":"http://img/ipa.png","abv":6.5}`
	c, rec := newBeerContext(http.MethodPost, "/beers", body, echo.MIMEApplicationJSON)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Name != "IPA" || got.Style != "Ale" || got.ImageURL != "http://img/ipa.png" || got.ABV == nil || *got.ABV != 6.5 {
		t.Fatalf("unexpected input: %+v", got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "new-id" {
		t.Fatalf("expected store-assigned id, got %v", resp["id"])
	}
}

func TestBeerHandler_Create_ABVForms(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		contentType string
		want        *float64
	}{
		{"number", `{"name":"a","abv":5}`, echo.MIMEApplicationJSON, floatPtr(5)},
		{"numeric string", `{"name":"a","abv":"5.2"}`, echo.MIMEApplicationJSON, floatPtr(5.2)},
		{"empty string", `{"name":"a","abv":""}`, echo.MIMEApplicationJSON, nil},
		{"null", `{"name":"a","abv":null}`, echo.MIMEApplicationJSON, nil},
		{"absent", `{"name":"a"}`, echo.MIMEApplicationJSON, nil},
		{"form", "name=a&abv=7.1", echo.MIMEApplicationForm, floatPtr(7.1)},
		{"form empty", "name=a&abv=", echo.MIMEApplicationForm, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got *float64
			stub := &stubBeerService{
				createFn: func(ctx context.Context, in ports.CreateBeerInput) (*domain.Beer, error) {
					got = in.ABV
					return &domain.Beer{ID: "x", Name: in.Name, ABV: in.ABV}, nil
				},
			}
			h := NewBeerHandler(stub, zerolog.Nop())

			c, rec := newBeerContext(http.MethodPost, "/beers", tc.body, tc.contentType)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected nil abv, got %v", *got)
			case tc.want != nil && (got == nil || *got != *tc.want):
				t.Fatalf("expected abv %v, got %v", *tc.want, got)
			}
		})
	}
}

func TestBeerHandler_Create_InvalidABV(t *testing.T) {
	stub := &stubBeerService{
		createFn: func(ctx context.Context, in ports.CreateBeerInput) (*domain.Beer, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, _ := newBeerContext(http.MethodPost, "/beers", `{"name":"a","abv":"strong"}`, echo.MIMEApplicationJSON)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBeerHandler_Update_RenamesOnly(t *testing.T) {
	stub := &stubBeerService{
		renameFn: func(ctx context.Context, id, name string) (*domain.Beer, error) {
			if id != "b1" || name != "Renamed" {
				t.Fatalf("unexpected args: %s %s", id, name)
			}
			return &domain.Beer{ID: id, Name: name, Style: "Lager"}, nil
		},
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, rec := newBeerContext(http.MethodPut, "/beers/b1", `{"name":"Renamed","style":"Stout","abv":12}`, echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["style"] != "Lager" {
		t.Fatalf("style must not change, got %v", resp["style"])
	}
}

func TestBeerHandler_Update_NotFound(t *testing.T) {
	stub := &stubBeerService{
		renameFn: func(ctx context.Context, id, name string) (*domain.Beer, error) {
			return nil, fmt.Errorf("rename beer: %w", domain.ErrBeerNotFound)
		},
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, _ := newBeerContext(http.MethodPut, "/beers/missing", `{"name":"x"}`, echo.MIMEApplicationJSON)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	var he *echo.HTTPError
	if err := h.Update(c); !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestBeerHandler_Delete(t *testing.T) {
	var deleted string
	stub := &stubBeerService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, rec := newBeerContext(http.MethodDelete, "/beers/b1", "", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "b1" {
		t.Fatalf("expected 204 for b1, got %d for %q", rec.Code, deleted)
	}
}

func TestBeerHandler_Delete_LookupError(t *testing.T) {
	stub := &stubBeerService{
		deleteFn: func(ctx context.Context, id string) error { return domain.ErrBeerNotFound },
	}
	h := NewBeerHandler(stub, zerolog.Nop())

	c, rec := newBeerContext(http.MethodDelete, "/beers/b1", "", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != domain.ErrBeerNotFound.Error() {
		t.Fatalf("expected error body, got %q", resp.Error)
	}
}

func TestActor(t *testing.T) {
	c, _ := newBeerContext(http.MethodPost, "/beers", "", "")
	if actor(c) != "anonymous" {
		t.Fatalf("expected anonymous, got %q", actor(c))
	}
	c.Set("principal", &domain.Principal{ID: "u1", Username: "alice"})
	if actor(c) != "alice" || ctxPrincipal(c).ID != "u1" {
		t.Fatalf("expected alice, got %q", actor(c))
	}
}
