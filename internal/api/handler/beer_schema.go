package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/beerlist/beerlist/internal/core/domain"
)

// errorResponse is the standard error envelope returned on 4xx/5xx responses
// that carry a body.
type errorResponse struct {
	Error string `json:"error"`
}

// abvParam accepts the ABV as a JSON number, a numeric string, an empty string
// or null. Forms always send it as a string.
type abvParam struct {
	value *float64
}

func (a *abvParam) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		a.value = nil
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return a.UnmarshalParam(s)
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("abv: %w", err)
	}
	a.value = &f
	return nil
}

// UnmarshalParam satisfies echo.BindUnmarshaler for form bodies.
func (a *abvParam) UnmarshalParam(param string) error {
	s := strings.TrimSpace(param)
	if s == "" {
		a.value = nil
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("abv: %q is not a number", param)
	}
	a.value = &f
	return nil
}

// --- Request / Response types ---

// createBeerRequest has no id field: a client-supplied id is ignored.
type createBeerRequest struct {
	Name     string   `json:"name"      form:"name"`
	Style    string   `json:"style"     form:"style"`
	ImageURL string   `json:"image_url" form:"image_url"`
	ABV      abvParam `json:"abv"       form:"abv"`
}

// updateBeerRequest only reads name; the rest of the body is ignored.
type updateBeerRequest struct {
	Name string `json:"name" form:"name"`
}

type beerResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Style    string   `json:"style"`
	ImageURL string   `json:"image_url"`
	ABV      *float64 `json:"abv"`
}

type credentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type principalResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func toBeerResponse(b *domain.Beer) beerResponse {
	return beerResponse{
		ID:       b.ID,
		Name:     b.Name,
		Style:    b.Style,
		ImageURL: b.ImageURL,
		ABV:      b.ABV,
	}
}

func toBeerListResponse(beers []*domain.Beer) []beerResponse {
	out := make([]beerResponse, len(beers))
	for i, b := range beers {
		out[i] = toBeerResponse(b)
	}
	return out
}

func toPrincipalResponse(p *domain.Principal) principalResponse {
	return principalResponse{ID: p.ID, Username: p.Username}
}
