package domain

import "errors"

var ErrBeerNotFound = errors.New("beer not found")

// Beer is a single entry of the list. ABV is nil when the client never sent
// a value.
type Beer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Style    string   `json:"style"`
	ImageURL string   `json:"image_url"`
	ABV      *float64 `json:"abv"`
}
