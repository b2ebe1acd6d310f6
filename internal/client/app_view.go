package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// AppView is the application shell: it keeps one BeerView per beer in the
// collection and creates new beers.
type AppView struct {
	beers    *Collection
	api      *API
	renderer *Renderer
	alert    AlertFunc

	views []*BeerView
	subs  []func()
}

// NewAppView binds to the collection's add and reset events and renders the
// beers already in it.
func NewAppView(api *API, beers *Collection, r *Renderer, alert AlertFunc) *AppView {
	v := &AppView{beers: beers, api: api, renderer: r, alert: alert}
	v.subs = []func(){
		beers.On(EventAdd, v.addBeer),
		beers.On(EventReset, func(*BeerItem) { v.renderBeers() }),
	}
	v.renderBeers()
	return v
}

// Load fetches every beer and resets the collection with them.
func (v *AppView) Load(ctx context.Context) Result[[]Beer] {
	res := v.api.ListBeers(ctx)
	if res.Err != nil {
		v.alert(fmt.Sprintf("Could not load beers: %v", res.Err))
		return res
	}
	v.beers.Reset(res.Value)
	return res
}

// CreateBeer creates a beer from the form. The collection is only touched
// once the server has confirmed the create.
func (v *AppView) CreateBeer(ctx context.Context, form BeerForm) Result[Beer] {
	res := v.api.CreateBeer(ctx, form)
	switch {
	case res.Err == nil:
		v.beers.Add(res.Value)
	case errors.Is(res.Err, ErrUnauthorized):
		v.alert("You're not authorized to add beers!")
	default:
		v.alert(fmt.Sprintf("Could not add beer: %v", res.Err))
	}
	return res
}

// Views returns the live beer views in collection order.
func (v *AppView) Views() []*BeerView {
	return slices.Clone(v.views)
}

// View returns the view of the beer with the given id, or nil.
func (v *AppView) View(id string) *BeerView {
	for _, bv := range v.views {
		if bv.Item().ID() == id {
			return bv
		}
	}
	return nil
}

// Render concatenates the fragments of every beer view.
func (v *AppView) Render() (string, error) {
	var sb strings.Builder
	for _, bv := range v.views {
		html, err := bv.HTML()
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	return sb.String(), nil
}

// Close detaches the shell and all of its views.
func (v *AppView) Close() {
	for _, cancel := range v.subs {
		cancel()
	}
	v.subs = nil
	for _, bv := range slices.Clone(v.views) {
		bv.Detach()
	}
}

func (v *AppView) addBeer(item *BeerItem) {
	bv := newBeerView(item, v.beers, v.api, v.renderer, v.alert)
	bv.onDetach = v.dropView
	v.views = append(v.views, bv)
}

func (v *AppView) renderBeers() {
	for _, bv := range slices.Clone(v.views) {
		bv.Detach()
	}
	for _, item := range v.beers.Items() {
		v.addBeer(item)
	}
}

func (v *AppView) dropView(bv *BeerView) {
	v.views = slices.DeleteFunc(v.views, func(x *BeerView) bool { return x == bv })
}
