package client

import (
	"context"
	"errors"
	"fmt"
)

// KeyEnter is the key code that commits an edit.
const KeyEnter = 13

// AlertFunc shows a message to the user.
type AlertFunc func(msg string)

// BeerView renders one BeerItem and handles its edit and delete interactions.
type BeerView struct {
	item     *BeerItem
	beers    *Collection
	api      *API
	renderer *Renderer
	alert    AlertFunc

	html      string
	renderErr error
	nameInput string
	detached  bool

	subs     []func()
	onDetach func(*BeerView)
}

func newBeerView(item *BeerItem, beers *Collection, api *API, r *Renderer, alert AlertFunc) *BeerView {
	v := &BeerView{item: item, beers: beers, api: api, renderer: r, alert: alert}
	v.subs = []func(){
		item.On(EventDestroy, func(*BeerItem) { v.Detach() }),
		item.On(EventChangeEditMode, func(*BeerItem) { v.renderEdit() }),
		item.On(EventChangeName, func(*BeerItem) { v.render() }),
	}
	v.render()
	return v
}

func (v *BeerView) Item() *BeerItem { return v.item }

// HTML returns the last rendered fragment.
func (v *BeerView) HTML() (string, error) { return v.html, v.renderErr }

func (v *BeerView) Detached() bool { return v.detached }

// NameInput is the current value of the inline name field.
func (v *BeerView) NameInput() string { return v.nameInput }

// SetNameInput records what the user typed into the inline name field.
func (v *BeerView) SetNameInput(s string) { v.nameInput = s }

func (v *BeerView) ToggleEditMode() {
	v.item.SetEditMode(!v.item.EditMode())
}

// KeyPress commits the edit on Enter and ignores every other key.
func (v *BeerView) KeyPress(ctx context.Context, key int) Result[Beer] {
	if key != KeyEnter {
		return Ok(v.item.Beer())
	}
	return v.Close(ctx)
}

// Blur commits the edit when the name field loses focus.
func (v *BeerView) Blur(ctx context.Context) Result[Beer] {
	return v.Close(ctx)
}

// Close leaves edit mode and saves the typed name. On failure the name is put
// back to its value before the edit. Outside edit mode it does nothing.
func (v *BeerView) Close(ctx context.Context) Result[Beer] {
	if !v.item.EditMode() {
		return Ok(v.item.Beer())
	}

	oldName := v.item.Name()
	v.item.SetName(v.nameInput)
	v.item.SetEditMode(false)

	res := v.api.SaveBeer(ctx, v.item.Beer())
	if res.Err != nil {
		v.item.SetName(oldName)
		switch {
		case errors.Is(res.Err, ErrUnauthorized):
			v.alert("You're not authorized to change the beer's name")
		default:
			v.alert(fmt.Sprintf("Could not change the beer's name: %v", res.Err))
		}
	}
	return res
}

// Remove deletes the beer on the server first. Only a confirmed delete removes
// it from the collection, which detaches this view.
func (v *BeerView) Remove(ctx context.Context) Result[struct{}] {
	res := v.api.DestroyBeer(ctx, v.item.ID())
	switch {
	case res.Err == nil:
		v.beers.Remove(v.item)
	case errors.Is(res.Err, ErrUnauthorized):
		v.alert("You're not authorized to remove this beer")
	default:
		v.alert(fmt.Sprintf("Could not remove this beer: %v", res.Err))
	}
	return res
}

// Detach drops every subscription the view holds. Safe to call twice.
func (v *BeerView) Detach() {
	if v.detached {
		return
	}
	v.detached = true
	for _, cancel := range v.subs {
		cancel()
	}
	v.subs = nil
	if v.onDetach != nil {
		v.onDetach(v)
	}
}

// renderEdit re-renders and, when entering edit mode, seeds the name field.
func (v *BeerView) renderEdit() {
	if v.item.EditMode() {
		v.nameInput = v.item.Name()
	}
	v.render()
}

func (v *BeerView) render() {
	v.html, v.renderErr = v.renderer.renderItem(v.item)
}
