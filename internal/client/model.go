package client

import "slices"

// Beer is the record as the API returns it.
type Beer struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Style    string   `json:"style"`
	ImageURL string   `json:"image_url"`
	ABV      *float64 `json:"abv"`
}

// Principal is the identity returned by login and register.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Event names emitted by BeerItem and Collection.
const (
	EventChangeName     = "change:name"
	EventChangeEditMode = "change:edit_mode"
	EventDestroy        = "destroy"
	EventAdd            = "add"
	EventReset          = "reset"
)

type listener[T any] struct {
	id    int
	event string
	fn    func(T)
}

// emitter is an ordered subscription list.
type emitter[T any] struct {
	next      int
	listeners []listener[T]
}

// on subscribes fn to event and returns the function that removes it.
func (e *emitter[T]) on(event string, fn func(T)) func() {
	e.next++
	id := e.next
	e.listeners = append(e.listeners, listener[T]{id: id, event: event, fn: fn})
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(l listener[T]) bool { return l.id == id })
	}
}

func (e *emitter[T]) emit(event string, v T) {
	for _, l := range slices.Clone(e.listeners) {
		if l.event == event {
			l.fn(v)
		}
	}
}

// BeerItem is the client-side state of one beer: the record plus the
// edit-mode flag.
type BeerItem struct {
	beer     Beer
	editMode bool
	events   emitter[*BeerItem]
}

func NewBeerItem(b Beer) *BeerItem {
	return &BeerItem{beer: b}
}

func (i *BeerItem) Beer() Beer     { return i.beer }
func (i *BeerItem) ID() string     { return i.beer.ID }
func (i *BeerItem) Name() string   { return i.beer.Name }
func (i *BeerItem) EditMode() bool { return i.editMode }

// SetName emits EventChangeName when the name actually changes.
func (i *BeerItem) SetName(name string) {
	if i.beer.Name == name {
		return
	}
	i.beer.Name = name
	i.events.emit(EventChangeName, i)
}

// SetEditMode emits EventChangeEditMode when the flag actually changes.
func (i *BeerItem) SetEditMode(on bool) {
	if i.editMode == on {
		return
	}
	i.editMode = on
	i.events.emit(EventChangeEditMode, i)
}

func (i *BeerItem) On(event string, fn func(*BeerItem)) (cancel func()) {
	return i.events.on(event, fn)
}

// Collection is the ordered local list of beers.
type Collection struct {
	items  []*BeerItem
	events emitter[*BeerItem]
}

func NewCollection(beers ...Beer) *Collection {
	c := &Collection{}
	for _, b := range beers {
		c.items = append(c.items, NewBeerItem(b))
	}
	return c
}

func (c *Collection) Len() int { return len(c.items) }

func (c *Collection) Items() []*BeerItem {
	return slices.Clone(c.items)
}

// Get returns the item with the given id, or nil.
func (c *Collection) Get(id string) *BeerItem {
	for _, it := range c.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

// Add appends b and emits EventAdd with the new item.
func (c *Collection) Add(b Beer) *BeerItem {
	item := NewBeerItem(b)
	c.items = append(c.items, item)
	c.events.emit(EventAdd, item)
	return item
}

// Reset replaces the contents and emits EventReset with a nil item.
func (c *Collection) Reset(beers []Beer) {
	c.items = c.items[:0:0]
	for _, b := range beers {
		c.items = append(c.items, NewBeerItem(b))
	}
	c.events.emit(EventReset, nil)
}

// Remove drops item and emits EventDestroy on the item itself. It reports
// whether the item was present.
func (c *Collection) Remove(item *BeerItem) bool {
	idx := slices.Index(c.items, item)
	if idx < 0 {
		return false
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	item.events.emit(EventDestroy, item)
	return true
}

func (c *Collection) On(event string, fn func(*BeerItem)) (cancel func()) {
	return c.events.on(event, fn)
}
