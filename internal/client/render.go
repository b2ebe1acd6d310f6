package client

import (
	"fmt"
	"html/template"
	"strings"
)

// Kind selects the template a record is rendered with.
type Kind string

const (
	KindBeer     Kind = "beer"
	KindLogin    Kind = "login"
	KindRegister Kind = "register"
)

const beerTemplate = `<div class="beer{{if .EditMode}} editing{{end}}" data-id="{{.ID}}">` +
	`{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}` +
	`<span class="name">{{.Name}}</span>` +
	`<span class="style">{{.Style}}</span>` +
	`{{with .ABV}}<span class="abv">{{.}}%</span>{{end}}` +
	`<input class="edit-mode" value="{{.Name}}">` +
	`<button class="edit">Edit</button><button class="remove">Remove</button>` +
	`</div>`

const loginTemplate = `<form class="login">` +
	`<input id="login-username" name="username">` +
	`<input id="login-password" name="password" type="password">` +
	`<button id="loginButton">Login</button>` +
	`</form>`

const registerTemplate = `<form class="register">` +
	`<input id="register-username" name="username">` +
	`<input id="register-password" name="password" type="password">` +
	`<input id="register-retypePassword" name="retypePassword" type="password">` +
	`<span class="errorMsg"></span>` +
	`<button id="registerButton">Register</button>` +
	`</form>`

// beerData is what the beer template sees.
type beerData struct {
	Beer
	EditMode bool
}

// Renderer turns records into HTML fragments, one template per Kind.
type Renderer struct {
	templates map[Kind]*template.Template
}

// NewRenderer returns a Renderer loaded with the default templates.
func NewRenderer() *Renderer {
	r := &Renderer{templates: make(map[Kind]*template.Template)}
	r.Register(KindBeer, template.Must(template.New(string(KindBeer)).Parse(beerTemplate)))
	r.Register(KindLogin, template.Must(template.New(string(KindLogin)).Parse(loginTemplate)))
	r.Register(KindRegister, template.Must(template.New(string(KindRegister)).Parse(registerTemplate)))
	return r
}

// Register sets or replaces the template for kind.
func (r *Renderer) Register(kind Kind, tmpl *template.Template) {
	r.templates[kind] = tmpl
}

func (r *Renderer) Render(kind Kind, data any) (string, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return "", fmt.Errorf("render: no template for %q", kind)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}
	return sb.String(), nil
}

func (r *Renderer) renderItem(item *BeerItem) (string, error) {
	return r.Render(KindBeer, beerData{Beer: item.Beer(), EditMode: item.EditMode()})
}
