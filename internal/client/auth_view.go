package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Credentials is the transient model a login or register form submits.
type Credentials struct {
	Username       string `validate:"required"`
	Password       string `validate:"required"`
	RetypePassword string `validate:"required,eqfield=Password"`
	IsRegisterNew  bool
}

// Endpoint is /register for a new account and /login otherwise.
func (c Credentials) Endpoint() string {
	if c.IsRegisterNew {
		return "/register"
	}
	return "/login"
}

var credentialsValidator = validator.New(validator.WithRequiredStructEnabled())

var credentialMessages = map[string]string{
	"Username.required":       "Please fill username field.",
	"Password.required":       "Please fill password field.",
	"RetypePassword.required": "Please fill retype password field.",
	"RetypePassword.eqfield":  "Please make sure password and retype password are equal.",
}

// Validate returns a *ValidationError for the first failing check, in field
// order: username, password, retype present, retype equal.
func (c Credentials) Validate() error {
	err := credentialsValidator.Struct(c)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	msg, ok := credentialMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

// LoginView submits existing credentials. The password doubles as the
// retype value.
type LoginView struct {
	api      *API
	renderer *Renderer
	alert    AlertFunc
}

func NewLoginView(api *API, r *Renderer, alert AlertFunc) *LoginView {
	return &LoginView{api: api, renderer: r, alert: alert}
}

func (v *LoginView) Render() (string, error) {
	return v.renderer.Render(KindLogin, nil)
}

func (v *LoginView) Login(ctx context.Context, username, password string) Result[Principal] {
	creds := Credentials{Username: username, Password: password, RetypePassword: password}
	return submit(ctx, v.api, v.alert, creds, authMessages{
		success:  "%s is successfully logged in",
		rejected: "%s is not logged in",
		failed:   "%s is not logged in: %v",
	})
}

// RegisterView submits a new account.
type RegisterView struct {
	api      *API
	renderer *Renderer
	alert    AlertFunc
}

func NewRegisterView(api *API, r *Renderer, alert AlertFunc) *RegisterView {
	return &RegisterView{api: api, renderer: r, alert: alert}
}

func (v *RegisterView) Render() (string, error) {
	return v.renderer.Render(KindRegister, nil)
}

func (v *RegisterView) Register(ctx context.Context, username, password, retypePassword string) Result[Principal] {
	creds := Credentials{
		Username:       username,
		Password:       password,
		RetypePassword: retypePassword,
		IsRegisterNew:  true,
	}
	return submit(ctx, v.api, v.alert, creds, authMessages{
		success:  "%s is successfully registered",
		rejected: "%s could not be registered",
		failed:   "%s could not be registered: %v",
	})
}

type authMessages struct {
	success  string
	rejected string
	failed   string
}

// submit validates creds and, only if they pass, posts them. Every outcome is
// reported through alert.
func submit(ctx context.Context, api *API, alert AlertFunc, creds Credentials, msgs authMessages) Result[Principal] {
	if err := creds.Validate(); err != nil {
		alert(err.Error())
		return Fail[Principal](err)
	}

	res := api.Authenticate(ctx, creds)
	switch {
	case res.Err == nil:
		alert(fmt.Sprintf(msgs.success, res.Value.Username))
	case errors.Is(res.Err, ErrUnauthorized):
		alert(fmt.Sprintf(msgs.rejected, creds.Username))
	default:
		alert(fmt.Sprintf(msgs.failed, creds.Username, res.Err))
	}
	return res
}
