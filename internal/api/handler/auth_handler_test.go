package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/beerlist/beerlist/internal/api/session"
	"github.com/beerlist/beerlist/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.Principal, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.Principal, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.Principal, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Principal, error) {
	return s.loginFn(ctx, username, password)
}

// serveAuth runs h behind the session middleware with a fresh cookie store.
func serveAuth(t *testing.T, h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store := session.NewCookieStore([]byte("test-secret"), 0)
	if err := session.Middleware(store)(h)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.Principal{ID: "u1", Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	rec := serveAuth(t, handler.Register, jsonRequest(http.MethodPost, "/register", `{"username":"alice","password":"secret"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["id"] != "u1" {
		t.Fatalf("unexpected principal payload: %+v", resp)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.DefaultName {
		t.Fatalf("expected %s session cookie, got %+v", session.DefaultName, cookies)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	rec := serveAuth(t, handler.Register, jsonRequest(http.MethodPost, "/register", `{"username":"bob","password":"pwd"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Body.String() != "Unauthorized" {
		t.Fatalf("expected bare Unauthorized body, got %q", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("rejected register must not start a session")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	for _, body := range []string{`{"username":"bob"}`, `{"password":"pwd"}`, `{}`, "not-json"} {
		rec := serveAuth(t, handler.Register, jsonRequest(http.MethodPost, "/register", body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.Principal{ID: "u1", Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	rec := serveAuth(t, handler.Login, jsonRequest(http.MethodPost, "/login", `{"username":"alice","password":"secret"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected principal payload: %+v", resp)
	}
}

func TestAuthHandler_Login_FormBody(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			return &domain.Principal{ID: "u1", Username: username}, nil
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=alice&password=secret"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := serveAuth(t, handler.Login, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	rec := serveAuth(t, handler.Login, jsonRequest(http.MethodPost, "/login", `{"username":"alice","password":"bad"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Body.String() != "Unauthorized" {
		t.Fatalf("expected bare Unauthorized body, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Login_StoreError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.Principal, error) {
			return nil, errors.New("connection refused")
		},
	}
	handler := NewAuthHandler(stub, session.NewManager(""))

	e := echo.New()
	e.Validator = NewValidator()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"username":"alice","password":"pwd"}`), httptest.NewRecorder())

	err := session.Middleware(session.NewCookieStore([]byte("k"), 0))(handler.Login)(c)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestAuthHandler_CheckIfAuthenticated(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, session.NewManager(""))

	rec := serveAuth(t, handler.CheckIfAuthenticated, httptest.NewRequest(http.MethodGet, "/checkIfAuthenticated", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "aa" {
		t.Fatalf("expected 200 aa, got %d %q", rec.Code, rec.Body.String())
	}
}
