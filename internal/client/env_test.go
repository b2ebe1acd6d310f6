package client

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/beerlist/beerlist/internal/api"
	"github.com/beerlist/beerlist/internal/api/session"
	"github.com/beerlist/beerlist/internal/core/domain"
)

type memBeerRepo struct {
	mu    sync.Mutex
	seq   int
	order []string
	byID  map[string]domain.Beer
}

func (r *memBeerRepo) Create(ctx context.Context, b *domain.Beer) (*domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	stored := *b
	stored.ID = fmt.Sprintf("beer-%d", r.seq)
	r.order = append(r.order, stored.ID)
	r.byID[stored.ID] = stored
	return &stored, nil
}

func (r *memBeerRepo) FindAll(ctx context.Context) ([]*domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Beer, 0, len(r.order))
	for _, id := range r.order {
		b := r.byID[id]
		out = append(out, &b)
	}
	return out, nil
}

func (r *memBeerRepo) FindByID(ctx context.Context, id string) (*domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBeerNotFound
	}
	return &b, nil
}

func (r *memBeerRepo) Update(ctx context.Context, b *domain.Beer) (*domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[b.ID]; !ok {
		return nil, domain.ErrBeerNotFound
	}
	r.byID[b.ID] = *b
	return b, nil
}

func (r *memBeerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBeerNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memBeerRepo) get(id string) (domain.Beer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	return b, ok
}

func (r *memBeerRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	stored := *user
	stored.ID = "user-" + user.Username
	r.users[user.Username] = stored
	return &stored, nil
}

type testEnv struct {
	server *httptest.Server
	beers  *memBeerRepo
	alerts []string
	users  int
}

// newTestEnv starts the real router over in-memory repositories.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	beers := &memBeerRepo{byID: map[string]domain.Beer{}}
	e := api.NewRouter(api.Deps{
		Beers:       beers,
		Users:       &memUserRepo{users: map[string]domain.User{}},
		Sessions:    session.NewCookieStore([]byte("test-secret"), 0),
		SessionName: session.DefaultName,
		Logger:      zerolog.Nop(),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, beers: beers}
}

// newAPI returns a client with its own cookie jar, i.e. a separate browser.
func (env *testEnv) newAPI(t *testing.T) *API {
	t.Helper()
	a, err := NewAPI(env.server.URL, env.server.Client())
	if err != nil {
		t.Fatalf("NewAPI: %v", err)
	}
	return a
}

// seed stores a beer directly, bypassing the API.
func (env *testEnv) seed(t *testing.T, b domain.Beer) string {
	t.Helper()
	created, err := env.beers.Create(context.Background(), &b)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created.ID
}

func (env *testEnv) alert(msg string) {
	env.alerts = append(env.alerts, msg)
}

func (env *testEnv) lastAlert() string {
	if len(env.alerts) == 0 {
		return ""
	}
	return env.alerts[len(env.alerts)-1]
}

// loggedIn returns a client whose jar holds a session for a fresh user.
func (env *testEnv) loggedIn(t *testing.T) *API {
	t.Helper()
	a := env.newAPI(t)
	env.users++
	res := a.Authenticate(context.Background(), Credentials{
		Username:       fmt.Sprintf("alice%d", env.users),
		Password:       "secret",
		RetypePassword: "secret",
		IsRegisterNew:  true,
	})
	if res.Err != nil {
		t.Fatalf("register: %v", res.Err)
	}
	return a
}
