package redis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore is a sessions.Store that keeps session values in Redis. The
// cookie only carries the signed session id.
//
// Key format: session:<uuid>
type SessionStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
	ttl     time.Duration
	encoder securecookie.GobEncoder
}

// NewSessionStore creates a SessionStore signing cookies with secret. A ttl of
// zero keeps sessions until they are explicitly removed and issues browser
// session cookies.
func NewSessionStore(client *redis.Client, secret []byte, ttl time.Duration) *SessionStore {
	codecs := securecookie.CodecsFromPairs(secret)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(int(ttl.Seconds()))
		}
	}

	return &SessionStore{
		client: client,
		codecs: codecs,
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		ttl: ttl,
	}
}

// Get returns the session cached in the request registry, loading it on first
// use.
func (s *SessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session referenced by the request cookie. A missing,
// tampered or unknown cookie yields a fresh session rather than an error.
func (s *SessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.options
	sess.Options = &opts
	sess.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &sess.ID, s.codecs...); err != nil {
		sess.ID = ""
		return sess, nil
	}

	found, err := s.load(r.Context(), sess)
	if err != nil {
		return sess, err
	}
	if !found {
		sess.ID = ""
		return sess, nil
	}
	sess.IsNew = false
	return sess, nil
}

// Save writes the session values to Redis and sets the id cookie. A negative
// MaxAge deletes the session.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	ctx := r.Context()

	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.client.Del(ctx, s.key(sess.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	data, err := s.encoder.Serialize(sess.Values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("sign session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

func (s *SessionStore) load(ctx context.Context, sess *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, s.key(sess.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("load session: %w", err)
	}
	if err := s.encoder.Deserialize(data, &sess.Values); err != nil {
		return false, fmt.Errorf("decode session: %w", err)
	}
	return true, nil
}

func (s *SessionStore) key(id string) string {
	return sessionKeyPrefix + id
}
