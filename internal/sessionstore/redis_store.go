package sessionstore

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/repository"
)

var ErrInvalidValueKey = errors.New("session value key is not a string")

// RedisStore keeps session values in Redis; the cookie only carries the signed session id.
type RedisStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	repo repository.SessionRepository
}

func NewRedisStore(repo repository.SessionRepository, secret []byte, opts Options) *RedisStore {
	store := &RedisStore{
		Codecs:  securecookie.CodecsFromPairs(secret),
		Options: opts.cookieOptions(),
		repo:    repo,
	}
	store.MaxAge(opts.MaxAge)

	return store
}

// Get returns the session cached for this request, loading it on first use.
func (that *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(that, name)
}

// New loads the session named by the request cookie or starts an empty one.
// An undecodable cookie yields a fresh session together with the decode error.
func (that *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(that, name)
	opts := *that.Options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err = securecookie.DecodeMulti(name, cookie.Value, &session.ID, that.Codecs...); err != nil {
		session.ID = ""
		return session, err
	}

	values, err := that.repo.GetByID(r.Context(), session.ID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		// expired on the server side, never reuse the id
		session.ID = ""
		return session, nil
	}

	if err != nil {
		return session, fmt.Errorf("%w: %w", apperror.ErrSessionUnavailable, err)
	}

	for key, value := range values {
		session.Values[key] = value
	}
	session.IsNew = false

	return session, nil
}

// Save writes the values to Redis and refreshes the cookie. A negative MaxAge deletes the session.
func (that *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := that.repo.DeleteByID(ctx, session.ID); err != nil {
				return fmt.Errorf("%w: %w", apperror.ErrSessionUnavailable, err)
			}
		}

		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	values, err := stringKeyed(session.Values)
	if err != nil {
		return err
	}

	if err = that.repo.CreateOrUpdate(ctx, session.ID, values, ttlFor(session.Options.MaxAge)); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrSessionUnavailable, err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, that.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))

	return nil
}

// MaxAge sets the cookie lifetime and the signature expiry of every codec.
func (that *RedisStore) MaxAge(age int) {
	that.Options.MaxAge = age

	for _, codec := range that.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

func ttlFor(maxAge int) time.Duration {
	if maxAge == 0 {
		return browserSessionTTL
	}

	return time.Duration(maxAge) * time.Second
}

func stringKeyed(values map[interface{}]interface{}) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(values))

	for key, value := range values {
		name, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValueKey, key)
		}
		result[name] = value
	}

	return result, nil
}
