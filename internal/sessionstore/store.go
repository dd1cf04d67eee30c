// Package sessionstore provides the gorilla/sessions stores the scoreboard runs on.
package sessionstore

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	StoreCookie = "cookie"
	StoreRedis  = "redis"
)

// browserSessionTTL bounds server-side data for cookies that only live as long as the browser.
const browserSessionTTL = 24 * time.Hour

// Options are the cookie settings shared by every store.
type Options struct {
	MaxAge int
	Secure bool
}

func (that Options) cookieOptions() *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   that.MaxAge,
		Secure:   that.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewCookieStore keeps the whole session mapping in a cookie signed with secret.
func NewCookieStore(secret []byte, opts Options) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = opts.cookieOptions()
	store.MaxAge(opts.MaxAge)

	return store
}
