package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	sessionKey        = "session"
	sessionOptionsKey = "session_options"
)

type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Sessions attaches the caller's session to the context, starting a fresh one
// when the cookie is missing or stale. New sessions are only stored once a
// handler saves them.
func Sessions(store session.Store, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session
		if id, err := c.Cookie(opts.CookieName); err == nil && id != "" {
			found, err := store.Get(c.Request.Context(), id)
			switch {
			case err == nil:
				sess = found
			case !errors.Is(err, domain.ErrNotFound):
				slog.WarnContext(c.Request.Context(), "load session", "error", err)
			}
		}
		if sess == nil {
			sess = session.New()
			setSessionCookie(c, opts, sess)
		}
		c.Set(sessionKey, sess)
		c.Set(sessionOptionsKey, opts)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, opts SessionOptions, sess *session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.CookieName, sess.ID, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
}

// rotateSession replaces the caller's session with a new id that keeps the
// cart, stores it and drops the old id. Used on login so an id handed out
// before authentication never becomes an authenticated one.
func rotateSession(c *gin.Context, store session.Store, user *domain.User) error {
	ctx := c.Request.Context()
	old := currentSession(c)

	fresh := session.New()
	fresh.Cart = old.Cart
	fresh.Login(user)
	if err := store.Put(ctx, fresh); err != nil {
		return err
	}
	if err := store.Delete(ctx, old.ID); err != nil {
		slog.WarnContext(ctx, "drop previous session", "error", err)
	}

	if v, ok := c.Get(sessionOptionsKey); ok {
		if opts, ok := v.(SessionOptions); ok {
			setSessionCookie(c, opts, fresh)
		}
	}
	c.Set(sessionKey, fresh)
	return nil
}

func currentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.New()
}

// RequireLogin rejects anonymous sessions with 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrLoginRequired.Error()})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous sessions with 401 and non-admins with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrLoginRequired.Error()})
			return
		}
		if !sess.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrAdminRequired.Error()})
			return
		}
		c.Next()
	}
}
