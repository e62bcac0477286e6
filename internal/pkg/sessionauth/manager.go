// Package sessionauth keeps the OAuth identity in the fiber session and
// exposes it to handlers as an entity.Viewer.
package sessionauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notez-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	keyUser          = "user"
	keyLoggedInUntil = "logged_in_until"
	keyOAuthState    = "oauth_state"

	viewerLocal = "viewer"
)

var errBadPayload = errors.New("session user payload is not a string")

type Manager struct {
	store    *session.Store
	loginTTL time.Duration
	now      func() time.Time
}

func NewManager(store *session.Store, loginTTL time.Duration) *Manager {
	return &Manager{
		store:    store,
		loginTTL: loginTTL,
		now:      time.Now,
	}
}

// Resolve reads the viewer from the request session. It never fails: a
// session that cannot be read yields a viewer with Fault set.
func (m *Manager) Resolve(ctx *fiber.Ctx) entity.Viewer {
	sess, err := m.store.Get(ctx)
	if err != nil {
		return entity.Viewer{Fault: err}
	}

	raw := sess.Get(keyUser)
	if raw == nil {
		return entity.Viewer{}
	}
	payload, ok := raw.(string)
	if !ok {
		return entity.Viewer{Fault: errBadPayload}
	}

	var user entity.SessionUser
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return entity.Viewer{Fault: fmt.Errorf("decode session user: %w", err)}
	}

	until, _ := sess.Get(keyLoggedInUntil).(int64)
	return entity.Viewer{
		User:          &user,
		Authenticated: m.now().Unix() < until,
	}
}

// Login stores user in a fresh session id.
func (m *Manager) Login(ctx *fiber.Ctx, user *entity.SessionUser) error {
	sess, err := m.store.Get(ctx)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.Set(keyUser, string(payload))
	sess.Set(keyLoggedInUntil, m.now().Add(m.loginTTL).Unix())
	sess.Delete(keyOAuthState)
	return sess.Save()
}

func (m *Manager) Logout(ctx *fiber.Ctx) error {
	sess, err := m.store.Get(ctx)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SetState remembers the OAuth state issued to this browser.
func (m *Manager) SetState(ctx *fiber.Ctx, state string) error {
	sess, err := m.store.Get(ctx)
	if err != nil {
		return err
	}
	sess.Set(keyOAuthState, state)
	return sess.Save()
}

// TakeState returns and forgets the remembered OAuth state.
func (m *Manager) TakeState(ctx *fiber.Ctx) (string, error) {
	sess, err := m.store.Get(ctx)
	if err != nil {
		return "", err
	}
	state, _ := sess.Get(keyOAuthState).(string)
	sess.Delete(keyOAuthState)
	return state, sess.Save()
}

// Middleware resolves the viewer once per request.
func (m *Manager) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(viewerLocal, m.Resolve(ctx))
		return ctx.Next()
	}
}

// SetViewer stores v for the rest of the request.
func SetViewer(ctx *fiber.Ctx, v entity.Viewer) {
	ctx.Locals(viewerLocal, v)
}

// ViewerFrom returns the viewer resolved by Middleware, or an anonymous one.
func ViewerFrom(ctx *fiber.Ctx) entity.Viewer {
	v, _ := ctx.Locals(viewerLocal).(entity.Viewer)
	return v
}
