package sessionauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notez-be/internal/entity"
	"notez-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type whoami struct {
	HasUser       bool   `json:"has_user"`
	UserId        string `json:"user_id"`
	Authenticated bool   `json:"authenticated"`
	Fault         bool   `json:"fault"`
}

func newTestApp(t *testing.T, m *Manager, store *session.Store) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(m.Middleware())

	app.Get("/login-as/:id", func(c *fiber.Ctx) error {
		return m.Login(c, &entity.SessionUser{Id: c.Params("id"), Name: "Tester", Provider: "github"})
	})
	app.Get("/logout", func(c *fiber.Ctx) error { return m.Logout(c) })
	app.Get("/corrupt", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set(keyUser, 42)
		return sess.Save()
	})
	app.Get("/state/:value", func(c *fiber.Ctx) error { return m.SetState(c, c.Params("value")) })
	app.Get("/take-state", func(c *fiber.Ctx) error {
		s, err := m.TakeState(c)
		if err != nil {
			return err
		}
		return c.SendString(s)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		v := ViewerFrom(c)
		w := whoami{Authenticated: v.Authenticated, Fault: v.Fault != nil}
		if v.User != nil {
			w.HasUser = true
			w.UserId = v.User.Id
		}
		return c.JSON(w)
	})
	return app
}

func newStore() *session.Store {
	return session.New(session.Config{
		Storage:    memory.NewSessionStorage(time.Hour),
		Expiration: time.Hour,
		KeyLookup:  "cookie:notez_test",
	})
}

func do(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) whoami {
	t.Helper()
	var w whoami
	require.NoError(t, fiberJSON(resp, &w))
	return w
}

func TestLoginThenResolve(t *testing.T) {
	store := newStore()
	m := NewManager(store, time.Hour)
	app := newTestApp(t, m, store)

	anon := decode(t, do(t, app, "/whoami", nil))
	assert.False(t, anon.HasUser)
	assert.False(t, anon.Authenticated)

	login := do(t, app, "/login-as/42", nil)
	cookies := login.Cookies()
	require.NotEmpty(t, cookies)

	me := decode(t, do(t, app, "/whoami", cookies))
	assert.True(t, me.HasUser)
	assert.Equal(t, "42", me.UserId)
	assert.True(t, me.Authenticated)
	assert.False(t, me.Fault)

	do(t, app, "/logout", cookies)
	after := decode(t, do(t, app, "/whoami", cookies))
	assert.False(t, after.HasUser)
}

func TestExpiredLoginKeepsUserButNotAuthenticated(t *testing.T) {
	store := newStore()
	m := NewManager(store, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	app := newTestApp(t, m, store)

	cookies := do(t, app, "/login-as/42", nil).Cookies()
	m.now = time.Now

	me := decode(t, do(t, app, "/whoami", cookies))
	assert.True(t, me.HasUser)
	assert.False(t, me.Authenticated)
}

func TestCorruptSessionIsAFault(t *testing.T) {
	store := newStore()
	m := NewManager(store, time.Hour)
	app := newTestApp(t, m, store)

	cookies := do(t, app, "/corrupt", nil).Cookies()

	me := decode(t, do(t, app, "/whoami", cookies))
	assert.True(t, me.Fault)
	assert.False(t, me.HasUser)
}

func TestStateIsTakenOnce(t *testing.T) {
	store := newStore()
	m := NewManager(store, time.Hour)
	app := newTestApp(t, m, store)

	cookies := do(t, app, "/state/abc", nil).Cookies()

	first := do(t, app, "/take-state", cookies)
	assert.Equal(t, "abc", readBody(t, first))

	second := do(t, app, "/take-state", cookies)
	assert.Equal(t, "", readBody(t, second))
}
