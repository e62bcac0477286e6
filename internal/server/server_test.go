package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notez-be/internal/bootstrap"
	"notez-be/internal/config"
	"notez-be/internal/entity"
	"notez-be/internal/pkg/logger"
	"notez-be/internal/repository/memory"
	"notez-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "notez_session"

type testServer struct {
	app   *fiber.App
	notes *memory.NoteRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mediaRoot := t.TempDir()
	imgDir := filepath.Join(mediaRoot, "public", "owner", "imgs")
	require.NoError(t, os.MkdirAll(imgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "hello.txt"), []byte("hello media"), 0o644))
	media, err := storage.NewLocalStore(mediaRoot)
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{
			BaseURL:     "http://notes.test",
			Environment: "test",
		},
		Database: config.DatabaseConfig{
			Driver:       bootstrap.DriverMemory,
			StoreTimeout: time.Second,
		},
		Session: config.SessionConfig{
			Store:      bootstrap.SessionStoreMemory,
			CookieName: cookieName,
			Expiration: time.Hour,
			LoginTTL:   time.Hour,
		},
		Access: config.AccessConfig{
			AllowedUsers: "owner,reader",
		},
	}

	notes := memory.NewNoteRepository()
	infra := &bootstrap.Infrastructure{
		Notes:          notes,
		SessionStorage: memory.NewSessionStorage(time.Hour),
		Media:          media,
		Logger:         logger.NewNopLogger(),
		ActivityLogger: logger.NewNopLogger(),
	}

	container, err := bootstrap.NewContainer(cfg, infra)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	srv := New(cfg, container)
	app := srv.GetApp()
	app.Get("/test/login/:id", func(c *fiber.Ctx) error {
		if err := container.Sessions.Login(c, &entity.SessionUser{Id: c.Params("id"), Name: "User " + c.Params("id")}); err != nil {
			return err
		}
		return c.SendStatus(http.StatusNoContent)
	})

	return &testServer{app: app, notes: notes}
}

func (s *testServer) login(t *testing.T, userId string) *http.Cookie {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/test/login/"+userId, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func (s *testServer) do(t *testing.T, req *http.Request, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (s *testServer) get(t *testing.T, path string, cookie *http.Cookie) (*http.Response, string) {
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req, cookie)
}

func (s *testServer) seed(t *testing.T, note *entity.Note) {
	t.Helper()
	note.CreatedAt = time.Now()
	require.NoError(t, s.notes.Insert(context.Background(), note))
}

func TestPrivateNoteVisibility(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, &entity.Note{
		Id: "Secret-owner", Title: "Secret", Content: "secret<br />stuff", OwnerId: "owner", OwnerName: "Owner",
	})

	t.Run("anonymous is sent to login", func(t *testing.T) {
		resp, _ := s.get(t, "/notes/Secret-owner", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("another logged in user can read it", func(t *testing.T) {
		resp, body := s.get(t, "/notes/Secret-owner", s.login(t, "reader"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "secret<br />stuff")
	})
}

func TestPublicNoteIsVisibleAnonymously(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, &entity.Note{Id: "Open-owner", Title: "Open", Content: "<b>hi</b>", Public: true, OwnerId: "owner"})

	resp, body := s.get(t, "/notes/Open-owner", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "&lt;b&gt;hi&lt;/b&gt;")
}

func TestCreateNote(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t, "owner")

	resp, _ := s.postForm(t, "/notes/new", url.Values{
		"noteTitle":   {"My Notes"},
		"noteContent": {"first\r\nsecond"},
		"userId":      {"owner"},
		"username":    {"Owner"},
	}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes/MyNotes-owner", resp.Header.Get("Location"))

	resp, body := s.get(t, "/notes/MyNotes-owner", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "My Notes")
	assert.Contains(t, body, "first<br />second")

	resp, body = s.get(t, "/", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/notes/MyNotes-owner")
}

func TestCreateNoteValidation(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t, "owner")

	t.Run("missing title", func(t *testing.T) {
		resp, _ := s.postForm(t, "/notes/new", url.Values{"noteContent": {"body"}}, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("claims another user", func(t *testing.T) {
		resp, _ := s.postForm(t, "/notes/new", url.Values{"noteTitle": {"x"}, "userid": {"reader"}}, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("anonymous submission", func(t *testing.T) {
		resp, _ := s.postForm(t, "/notes/new", url.Values{"noteTitle": {"x"}}, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})
}

func TestUnknownNote(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/notes/ghost-owner", s.login(t, "owner"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Unknown id")
}

func TestGatedRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		cookie   func(t *testing.T) *http.Cookie
		status   int
		location string
	}{
		{"anonymous", func(*testing.T) *http.Cookie { return nil }, http.StatusFound, "/logout"},
		{"not allow-listed", func(t *testing.T) *http.Cookie { return s.login(t, "stranger") }, http.StatusFound, "/logout"},
		{"allow-listed", func(t *testing.T) *http.Cookie { return s.login(t, "reader") }, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := s.get(t, "/notes/new", tt.cookie(t))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestEditShareAndDelete(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t, "owner")
	s.seed(t, &entity.Note{Id: "Draft-owner", Title: "Draft", Content: "a<br />b", OwnerId: "owner"})

	resp, body := s.get(t, "/notes/edit/Draft-owner", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "a\nb")

	resp, body = s.get(t, "/notes/share/Draft-owner", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http://notes.test/notes/Draft-owner")

	resp, _ = s.get(t, "/notes/Draft-owner", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.postForm(t, "/notes/edit/Draft-owner", url.Values{"noteTitle": {"Draft 2"}, "noteContent": {"c"}}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes/Draft-owner", resp.Header.Get("Location"))

	// editing makes the note private again
	resp, _ = s.get(t, "/notes/Draft-owner", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, _ = s.get(t, "/notes/delete/Draft-owner", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.get(t, "/notes/delete/Draft-owner", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.get(t, "/notes/Draft-owner", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMedia(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/media/owner/imgs/hello.txt", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello media", body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	resp, body = s.get(t, "/media/owner/imgs/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "There&#39;s a high chance that that file does not exist.")

	resp, body = s.get(t, "/media/view/owner/imgs/hello.txt", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `src="/media/owner/imgs/hello.txt"`)
}

func TestLoginAndLogoutPages(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t, "owner")

	resp, _ := s.get(t, "/login", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, body := s.get(t, "/login", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No login provider is configured.")

	resp, _ = s.get(t, "/logout", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.get(t, "/", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/logout", resp.Header.Get("Location"))
}

func TestUnknownProvider(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.get(t, "/auth/myspace", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.get(t, "/auth/myspace/callback?code=x&state=y", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"store":"memory"`)
}
