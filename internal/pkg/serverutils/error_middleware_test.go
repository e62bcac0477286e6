package serverutils

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"notez-be/internal/pkg/logger"
	"notez-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("find: %w", service.ErrNoteNotFound), 404},
		{service.ErrMediaNotFound, 404},
		{fmt.Errorf("%w: Title is required", service.ErrValidation), 400},
		{service.ErrNotNoteOwner, 403},
		{fmt.Errorf("%w: %w", service.ErrStoreUnavailable, errors.New("dial tcp")), 503},
		{fiber.NewError(fiber.StatusTeapot, "short and stout"), 418},
		{errors.New("something else"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got, _ := StatusFor(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusForHidesStoreDetails(t *testing.T) {
	_, msg := StatusFor(fmt.Errorf("%w: %w", service.ErrStoreUnavailable, errors.New("password=hunter2")))
	assert.NotContains(t, msg, "hunter2")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	// no view engine: falls back to plain text
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/missing", func(c *fiber.Ctx) error { return service.ErrNoteNotFound })
	app.Get("/private", func(c *fiber.Ctx) error { return service.ErrLoginRequired })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("fine") })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Unknown id")

	resp, err = app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/no-such-route", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
