package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/mobile-subscribers-api/internal/interfaces/http"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

func TestAPIVersion_NegociaPorAccept(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.APIVersion(false), func(c *fiber.Ctx) error {
		if apphttp.IsV1(c) {
			return c.SendString("v1")
		}
		return c.SendString("legacy")
	})

	cases := []struct {
		accept string
		want   string
	}{
		{"", "legacy"},
		{"application/json", "legacy"},
		{"application/json;v=1", "v1"},
		{"text/html, application/json; v=1", "v1"},
		{`application/json; charset=utf-8;v="1"`, "v1"},
		{"application/json;v=2", "legacy"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.accept != "" {
			req.Header.Set("Accept", tc.accept)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		resp.Body.Close()
		assert.Equal(t, tc.want, buf.String(), "Accept=%q", tc.accept)
	}
}

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	var out bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewWithWriter(&out, "info")))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
	assert.Contains(t, out.String(), `"request_id":"abc-123"`)
	assert.Contains(t, out.String(), `"path":"/ping"`)
}

func TestRequestLogger_GeneraRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Get("/ping", func(c *fiber.Ctx) error { return fiber.ErrTeapot })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
