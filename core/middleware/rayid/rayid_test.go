package rayid

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(Get(c))
	})
	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"Generated when absent", "", false},
		{"Reused when valid", "2f1c3f5e-4b7a-4c1e-9d6a-0f9c1d2e3a4b", true},
		{"Replaced when invalid", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderName, tt.incoming)
			}

			resp, err := setupApp().Test(req)
			require.NoError(t, err)

			body, _ := io.ReadAll(resp.Body)
			id := resp.Header.Get(HeaderName)
			assert.Equal(t, id, string(body))

			_, parseErr := uuid.Parse(id)
			assert.NoError(t, parseErr)
			if tt.reused {
				assert.Equal(t, tt.incoming, id)
			} else {
				assert.NotEqual(t, tt.incoming, id)
			}
		})
	}
}

func TestNew_UniquePerRequest(t *testing.T) {
	app := setupApp()

	first, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	second, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	assert.NotEqual(t, first.Header.Get(HeaderName), second.Header.Get(HeaderName))
}
