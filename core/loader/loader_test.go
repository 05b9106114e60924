package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
}

func (s stubFeature) Name() string { return s.name }
func (s stubFeature) IsEnabled() bool { return s.enabled }
func (s stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	m := NewManager(nil)
	m.Register(stubFeature{name: "sync", enabled: true})
	m.Register(stubFeature{name: "legacy", enabled: false})

	require.NoError(t, m.LoadAll(app))
	assert.Equal(t, []string{"sync"}, m.Loaded())

	resp, err := app.Test(httptest.NewRequest("GET", "/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/legacy", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestManager_LoadAllErrors(t *testing.T) {
	t.Run("Load failure", func(t *testing.T) {
		m := NewManager(nil)
		m.Register(stubFeature{name: "broken", enabled: true, err: errors.New("boom")})
		err := m.LoadAll(fiber.New())
		assert.EqualError(t, err, `failed to load feature "broken": boom`)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		m := NewManager(nil)
		m.Register(stubFeature{name: "sync", enabled: true})
		m.Register(stubFeature{name: "sync", enabled: true})
		assert.Error(t, m.LoadAll(fiber.New()))
	})
}
