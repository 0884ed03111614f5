package sessions

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"vivaham/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	s := NewRedisStorage(cfg)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStorage_GetSetDelete(t *testing.T) {
	s, _ := newRedisStorage(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("abc", []byte("payload"), 0))
	val, err = s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, s.Delete("abc"))
	val, err = s.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_Expiry(t *testing.T) {
	s, mr := newRedisStorage(t)

	require.NoError(t, s.Set("short", []byte("x"), time.Minute))
	mr.FastForward(2 * time.Minute)

	val, err := s.Get("short")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_ResetKeepsForeignKeys(t *testing.T) {
	s, mr := newRedisStorage(t)

	require.NoError(t, s.Set("one", []byte("1"), 0))
	require.NoError(t, s.Set("two", []byte("2"), 0))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, s.Reset())

	assert.False(t, mr.Exists(redisKeyPrefix+"one"))
	assert.False(t, mr.Exists(redisKeyPrefix+"two"))
	assert.True(t, mr.Exists("unrelated"))
}

// sessionApp exposes Login, UserID and Logout over HTTP so cookies can be
// carried between requests.
func sessionApp(m *Manager) *fiber.App {
	app := fiber.New()
	app.Post("/login/:id", func(c *fiber.Ctx) error {
		id, _ := strconv.Atoi(c.Params("id"))
		if err := m.Login(c, uint(id)); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		id, ok, err := m.UserID(c)
		if err != nil {
			return err
		}
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(strconv.Itoa(int(id)))
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := m.Logout(c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func sessionCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", name)
	return nil
}

func testManagerRoundTrip(t *testing.T, m *Manager) {
	app := sessionApp(m)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login/42", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	cookie := sessionCookie(t, resp, "test_session")
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := make([]byte, 8)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "42", string(body[:n]))

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "destroyed session must not authenticate")
}

func TestManager_MemoryStorage(t *testing.T) {
	testManagerRoundTrip(t, New(Options{CookieName: "test_session", TTL: time.Hour}))
}

func TestManager_RedisStorage(t *testing.T) {
	s, _ := newRedisStorage(t)
	testManagerRoundTrip(t, New(Options{CookieName: "test_session", TTL: time.Hour, Storage: s}))
}
