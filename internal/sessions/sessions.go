package sessions

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// Options configures the session cookie. A nil Storage keeps sessions in
// process memory.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Storage    fiber.Storage
}

// Manager binds an authenticated user id to an opaque session cookie.
type Manager struct {
	store *session.Store
}

// New creates a Manager backed by a fiber session store.
func New(opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "vivaham_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: session.New(session.Config{
		Expiration:     opts.TTL,
		Storage:        opts.Storage,
		KeyLookup:      "cookie:" + opts.CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   opts.Secure,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})}
}

// Login starts a fresh session for userID. The session id is regenerated so
// a cookie issued before login can never be promoted.
func (m *Manager) Login(c *fiber.Ctx, userID uint) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(userIDKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// UserID returns the user bound to the request's session, if any.
func (m *Manager) UserID(c *fiber.Ctx) (uint, bool, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load session: %w", err)
	}
	id, ok := sess.Get(userIDKey).(uint)
	if !ok || id == 0 {
		return 0, false, nil
	}
	return id, true, nil
}

// Logout destroys the request's session and expires its cookie.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
