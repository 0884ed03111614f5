package handlers

import (
	"strconv"

	"vivaham/internal/logger"
	"vivaham/internal/middleware"
	"vivaham/internal/models"
	"vivaham/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile, search and featured requests.
type UserHandler struct {
	service       *services.UserService
	requireAuth   fiber.Handler
	validate      *validator.Validate
	featuredLimit int
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, requireAuth fiber.Handler, featuredLimit int) *UserHandler {
	return &UserHandler{
		service:       service,
		requireAuth:   requireAuth,
		validate:      newValidator(),
		featuredLimit: featuredLimit,
	}
}

// RegisterRoutes registers the user routes. The literal paths go first so
// they are not captured by /:id.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/search", h.HandleSearch)
	userRoutes.Get("/featured", h.HandleFeatured)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", h.requireAuth, h.HandleUpdateUser)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.service.GetUser(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProfile(user, h.service.Now()))
}

// HandleUpdateUser applies a partial update to the caller's own profile.
// The password cannot be changed here; a password key in the body is ignored.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var patch models.UserPatch
	if err := bind(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	user, err := h.service.UpdateProfile(middleware.CurrentUserID(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProfile(user, h.service.Now()))
}

// HandleSearch filters profiles by the query string. Any failure yields an
// empty list.
func (h *UserHandler) HandleSearch(c *fiber.Ctx) error {
	filter, err := models.ParseSearchFilter(func(key string) string { return c.Query(key) })
	if err != nil {
		logger.Log.WithError(err).Debug("invalid search filter")
		return c.JSON([]Profile{})
	}
	users, err := h.service.SearchUsers(filter)
	if err != nil {
		logger.Log.WithError(err).Error("search users failed")
		return c.JSON([]Profile{})
	}
	return c.JSON(toProfiles(users, h.service.Now()))
}

// HandleFeatured returns the first ?limit profiles. A missing limit uses the
// configured default; an invalid or non-positive one yields an empty list.
func (h *UserHandler) HandleFeatured(c *fiber.Ctx) error {
	limit := h.featuredLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON([]Profile{})
		}
		limit = n
	}
	users, err := h.service.FeaturedProfiles(limit)
	if err != nil {
		logger.Log.WithError(err).Error("featured profiles failed")
		return c.JSON([]Profile{})
	}
	return c.JSON(toProfiles(users, h.service.Now()))
}
