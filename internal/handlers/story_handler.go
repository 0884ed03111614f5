package handlers

import (
	"strconv"

	"vivaham/internal/apperrors"
	"vivaham/internal/middleware"
	"vivaham/internal/models"
	"vivaham/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoryHandler handles success story requests.
type StoryHandler struct {
	service     *services.StoryService
	requireAuth fiber.Handler
	validate    *validator.Validate
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(service *services.StoryService, requireAuth fiber.Handler) *StoryHandler {
	return &StoryHandler{service: service, requireAuth: requireAuth, validate: newValidator()}
}

// RegisterRoutes registers the success story routes.
func (h *StoryHandler) RegisterRoutes(router fiber.Router) {
	storyRoutes := router.Group("/success-stories")
	storyRoutes.Get("/", h.HandleListStories)
	storyRoutes.Get("/:id", h.HandleGetStory)
	storyRoutes.Post("/", h.requireAuth, h.HandleCreateStory)
}

// CreateStoryRequest represents the request body for a new success story.
type CreateStoryRequest struct {
	User1ID      uint    `json:"user1Id" validate:"required"`
	User2ID      uint    `json:"user2Id" validate:"required"`
	MarriageDate string  `json:"marriageDate" validate:"required,datetime=2006-01-02"`
	Story        string  `json:"story" validate:"required"`
	Photo        *string `json:"photo"`
}

func (h *StoryHandler) HandleListStories(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return respondError(c, apperrors.Validation("Invalid limit", map[string]string{"limit": "must be a non-negative integer"}))
		}
		limit = n
	}
	stories, err := h.service.ListStories(limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stories)
}

func (h *StoryHandler) HandleGetStory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	story, err := h.service.GetStory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(story)
}

func (h *StoryHandler) HandleCreateStory(c *fiber.Ctx) error {
	var req CreateStoryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	story := &models.SuccessStory{
		User1ID:      req.User1ID,
		User2ID:      req.User2ID,
		MarriageDate: req.MarriageDate,
		Story:        req.Story,
		Photo:        req.Photo,
	}
	if err := h.service.CreateStory(middleware.CurrentUserID(c), story); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}
