package handlers

import (
	"vivaham/internal/middleware"
	"vivaham/internal/models"
	"vivaham/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InterestHandler handles express-interest requests.
type InterestHandler struct {
	service     *services.InterestService
	requireAuth fiber.Handler
	validate    *validator.Validate
}

// NewInterestHandler creates a new InterestHandler.
func NewInterestHandler(service *services.InterestService, requireAuth fiber.Handler) *InterestHandler {
	return &InterestHandler{service: service, requireAuth: requireAuth, validate: newValidator()}
}

// RegisterRoutes registers the interest routes.
func (h *InterestHandler) RegisterRoutes(router fiber.Router) {
	interestRoutes := router.Group("/interests", h.requireAuth)
	interestRoutes.Get("/", h.HandleGetInterests)
	interestRoutes.Post("/", h.HandleCreateInterest)
	interestRoutes.Put("/:id", h.HandleRespondToInterest)
}

// CreateInterestRequest represents the request body for a new interest. Any
// status sent by the client is ignored.
type CreateInterestRequest struct {
	FromUserID uint `json:"fromUserId" validate:"required"`
	ToUserID   uint `json:"toUserId" validate:"required"`
}

// RespondInterestRequest represents the request body for answering an interest.
type RespondInterestRequest struct {
	Status models.InterestStatus `json:"status"`
}

func (h *InterestHandler) HandleGetInterests(c *fiber.Ctx) error {
	interests, err := h.service.ListInterests(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(interests)
}

func (h *InterestHandler) HandleCreateInterest(c *fiber.Ctx) error {
	var req CreateInterestRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	interest := &models.Interest{FromUserID: req.FromUserID, ToUserID: req.ToUserID}
	if err := h.service.ExpressInterest(middleware.CurrentUserID(c), interest); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(interest)
}

// HandleRespondToInterest accepts or declines an interest sent to the caller.
func (h *InterestHandler) HandleRespondToInterest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req RespondInterestRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	interest, err := h.service.RespondToInterest(middleware.CurrentUserID(c), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(interest)
}
