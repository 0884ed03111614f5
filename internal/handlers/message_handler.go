package handlers

import (
	"vivaham/internal/middleware"
	"vivaham/internal/models"
	"vivaham/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles direct messages and conversation summaries.
type MessageHandler struct {
	service     *services.MessageService
	requireAuth fiber.Handler
	validate    *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService, requireAuth fiber.Handler) *MessageHandler {
	return &MessageHandler{service: service, requireAuth: requireAuth, validate: newValidator()}
}

// RegisterRoutes registers the message and conversation routes.
func (h *MessageHandler) RegisterRoutes(router fiber.Router) {
	messageRoutes := router.Group("/messages", h.requireAuth)
	messageRoutes.Get("/", h.HandleGetMessages)
	messageRoutes.Get("/:userId", h.HandleGetThread)
	messageRoutes.Post("/", h.HandleSendMessage)
	messageRoutes.Put("/:id/read", h.HandleMarkRead)

	router.Get("/conversations", h.requireAuth, h.HandleGetConversations)
}

// SendMessageRequest represents the request body for a new message.
type SendMessageRequest struct {
	FromUserID uint   `json:"fromUserId" validate:"required"`
	ToUserID   uint   `json:"toUserId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

func (h *MessageHandler) HandleGetMessages(c *fiber.Ctx) error {
	messages, err := h.service.ListMessages(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// HandleGetThread returns the caller's exchange with :userId, oldest first.
func (h *MessageHandler) HandleGetThread(c *fiber.Ctx) error {
	otherID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	thread, err := h.service.Thread(middleware.CurrentUserID(c), otherID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(thread)
}

func (h *MessageHandler) HandleSendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	message := &models.Message{FromUserID: req.FromUserID, ToUserID: req.ToUserID, Content: req.Content}
	if err := h.service.SendMessage(middleware.CurrentUserID(c), message); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *MessageHandler) HandleMarkRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	message, err := h.service.MarkAsRead(middleware.CurrentUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(message)
}

func (h *MessageHandler) HandleGetConversations(c *fiber.Ctx) error {
	conversations, err := h.service.Conversations(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversations)
}
