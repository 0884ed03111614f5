package handlers

import (
	"vivaham/internal/middleware"
	"vivaham/internal/models"
	"vivaham/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PreferenceHandler handles partner preference requests.
type PreferenceHandler struct {
	service     *services.PreferenceService
	requireAuth fiber.Handler
	validate    *validator.Validate
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(service *services.PreferenceService, requireAuth fiber.Handler) *PreferenceHandler {
	return &PreferenceHandler{service: service, requireAuth: requireAuth, validate: newValidator()}
}

// RegisterRoutes registers the preference routes.
func (h *PreferenceHandler) RegisterRoutes(router fiber.Router) {
	prefRoutes := router.Group("/preferences", h.requireAuth)
	prefRoutes.Get("/:userId", h.HandleGetPreferences)
	prefRoutes.Post("/", h.HandleCreatePreferences)
	prefRoutes.Put("/:id", h.HandleUpdatePreferences)
}

// CreatePreferenceRequest represents the request body for new preferences.
type CreatePreferenceRequest struct {
	UserID        uint    `json:"userId" validate:"required"`
	AgeMin        int     `json:"ageMin" validate:"required,min=18,max=120"`
	AgeMax        int     `json:"ageMax" validate:"required,min=18,max=120"`
	HeightMin     *string `json:"heightMin"`
	HeightMax     *string `json:"heightMax"`
	MaritalStatus *string `json:"maritalStatus"`
	MotherTongue  *string `json:"motherTongue"`
	Religion      *string `json:"religion"`
	Caste         *string `json:"caste"`
	Education     *string `json:"education"`
	Profession    *string `json:"profession"`
	Location      *string `json:"location"`
}

func (h *PreferenceHandler) HandleGetPreferences(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	pref, err := h.service.GetPreferences(middleware.CurrentUserID(c), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pref)
}

func (h *PreferenceHandler) HandleCreatePreferences(c *fiber.Ctx) error {
	var req CreatePreferenceRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	pref := &models.UserPreference{
		UserID:        req.UserID,
		AgeMin:        req.AgeMin,
		AgeMax:        req.AgeMax,
		HeightMin:     req.HeightMin,
		HeightMax:     req.HeightMax,
		MaritalStatus: req.MaritalStatus,
		MotherTongue:  req.MotherTongue,
		Religion:      req.Religion,
		Caste:         req.Caste,
		Education:     req.Education,
		Profession:    req.Profession,
		Location:      req.Location,
	}
	if err := h.service.CreatePreferences(middleware.CurrentUserID(c), pref); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pref)
}

func (h *PreferenceHandler) HandleUpdatePreferences(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var patch models.PreferencePatch
	if err := bind(c, h.validate, &patch); err != nil {
		return respondError(c, err)
	}
	pref, err := h.service.UpdatePreferences(middleware.CurrentUserID(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pref)
}
