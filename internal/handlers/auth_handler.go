package handlers

import (
	"time"

	"vivaham/internal/logger"
	"vivaham/internal/middleware"
	"vivaham/internal/models"
	"vivaham/internal/services"
	"vivaham/internal/sessions"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *sessions.Manager
	requireAuth fiber.Handler
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessionManager *sessions.Manager, requireAuth fiber.Handler) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessionManager,
		requireAuth: requireAuth,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.requireAuth, h.HandleLogout)
	authRoutes.Get("/me", h.requireAuth, h.HandleMe)
	authRoutes.Post("/token", h.requireAuth, h.HandleToken)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username      string  `json:"username" validate:"required,min=3,max=100"`
	Password      string  `json:"password" validate:"required,min=6,max=72"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required"`
	FirstName     string  `json:"firstName" validate:"required"`
	LastName      string  `json:"lastName" validate:"required"`
	Gender        string  `json:"gender" validate:"required"`
	DateOfBirth   string  `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	MotherTongue  string  `json:"motherTongue" validate:"required"`
	Religion      string  `json:"religion" validate:"required"`
	Caste         *string `json:"caste"`
	MaritalStatus string  `json:"maritalStatus" validate:"required"`
	Height        string  `json:"height" validate:"required"`
	Education     string  `json:"education" validate:"required"`
	Profession    string  `json:"profession" validate:"required"`
	Location      string  `json:"location" validate:"required"`
	About         *string `json:"about"`
	ProfilePic    *string `json:"profilePic"`
}

func (r RegisterRequest) toUser() *models.User {
	return &models.User{
		Username:      r.Username,
		Password:      r.Password,
		Email:         r.Email,
		Phone:         r.Phone,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Gender:        r.Gender,
		DateOfBirth:   r.DateOfBirth,
		MotherTongue:  r.MotherTongue,
		Religion:      r.Religion,
		Caste:         r.Caste,
		MaritalStatus: r.MaritalStatus,
		Height:        r.Height,
		Education:     r.Education,
		Profession:    r.Profession,
		Location:      r.Location,
		About:         r.About,
		ProfilePic:    r.ProfilePic,
	}
}

// HandleRegister creates an account and signs the new member in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user := req.toUser()
	if err := h.authService.Register(user); err != nil {
		return respondError(c, err)
	}
	if err := h.sessions.Login(c, user.ID); err != nil {
		return respondError(c, err)
	}

	logger.Log.WithField("user_id", user.ID).Info("user registered")
	return c.Status(fiber.StatusCreated).JSON(toProfile(user, time.Now()))
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials and starts a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil || h.validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.sessions.Login(c, user.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProfile(user, time.Now()))
}

// HandleLogout ends the caller's session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c); err != nil {
		logger.Log.WithError(err).Error("failed to destroy session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to logout"})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// HandleMe returns the signed-in member.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProfile(user, time.Now()))
}

// HandleToken issues a bearer token for the signed-in member.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"token":     token,
		"tokenType": "Bearer",
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}
