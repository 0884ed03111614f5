package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"vivaham/internal/apperrors"
	"vivaham/internal/logger"
	"vivaham/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, v *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.Validation("Invalid request body", map[string]string{"body": err.Error()})
	}
	if err := v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("failed to validate request: %w", err)
		}
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = describe(e)
		}
		return apperrors.Validation("Validation failed", fields)
	}
	return nil
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min", "max", "oneof":
		return fmt.Sprintf("failed on the '%s=%s' rule", e.Tag(), e.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
}

// paramID parses a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Invalid id", map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}

// respondError renders err with the status of its kind. Unclassified errors
// are logged and reported without detail.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.StatusCode(err)
	var appErr *apperrors.Error
	if status == fiber.StatusInternalServerError || !errors.As(err, &appErr) {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.Locals("requestid"),
		}).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	body := fiber.Map{"message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(status).JSON(body)
}

// Profile is a User as rendered to clients, with the derived age.
type Profile struct {
	models.User
	Age *int `json:"age"`
}

func toProfile(u *models.User, now time.Time) Profile {
	p := Profile{User: *u}
	if age, ok := models.AgeAt(u.DateOfBirth, now); ok {
		p.Age = &age
	}
	return p
}

func toProfiles(users []models.User, now time.Time) []Profile {
	out := make([]Profile, 0, len(users))
	for i := range users {
		out = append(out, toProfile(&users[i], now))
	}
	return out
}
