package handlers

import (
	"errors"
	"fmt"

	"ratehub/internal/models"
	"ratehub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// listFiltersFromQuery reads the shared listing query parameters.
func listFiltersFromQuery(c *fiber.Ctx) models.ListFilters {
	return models.ListFilters{
		Name:      c.Query("name"),
		Email:     c.Query("email"),
		Address:   c.Query("address"),
		Role:      c.Query("role"),
		SortBy:    c.Query("sortBy", "id"),
		SortOrder: c.Query("sortOrder", "asc"),
		Page:      c.QueryInt("page", models.DefaultPage),
		Limit:     c.QueryInt("limit", models.DefaultLimit),
	}
}

// fail maps service errors onto the response taxonomy. Field-level
// validation messages come back as a list under "errors"; everything else
// is a single "error" string.
func fail(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []string(verrs)})
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidRole),
		errors.Is(err, models.ErrOwnerNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// failValidation shapes go-playground/validator errors the same way the
// domain validation list is shaped.
func failValidation(c *fiber.Ctx, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, e := range fieldErrs {
			messages = append(messages, fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// paginated wraps a listing result in the standard envelope.
func paginated(data interface{}, total int64, page, limit int) fiber.Map {
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}
	return fiber.Map{
		"data":       data,
		"pagination": models.NewPagination(total, page, limit),
	}
}
