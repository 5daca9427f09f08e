package handlers

import (
	"ratehub/internal/middleware"
	"ratehub/internal/policy"
	"ratehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler handles rating submission and lookup for normal users.
type RatingHandler struct {
	ratingService *services.RatingService
	validate      *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the rating routes under /users.
func (h *RatingHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	users := router.Group("/users", authRequired)
	users.Post("/ratings", middleware.RequirePermission(policy.ActionSubmitRating), h.HandleSubmitRating)
	users.Get("/ratings/store/:storeId", middleware.RequirePermission(policy.ActionViewOwnRating), h.HandleMyRating)
	users.Delete("/ratings/:id", middleware.RequirePermission(policy.ActionDeleteOwnRating), h.HandleDeleteRating)
}

// SubmitRatingRequest is the request body for submitting a rating.
type SubmitRatingRequest struct {
	StoreID string `json:"storeId" validate:"required"`
	Rating  int    `json:"rating"`
}

// HandleSubmitRating upserts the caller's rating for a store.
func (h *RatingHandler) HandleSubmitRating(c *fiber.Ctx) error {
	var req SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	rating, err := h.ratingService.Submit(middleware.CallerID(c), req.StoreID, req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Rating submitted successfully",
		"rating":  rating,
	})
}

// HandleMyRating returns the caller's rating for a store, null when the
// store has not been rated by them yet.
func (h *RatingHandler) HandleMyRating(c *fiber.Ctx) error {
	rating, err := h.ratingService.MyRating(middleware.CallerID(c), c.Params("storeId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"rating": rating})
}

// HandleDeleteRating deletes the caller's own rating.
func (h *RatingHandler) HandleDeleteRating(c *fiber.Ctx) error {
	if err := h.ratingService.Delete(c.Params("id"), middleware.CallerID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Rating deleted successfully"})
}
