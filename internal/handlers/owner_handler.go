package handlers

import (
	"ratehub/internal/middleware"
	"ratehub/internal/models"
	"ratehub/internal/policy"
	"ratehub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OwnerHandler handles the store owner's dashboard. Every route is bound
// to the caller's own store; ownership is checked before any rating row
// is read.
type OwnerHandler struct {
	storeService  *services.StoreService
	ratingService *services.RatingService
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(storeService *services.StoreService, ratingService *services.RatingService) *OwnerHandler {
	return &OwnerHandler{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

// RegisterRoutes registers the owner dashboard routes.
func (h *OwnerHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	owner := router.Group("/store-owner", authRequired)
	owner.Get("/dashboard/:storeId", middleware.RequirePermission(policy.ActionViewStoreAverage), h.HandleStoreAverage)
	owner.Get("/dashboard/:storeId/ratings", middleware.RequirePermission(policy.ActionViewStoreRatings), h.HandleStoreRatings)
}

// ownedStore resolves the requested store and reports whether the caller
// owns it.
func (h *OwnerHandler) ownedStore(c *fiber.Ctx) (*models.Store, error) {
	store, err := h.storeService.Find(c.Params("storeId"))
	if err != nil {
		return nil, err
	}
	if !policy.OwnsStore(store, middleware.CallerID(c)) {
		return nil, models.ErrForbidden
	}
	return store, nil
}

// HandleStoreAverage returns the owner's store aggregate.
func (h *OwnerHandler) HandleStoreAverage(c *fiber.Ctx) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return fail(c, err)
	}
	summary, err := h.ratingService.Average(store.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// HandleStoreRatings returns the paginated rater list for the owner's
// store, newest first.
func (h *OwnerHandler) HandleStoreRatings(c *fiber.Ctx) error {
	store, err := h.ownedStore(c)
	if err != nil {
		return fail(c, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	ratings, total, err := h.ratingService.ListForStore(store.ID, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(ratings, total, page, limit))
}
