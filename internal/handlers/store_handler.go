package handlers

import (
	"ratehub/internal/middleware"
	"ratehub/internal/policy"
	"ratehub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles the user-facing store browsing routes.
type StoreHandler struct {
	storeService  *services.StoreService
	ratingService *services.RatingService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService, ratingService *services.RatingService) *StoreHandler {
	return &StoreHandler{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

// RegisterRoutes registers the browsing routes under /users.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	users := router.Group("/users", authRequired)
	users.Get("/stores", middleware.RequirePermission(policy.ActionBrowseStores), h.HandleListStores)
	users.Get("/stores/:id", middleware.RequirePermission(policy.ActionBrowseStores), h.HandleGetStore)
	users.Get("/stores/:id/average-rating", middleware.RequirePermission(policy.ActionViewStoreAverage), h.HandleStoreAverage)
}

// HandleListStores lists stores with computed averages and the caller's
// own rating per store.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	filters := listFiltersFromQuery(c)
	stores, total, err := h.storeService.List(filters, middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(stores, total, filters.Page, filters.Limit))
}

// HandleGetStore returns a store with its rating aggregate.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	store, summary, err := h.storeService.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"store":         store,
		"averageRating": summary.Average,
		"totalRatings":  summary.Count,
	})
}

// HandleStoreAverage returns just the aggregate for a store.
func (h *StoreHandler) HandleStoreAverage(c *fiber.Ctx) error {
	summary, err := h.ratingService.Average(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
