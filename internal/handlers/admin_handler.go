package handlers

import (
	"ratehub/internal/middleware"
	"ratehub/internal/policy"
	"ratehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin-only management routes.
type AdminHandler struct {
	userService  *services.UserService
	storeService *services.StoreService
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *services.UserService, storeService *services.StoreService) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		storeService: storeService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the admin routes behind the policy gates.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	admin := router.Group("/admin", authRequired)

	admin.Get("/dashboard", middleware.RequirePermission(policy.ActionViewDashboard), h.HandleDashboard)

	users := admin.Group("/users", middleware.RequirePermission(policy.ActionManageUsers))
	users.Post("/", h.HandleCreateUser)
	users.Get("/", h.HandleListUsers)
	users.Get("/:id", h.HandleGetUser)
	users.Put("/:id", h.HandleUpdateUser)
	users.Delete("/:id", h.HandleDeleteUser)

	stores := admin.Group("/stores", middleware.RequirePermission(policy.ActionManageStores))
	stores.Post("/", h.HandleCreateStore)
	stores.Get("/", h.HandleListStores)
	stores.Get("/:id", h.HandleGetStore)
	stores.Put("/:id", h.HandleUpdateStore)
	stores.Delete("/:id", h.HandleDeleteStore)
}

// HandleDashboard returns the system-wide counts.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	summary, err := h.userService.DashboardSummary()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// CreateUserRequest is the request body for admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" validate:"required"`
}

// HandleCreateUser creates a user with an explicit role.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	user, err := h.userService.Create(req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleListUsers lists users with filters, sorting and pagination.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	filters := listFiltersFromQuery(c)
	users, total, err := h.userService.List(filters)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(users, total, filters.Page, filters.Limit))
}

// HandleGetUser returns a single user, enriched for store owners.
func (h *AdminHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateUserRequest is the request body for a user update. Absent fields
// are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Address  *string `json:"address"`
}

// HandleUpdateUser updates the supplied fields of a user.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.userService.Update(c.Params("id"), services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser deletes a user; their stores and ratings cascade.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// CreateStoreRequest is the request body for store creation.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
	OwnerID string `json:"owner_id" validate:"required"`
}

// HandleCreateStore creates a store for an existing store owner.
func (h *AdminHandler) HandleCreateStore(c *fiber.Ctx) error {
	var req CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	store, err := h.storeService.Create(req.Name, req.Email, req.Address, req.OwnerID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store created successfully",
		"store":   store,
	})
}

// HandleListStores lists stores with their computed averages.
func (h *AdminHandler) HandleListStores(c *fiber.Ctx) error {
	filters := listFiltersFromQuery(c)
	stores, total, err := h.storeService.List(filters, "")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paginated(stores, total, filters.Page, filters.Limit))
}

// HandleGetStore returns a store with its rating aggregate.
func (h *AdminHandler) HandleGetStore(c *fiber.Ctx) error {
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

// UpdateStoreRequest is the request body for a store update.
type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// HandleUpdateStore updates the supplied fields of a store.
func (h *AdminHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var req UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	store, err := h.storeService.Update(c.Params("id"), services.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Store updated successfully",
		"store":   store,
	})
}

// HandleDeleteStore deletes a store; its ratings cascade.
func (h *AdminHandler) HandleDeleteStore(c *fiber.Ctx) error {
	if err := h.storeService.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store deleted successfully"})
}
