package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/middleware"
	"invoicing-service/internal/models"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

type InventoryItemHandler struct {
	service *services.InventoryItemService
}

func NewInventoryItemHandler(service *services.InventoryItemService) *InventoryItemHandler {
	return &InventoryItemHandler{service: service}
}

func (h *InventoryItemHandler) RegisterRoutes(router fiber.Router) {
	items := router.Group("/inventory/items")
	items.Get("/", h.List)
	items.Get("/:id", h.Get)
	items.Post("/", h.Create)
	items.Patch("/:id", h.Update)
	items.Delete("/:id", h.Delete)
}

func (h *InventoryItemHandler) List(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	items, err := h.service.ListItems(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	page := utils.PaginateSlice(items, utils.GetPaginationParams(c))
	return c.JSON(utils.CreateSuccessResponse(page))
}

func (h *InventoryItemHandler) Get(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	item, err := h.service.GetItem(c.Context(), orgID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(item))
}

func (h *InventoryItemHandler) Create(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	var req models.CreateInventoryItemRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	item, err := h.service.CreateItem(c.Context(), orgID, middleware.CallerID(c), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(item))
}

func (h *InventoryItemHandler) Update(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	var req models.UpdateInventoryItemRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	item, err := h.service.UpdateItem(c.Context(), orgID, middleware.CallerID(c), id, req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(item))
}

func (h *InventoryItemHandler) Delete(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	if err := h.service.DeleteItem(c.Context(), orgID, middleware.CallerID(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(fiber.Map{"deleted": true}))
}
