package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

type BookkeepingHandler struct {
	service *services.BookkeepingService
}

func NewBookkeepingHandler(service *services.BookkeepingService) *BookkeepingHandler {
	return &BookkeepingHandler{service: service}
}

func (h *BookkeepingHandler) RegisterRoutes(router fiber.Router) {
	bookkeeping := router.Group("/bookkeeping")
	bookkeeping.Get("/", h.List)
	bookkeeping.Get("/summary", h.Summary)
}

func (h *BookkeepingHandler) List(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	entries, err := h.service.BuildLedger(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	page := utils.PaginateSlice(entries, utils.GetPaginationParams(c))
	return c.JSON(utils.CreateSuccessResponse(page))
}

func (h *BookkeepingHandler) Summary(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	summary, err := h.service.GetSummary(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(summary))
}
