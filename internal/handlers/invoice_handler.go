package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/middleware"
	"invoicing-service/internal/models"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoices := router.Group("/invoices")
	invoices.Get("/", h.List)
	invoices.Get("/:id", h.Get)
	invoices.Post("/", h.Create)
	invoices.Patch("/:id", h.Update)
	invoices.Delete("/:id", h.Delete)
}

func (h *InvoiceHandler) List(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	invoices, err := h.service.ListInvoices(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	page := utils.PaginateSlice(invoices, utils.GetPaginationParams(c))
	return c.JSON(utils.CreateSuccessResponse(page))
}

func (h *InvoiceHandler) Get(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	invoice, err := h.service.GetInvoice(c.Context(), orgID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(invoice))
}

func (h *InvoiceHandler) Create(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	var req models.CreateInvoiceRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	invoice, err := h.service.CreateInvoice(c.Context(), orgID, middleware.CallerID(c), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(invoice))
}

func (h *InvoiceHandler) Update(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	var req models.UpdateInvoiceRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	invoice, err := h.service.UpdateInvoice(c.Context(), orgID, middleware.CallerID(c), id, req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(invoice))
}

func (h *InvoiceHandler) Delete(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	if err := h.service.DeleteInvoice(c.Context(), orgID, middleware.CallerID(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(fiber.Map{"deleted": true}))
}
