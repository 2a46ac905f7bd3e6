package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/models"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

type CustomerHandler struct {
	service *services.CustomerService
}

func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customers := router.Group("/customers")
	customers.Get("/", h.List)
	customers.Get("/:id", h.Get)
	customers.Post("/", h.Create)
	customers.Patch("/:id", h.Update)
	customers.Delete("/:id", h.Delete)
}

func (h *CustomerHandler) List(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	customers, err := h.service.ListCustomers(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	page := utils.PaginateSlice(customers, utils.GetPaginationParams(c))
	return c.JSON(utils.CreateSuccessResponse(page))
}

func (h *CustomerHandler) Get(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	customer, err := h.service.GetCustomer(c.Context(), orgID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(customer))
}

func (h *CustomerHandler) Create(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	var req models.CreateCustomerRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	customer, err := h.service.CreateCustomer(c.Context(), orgID, req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(customer))
}

func (h *CustomerHandler) Update(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	var req models.UpdateCustomerRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	customer, err := h.service.UpdateCustomer(c.Context(), orgID, id, req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(customer))
}

func (h *CustomerHandler) Delete(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	if err := h.service.DeleteCustomer(c.Context(), orgID, id); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(fiber.Map{"deleted": true}))
}
