package handlers

import (
	"io"

	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/middleware"
	"invoicing-service/internal/models"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

type ExpenseHandler struct {
	service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) RegisterRoutes(router fiber.Router) {
	expenses := router.Group("/expenses")
	expenses.Get("/", h.List)
	expenses.Get("/:id", h.Get)
	expenses.Post("/", h.Create)
	expenses.Patch("/:id", h.Update)
	expenses.Delete("/:id", h.Delete)
	expenses.Post("/:id/receipt", h.UploadReceipt)
}

func (h *ExpenseHandler) List(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	expenses, err := h.service.ListExpenses(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	page := utils.PaginateSlice(expenses, utils.GetPaginationParams(c))
	return c.JSON(utils.CreateSuccessResponse(page))
}

func (h *ExpenseHandler) Get(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	expense, err := h.service.GetExpense(c.Context(), orgID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(expense))
}

func (h *ExpenseHandler) Create(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	var req models.CreateExpenseRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	expense, err := h.service.CreateExpense(c.Context(), orgID, middleware.CallerID(c), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(expense))
}

func (h *ExpenseHandler) Update(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	var req models.UpdateExpenseRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	expense, err := h.service.UpdateExpense(c.Context(), orgID, middleware.CallerID(c), id, req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(expense))
}

func (h *ExpenseHandler) Delete(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	if err := h.service.DeleteExpense(c.Context(), orgID, middleware.CallerID(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(fiber.Map{"deleted": true}))
}

func (h *ExpenseHandler) UploadReceipt(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "a file form field is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return handleServiceError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return handleServiceError(c, err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	expense, err := h.service.UploadReceipt(c.Context(), orgID, middleware.CallerID(c), id,
		fileHeader.Filename, data, contentType)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(expense))
}
