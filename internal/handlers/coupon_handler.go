package handlers

import (
	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/middleware"
	"invoicing-service/internal/models"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

type CouponHandler struct {
	service *services.CouponService
}

func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	coupons := router.Group("/coupons")
	coupons.Get("/", h.List)
	coupons.Get("/:id", h.Get)
	coupons.Post("/", h.Create)
	coupons.Patch("/:id", h.Update)
	coupons.Delete("/:id", h.Delete)
}

func (h *CouponHandler) List(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	coupons, err := h.service.ListCoupons(c.Context(), orgID)
	if err != nil {
		return handleServiceError(c, err)
	}

	page := utils.PaginateSlice(coupons, utils.GetPaginationParams(c))
	return c.JSON(utils.CreateSuccessResponse(page))
}

func (h *CouponHandler) Get(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	coupon, err := h.service.GetCoupon(c.Context(), orgID, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(coupon))
}

func (h *CouponHandler) Create(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}

	var req models.CreateCouponRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	coupon, err := h.service.CreateCoupon(c.Context(), orgID, middleware.CallerID(c), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.CreateSuccessResponse(coupon))
}

func (h *CouponHandler) Update(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	var req models.UpdateCouponRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c)
	}

	coupon, err := h.service.UpdateCoupon(c.Context(), orgID, middleware.CallerID(c), id, req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(coupon))
}

func (h *CouponHandler) Delete(c fiber.Ctx) error {
	orgID, err := parseOrg(c)
	if err != nil {
		return invalidOrg(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}

	if err := h.service.DeleteCoupon(c.Context(), orgID, middleware.CallerID(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(utils.CreateSuccessResponse(fiber.Map{"deleted": true}))
}
