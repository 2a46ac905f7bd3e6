package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"invoicing-service/internal/repository"
	"invoicing-service/internal/services"
	"invoicing-service/internal/utils"
)

// parseOrg reads the organization id path parameter. Organizations are
// numeric; anything else is a client error.
func parseOrg(c fiber.Ctx) (int, error) {
	orgID, err := strconv.Atoi(c.Params("org"))
	if err != nil || orgID < 0 {
		return 0, errors.New("organization id must be a non-negative number")
	}
	return orgID, nil
}

func parseID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.New(name + " must be a valid uuid")
	}
	return id, nil
}

func invalidOrg(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		utils.CreateErrorResponse("INVALID_ORG", err.Error()))
}

func invalidID(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		utils.CreateErrorResponse("INVALID_ID", err.Error()))
}

func invalidBody(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		utils.CreateErrorResponse("INVALID_BODY", "request body could not be parsed"))
}

// handleServiceError maps service failures onto the error envelope.
func handleServiceError(c fiber.Ctx, err error) error {
	if services.IsValidationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
	}
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "record not found"))
	}
	if errors.Is(err, services.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", err.Error()))
	}

	slog.Error("request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(
		utils.CreateErrorResponse("INTERNAL_ERROR", "an internal error occurred"))
}
