package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type PaginationOptions struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type PaginatedResult[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// GetPaginationParams reads page/limit query parameters, falling back to
// page=1, limit=10 and clamping limit to [1,100].
func GetPaginationParams(c fiber.Ctx) PaginationOptions {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return PaginationOptions{Page: page, Limit: limit}
}

// PaginateSlice applies in-memory pagination over an already assembled list.
func PaginateSlice[T any](items []T, opts PaginationOptions) PaginatedResult[T] {
	total := len(items)

	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return PaginatedResult[T]{
		Data:  items[start:end],
		Total: total,
		Page:  opts.Page,
		Limit: opts.Limit,
	}
}
