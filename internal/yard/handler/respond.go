package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"yardflow/internal/core/logger"
	"yardflow/internal/yard/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": notFound.Error(),
		})
	}

	var invalid *domain.InvalidOperationError
	if errors.As(err, &invalid) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": invalid.Error(),
		})
	}

	logger.Get().Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func respondBadBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

// parseTimeRange reads the start and end query parameters as RFC 3339
// timestamps. Absent parameters stay nil; the service decides whether
// that is acceptable.
func parseTimeRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start time: %s", raw)
		}
		start = &t
	}

	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end time: %s", raw)
		}
		end = &t
	}

	return start, end, nil
}
