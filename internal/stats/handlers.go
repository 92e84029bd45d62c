package stats

import (
	"bluecarbon-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GetSummary GET /api/v1/stats/get-summary
func (h *Handlers) GetSummary(c *fiber.Ctx) error {
	summary, err := h.Service.GetSummary(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Summary fetched successfully", fiber.Map{"summary": summary}, nil)
}
