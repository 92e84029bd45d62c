package issuance

import (
	"errors"

	"bluecarbon-backend/internal/pkg/response"
	"bluecarbon-backend/internal/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// ApproveProject POST /api/v1/issuance/approve-project
func (h *Handlers) ApproveProject(c *fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"project_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProjectID == "" {
		return response.Error(c, "project_id is required", 400, nil)
	}
	id, err := uuid.Parse(body.ProjectID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for project_id", 400, nil)
	}

	project, err := h.Service.Approve(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrProjectNotFound):
			return response.Error(c, err.Error(), 404, nil)
		case errors.Is(err, ErrInvalidState), errors.Is(err, registry.ErrAlreadyApproved):
			return response.Error(c, ErrInvalidState.Error(), 409, nil)
		case errors.Is(err, ErrMintRejected):
			return response.Error(c, ErrMintRejected.Error(), 422, nil)
		case errors.Is(err, ErrMintUnavailable):
			return response.Error(c, ErrMintUnavailable.Error(), 502, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Project approved and credits minted", fiber.Map{"project": project}, nil)
}
