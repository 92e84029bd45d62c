package registry

import (
	"encoding/json"
	"errors"

	"bluecarbon-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Handlers struct {
	Service *Service
}

// CreateProject POST /api/v1/projects/create-project
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var body struct {
		Name          string          `json:"name"`
		Location      string          `json:"location"`
		AreaHectares  float64         `json:"area_hectares"`
		AnalysisNotes *string         `json:"analysis_notes"`
		ImageRef      *string         `json:"image_ref"`
		AnalysisRaw   json.RawMessage `json:"analysis_raw"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if body.Name == "" || body.Location == "" {
		return response.Error(c, ErrNameLocationRequired.Error(), 400, nil)
	}

	in := CreateInput{
		Name:          body.Name,
		Location:      body.Location,
		AreaHectares:  body.AreaHectares,
		AnalysisNotes: body.AnalysisNotes,
		ImageRef:      body.ImageRef,
	}
	if len(body.AnalysisRaw) > 0 {
		in.AnalysisRaw = datatypes.JSON(body.AnalysisRaw)
	}

	project, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameLocationRequired), errors.Is(err, ErrInvalidArea):
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Project submitted for approval", fiber.Map{"project": project}, nil)
}

// GetProject GET /api/v1/projects/get-project/:project_id
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for project_id", 400, nil)
	}

	project, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Project fetched successfully", fiber.Map{"project": project}, nil)
}

// GetAllProjects GET /api/v1/projects/get-all-projects?status=pending|approved
func (h *Handlers) GetAllProjects(c *fiber.Ctx) error {
	var status *string
	if q := c.Query("status"); q != "" {
		if q != "pending" && q != "approved" {
			return response.Error(c, "Invalid status filter", 400, nil)
		}
		status = &q
	}

	projects, err := h.Service.List(c.Context(), status)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Projects fetched successfully", fiber.Map{
		"projects": projects,
		"total":    len(projects),
	}, nil)
}
