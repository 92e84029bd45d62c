package intake

import (
	"errors"
	"io"

	"bluecarbon-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// maxImageBytes caps the accepted evidence image payload (10 MiB).
const maxImageBytes = 10 << 20

// AnalyzeImage POST /api/v1/intake/analyze-image — multipart field "image".
// Returns the validated evidence without persisting anything.
func (h *Handlers) AnalyzeImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, "Please select an image first", 400, nil)
	}
	if fileHeader.Size > maxImageBytes {
		return response.Error(c, "Image too large", 413, nil)
	}
	mediaType := fileHeader.Header.Get("Content-Type")

	f, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	evidence, err := h.Service.AnalyzeImage(c.Context(), image, mediaType)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedMediaType):
			return response.Error(c, err.Error(), 415, nil)
		case errors.Is(err, ErrInvalidAnalysisResult):
			return response.Error(c, ErrInvalidAnalysisResult.Error(), 422, nil)
		case errors.Is(err, ErrAnalysisUnavailable):
			return response.Error(c, ErrAnalysisUnavailable.Error(), 502, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	return response.Success(c, "Image analyzed successfully", fiber.Map{
		"estimated_hectares": evidence.AreaHectares,
		"analysis_notes":     evidence.AnalysisNotes,
		"projected_credits":  evidence.ProjectedCredits,
		"raw":                evidence.Raw,
	}, nil)
}
