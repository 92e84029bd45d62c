package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bluecarbon-backend/internal/credits"
	"bluecarbon-backend/internal/pkg/validation"

	"gorm.io/datatypes"
)

// Service turns a raw image into draft evidence by invoking the external
// analysis provider. It never touches the project store: a failed or abandoned
// analysis leaves nothing behind, and the caller may simply re-invoke.
type Service struct {
	Provider AnalysisProvider
	Policy   credits.Policy
}

// Evidence is the validated draft handed to project creation.
type Evidence struct {
	AreaHectares     float64        `json:"area_hectares"`
	AnalysisNotes    string         `json:"analysis_notes"`
	ProjectedCredits float64        `json:"projected_credits"`
	Raw              datatypes.JSON `json:"raw,omitempty"`
}

// AnalyzeImage calls the provider exactly once and validates the result.
// The provider is untrusted: its area estimate must be a positive finite
// number before it is accepted as evidence.
func (s *Service) AnalyzeImage(ctx context.Context, image []byte, mediaType string) (*Evidence, error) {
	if !validation.IsSupportedMediaType(mediaType) {
		return nil, ErrUnsupportedMediaType
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image payload", ErrInvalidAnalysisResult)
	}

	result, err := s.Provider.Analyze(ctx, image, mediaType)
	if err != nil {
		if errors.Is(err, ErrInvalidAnalysisResult) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	if !validation.IsValidArea(result.EstimatedHectares) {
		return nil, fmt.Errorf("%w: estimated hectares %v", ErrInvalidAnalysisResult, result.EstimatedHectares)
	}

	projected, err := s.Policy.ComputeCredits(result.EstimatedHectares)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysisResult, err)
	}

	raw, _ := json.Marshal(result)
	return &Evidence{
		AreaHectares:     result.EstimatedHectares,
		AnalysisNotes:    result.AnalysisNotes,
		ProjectedCredits: projected,
		Raw:              datatypes.JSON(raw),
	}, nil
}
