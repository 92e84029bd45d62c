package intake

import "errors"

var (
	ErrUnsupportedMediaType  = errors.New("Unsupported format. Please upload a PNG, JPG, or WebP file")
	ErrInvalidAnalysisResult = errors.New("Analysis returned an invalid result")
	ErrAnalysisUnavailable   = errors.New("Analysis provider is unavailable")
)
