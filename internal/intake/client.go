package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AnalysisResult is the provider's estimate for one image.
type AnalysisResult struct {
	EstimatedHectares float64 `json:"estimatedHectares"`
	AnalysisNotes     string  `json:"analysisNotes"`
}

// AnalysisProvider abstracts the external image-analysis capability.
type AnalysisProvider interface {
	Analyze(ctx context.Context, image []byte, mediaType string) (*AnalysisResult, error)
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
const geminiModel = "gemini-2.5-flash"

const analysisPrompt = "You are an expert in blue carbon ecosystems. Analyze this image of a coastal area. " +
	"Your primary goal is to estimate the land area in hectares covered by mangroves. " +
	"Provide a brief analysis of your findings, including mangrove density and health if possible. " +
	"Respond ONLY with a valid JSON object."

// GeminiClient is an AnalysisProvider backed by the Gemini generateContent
// REST API, constrained to a JSON response schema.
type GeminiClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) Analyze(ctx context.Context, image []byte, mediaType string) (*AnalysisResult, error) {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 30 * time.Second}
	}
	base := g.BaseURL
	if base == "" {
		base = defaultGeminiBaseURL
	}
	if g.APIKey == "" {
		return nil, fmt.Errorf("gemini: GEMINI_API_KEY is not set")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", base, geminiModel, g.APIKey)

	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"inlineData": map[string]string{
							"mimeType": mediaType,
							"data":     base64.StdEncoding.EncodeToString(image),
						},
					},
					{"text": analysisPrompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema": map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					"estimatedHectares": map[string]string{"type": "NUMBER", "description": "The estimated area in hectares."},
					"analysisNotes":     map[string]string{"type": "STRING", "description": "A brief summary of the analysis."},
				},
				"required": []string{"estimatedHectares", "analysisNotes"},
			},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini error: status %d body: %s", resp.StatusCode, string(respBody))
	}

	var data geminiResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("gemini response decode: %w", err)
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates: %w", ErrInvalidAnalysisResult)
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(data.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		return nil, fmt.Errorf("gemini result decode: %w", ErrInvalidAnalysisResult)
	}
	return &result, nil
}
