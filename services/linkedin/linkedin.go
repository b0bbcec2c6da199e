package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mentormatch/models"
	"mentormatch/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const parsePrompt = `You are given the plain text of a LinkedIn profile PDF export.
Extract the profile into JSON with exactly these fields:
{
  "name": string,
  "headline": string,
  "summary": string,
  "location": string,
  "experience": [{"title": string, "company": string, "duration": string, "description": string}],
  "education": [{"degree": string, "school": string, "field": string, "year": string}],
  "skills": [string],
  "languages": [string],
  "certifications": [string]
}
Use empty strings or empty arrays for anything missing. Respond with JSON only, no prose.

Profile text:
`

// LinkedInService parses LinkedIn PDF exports into profile prefill data.
type LinkedInService interface {
	ImportProfile(ctx context.Context, file io.ReaderAt, size int64) (*models.LinkedInProfile, *models.ProfilePrefill, error)
}

// GeminiLinkedInService implements LinkedInService with the Gemini API.
type GeminiLinkedInService struct {
	model *genai.GenerativeModel
}

// NewGeminiLinkedInService builds the service from an API key.
func NewGeminiLinkedInService(apiKey string) (*GeminiLinkedInService, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiLinkedInService{model: model}, nil
}

// ImportProfile extracts the PDF text, asks the model for structured output
// and maps it onto profile prefill fields.
func (s *GeminiLinkedInService) ImportProfile(ctx context.Context, file io.ReaderAt, size int64) (*models.LinkedInProfile, *models.ProfilePrefill, error) {
	text, err := ExtractPDFText(file, size)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(parsePrompt+text))
	if err != nil {
		utils.GetLogger().Error("gemini generate failed", zap.Error(err))
		return nil, nil, fmt.Errorf("profile parsing failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil, fmt.Errorf("profile parsing returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	profile, err := decodeProfileJSON(sb.String())
	if err != nil {
		return nil, nil, err
	}
	return profile, BuildPrefill(profile), nil
}

// decodeProfileJSON parses the model output, tolerating markdown code fences.
func decodeProfileJSON(raw string) (*models.LinkedInProfile, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var profile models.LinkedInProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode parsed profile: %w", err)
	}
	if profile.Name == "" && profile.Headline == "" && len(profile.Experience) == 0 {
		return nil, fmt.Errorf("parsed profile is empty")
	}
	return &profile, nil
}

// BuildPrefill maps a parsed profile onto the editable profile fields.
func BuildPrefill(p *models.LinkedInProfile) *models.ProfilePrefill {
	bio := p.Summary
	if bio == "" && len(p.Experience) > 0 {
		exp := p.Experience[0]
		bio = strings.TrimSpace(fmt.Sprintf("%s at %s. %s", exp.Title, exp.Company, exp.Description))
	}
	return &models.ProfilePrefill{
		DisplayName: p.Name,
		Headline:    p.Headline,
		Bio:         bio,
		Languages:   p.Languages,
		Skills:      p.Skills,
	}
}
