package linkedin

import (
	"strings"
	"testing"

	"mentormatch/models"
)

func TestDecodeProfileJSON(t *testing.T) {
	payload := `{"name":"Ada Lovelace","headline":"Engineer","summary":"Math.","skills":["Go"]}`

	cases := []struct {
		name string
		raw  string
	}{
		{name: "plain json", raw: payload},
		{name: "fenced json", raw: "```json\n" + payload + "\n```"},
		{name: "bare fence", raw: "```\n" + payload + "\n```"},
		{name: "surrounding whitespace", raw: "\n  " + payload + "  \n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeProfileJSON(tc.raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Name != "Ada Lovelace" || got.Headline != "Engineer" {
				t.Errorf("unexpected profile: %+v", got)
			}
		})
	}

	if _, err := decodeProfileJSON("not json"); err == nil {
		t.Error("expected error for invalid json")
	}
	if _, err := decodeProfileJSON(`{"name":"","headline":""}`); err == nil {
		t.Error("expected error for empty profile")
	}
}

func TestSanitizeText(t *testing.T) {
	got := sanitizeText("  Ada\t\tLovelace \r\nEngineer\x00\x01  ")
	want := "Ada Lovelace \nEngineer"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	long := strings.Repeat("a", maxExtractedChars+500)
	if n := len(sanitizeText(long)); n != maxExtractedChars {
		t.Errorf("expected truncation to %d, got %d", maxExtractedChars, n)
	}
}

func TestBuildPrefill(t *testing.T) {
	p := &models.LinkedInProfile{
		Name:      "Ada Lovelace",
		Headline:  "Engineer",
		Languages: []string{"English"},
		Skills:    []string{"Go", "Systems"},
		Experience: []models.LinkedInExperience{
			{Title: "Staff Engineer", Company: "Analytical Engines", Description: "Built compilers."},
		},
	}

	got := BuildPrefill(p)
	if got.DisplayName != "Ada Lovelace" {
		t.Errorf("unexpected display name %q", got.DisplayName)
	}
	// Without a summary the bio falls back to the latest experience.
	if !strings.Contains(got.Bio, "Staff Engineer at Analytical Engines") {
		t.Errorf("unexpected bio %q", got.Bio)
	}

	p.Summary = "Mathematician and engineer."
	if got := BuildPrefill(p); got.Bio != "Mathematician and engineer." {
		t.Errorf("summary should win, got %q", got.Bio)
	}
}
