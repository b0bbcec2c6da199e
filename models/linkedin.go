// models/linkedin.go
package models

// LinkedInProfile is the structured result of parsing a LinkedIn PDF export.
type LinkedInProfile struct {
	Name           string               `json:"name"`
	Headline       string               `json:"headline"`
	Summary        string               `json:"summary"`
	Location       string               `json:"location"`
	Experience     []LinkedInExperience `json:"experience"`
	Education      []LinkedInEducation  `json:"education"`
	Skills         []string             `json:"skills"`
	Languages      []string             `json:"languages"`
	Certifications []string             `json:"certifications"`
}

type LinkedInExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type LinkedInEducation struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Field  string `json:"field"`
	Year   string `json:"year"`
}

// ProfilePrefill maps a parsed LinkedIn profile onto editable profile fields.
type ProfilePrefill struct {
	DisplayName string   `json:"display_name"`
	Headline    string   `json:"headline"`
	Bio         string   `json:"bio"`
	Languages   []string `json:"languages"`
	Skills      []string `json:"skills"`
}
