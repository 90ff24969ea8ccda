package domain

import "strings"

// Unknown is the sentinel used for profile fields the parser could not extract.
const Unknown = "unknown"

// ResumeProfile holds candidate information extracted from a resume.
// Fields that cannot be extracted carry the Unknown sentinel, never an error.
type ResumeProfile struct {
	FirstName  string   `json:"candidate_first_name"`
	LastName   string   `json:"candidate_last_name"`
	Email      string   `json:"candidate_email"`
	LinkedIn   string   `json:"candidate_linkedin"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	Seniority  string   `json:"seniority_level"`
}

// FullName returns "First Last", skipping unknown parts.
func (p ResumeProfile) FullName() string {
	parts := make([]string, 0, 2)
	for _, s := range []string{p.FirstName, p.LastName} {
		if s != "" && !strings.EqualFold(s, Unknown) {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// KnownFirstName reports whether the first name is usable for personalization.
func (p ResumeProfile) KnownFirstName() bool {
	return p.FirstName != "" && !strings.EqualFold(p.FirstName, Unknown)
}

// MaxQuestions derives the regular-question quota from the seniority level.
func (p ResumeProfile) MaxQuestions() int {
	switch strings.ToLower(p.Seniority) {
	case "fresher":
		return 5
	case "junior":
		return 7
	default: // Mid-Senior, Senior, Lead
		return 10
	}
}

// FallbackProfile is returned when resume parsing fails entirely.
func FallbackProfile() ResumeProfile {
	return ResumeProfile{
		FirstName:  Unknown,
		LastName:   Unknown,
		Email:      Unknown,
		LinkedIn:   Unknown,
		Experience: "Could not extract experience",
		Skills:     []string{},
		Seniority:  "Junior",
	}
}
