package interview

import "strings"

// clarifyTag marks a generated question as a clarifying follow-up. The model
// is instructed to prefix vague-answer follow-ups with it; clarifying
// questions do not advance the question count.
const clarifyTag = "[CLARIFY]"

// maxTrailingClarify caps how many clarifying questions may run back to back
// before the next one is demoted to a regular question.
const maxTrailingClarify = 2

// IsClarifying reports whether a generated question carries the clarify tag.
// Matching is case-insensitive on the leading tag.
func IsClarifying(question string) bool {
	trimmed := strings.TrimSpace(question)
	if len(trimmed) < len(clarifyTag) {
		return false
	}
	return strings.EqualFold(trimmed[:len(clarifyTag)], clarifyTag)
}

// StripClarifyTag removes the leading clarify tag and surrounding whitespace.
func StripClarifyTag(question string) string {
	trimmed := strings.TrimSpace(question)
	if IsClarifying(trimmed) {
		trimmed = strings.TrimSpace(trimmed[len(clarifyTag):])
	}
	return trimmed
}
