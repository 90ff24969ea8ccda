package interview

import "math/rand"

// fallbackQuestions keep the interview moving when generation fails. Generic
// on purpose so they fit any seniority or resume.
var fallbackQuestions = []string{
	"Can you tell me about a challenging project you've worked on recently?",
	"What technologies are you most comfortable working with, and why?",
	"How do you typically approach debugging a difficult problem?",
	"Can you describe a time you had to learn something new quickly for work?",
}

// FallbackQuestion returns a generic question for when the provider errors.
func FallbackQuestion() string {
	return fallbackQuestions[rand.Intn(len(fallbackQuestions))]
}
