package interview

import (
	"math/rand"
	"regexp"
	"strings"
)

// repeatPatterns match answers that ask to hear the question again. These are
// checked before the answer is attached, so a repeat request never counts as
// an answer.
var repeatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\brepeat\b`),
	regexp.MustCompile(`say that again`),
	regexp.MustCompile(`can you repeat`),
	regexp.MustCompile(`could you repeat`),
	regexp.MustCompile(`one more time`),
	regexp.MustCompile(`please repeat`),
	regexp.MustCompile(`again please`),
	regexp.MustCompile(`what was the question`),
	regexp.MustCompile(`what is the question`),
	regexp.MustCompile(`repeat the question`),
}

var repeatAckPrefixes = []string{
	"Sure, I will repeat the question: ",
	"Sure, here is the question again: ",
	"No problem, my question was: ",
}

// IsRepeatRequest reports whether the transcript asks for the last question
// to be repeated.
func IsRepeatRequest(answer string) bool {
	lowered := strings.ToLower(strings.TrimSpace(answer))
	if lowered == "" {
		return false
	}
	for _, p := range repeatPatterns {
		if p.MatchString(lowered) {
			return true
		}
	}
	return false
}

// RepeatAck wraps the question verbatim in a short spoken acknowledgement.
func RepeatAck(question string) string {
	return repeatAckPrefixes[rand.Intn(len(repeatAckPrefixes))] + question
}
