package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

const (
	// maxResumeChars caps the resume context embedded in prompts.
	maxResumeChars = 2000

	// maxQuestionChars caps generated question length for voice delivery.
	maxQuestionChars = 200

	// historyKeepRecent is how many recent exchanges stay verbatim; older
	// ones collapse into a topic summary to cut prompt tokens.
	historyKeepRecent = 2
)

// BuildQuestionPrompt creates the interviewer prompt for the next question.
func BuildQuestionPrompt(req Request) string {
	memories := req.RecalledMemories
	if memories == "" {
		memories = "No previous memories."
	}
	history := req.History
	if history == "" {
		history = "No previous conversation."
	}

	return fmt.Sprintf(`You are a friendly, experienced technical interviewer conducting a %d-question voice interview.

CANDIDATE PROFILE:
- Seniority Level: %s
- Candidate First Name: %s
- Resume Context:
%s

RECALLED MEMORIES (facts from earlier in this interview):
%s

STYLE RULES:
- Warm, encouraging, conversational; natural spoken language with contractions
- Keep questions under 25 words; no jargon unless necessary
- Difficulty matches the seniority level
- Reference specific items from the resume when possible
- Never repeat an earlier topic unless a concise follow-up deepens it

CLARIFYING QUESTIONS:
If the last answer was one word, under 5 words, or off-topic, ask ONE short
clarifying follow-up and PREFIX it with the [CLARIFY] tag, e.g.
"[CLARIFY] Could you give me a specific example?". Clarifying questions do not
count toward the question total. If the last question was already [CLARIFY]
and the answer is still vague, move to a new topic with NO tag.

INTERVIEW STATUS:
Questions Asked: %d / %d

CONVERSATION HISTORY:
%s

INSTRUCTION:
Generate ONLY the next question, nothing else.`,
		req.MaxQuestions,
		req.Seniority,
		req.FirstName,
		req.ResumeContext,
		memories,
		req.QuestionsAsked,
		req.MaxQuestions,
		history,
	)
}

// BuildResumePrompt creates the profile-extraction prompt. The provider is
// expected to return a single JSON object.
func BuildResumePrompt(resumeText string) string {
	if len(resumeText) > 8000 {
		resumeText = resumeText[:8000]
	}

	return fmt.Sprintf(`Extract candidate information from the resume below.

<RESUME>
%s
</RESUME>

EXTRACTION RULES:
1. If a field cannot be found, use "unknown" for strings or [] for arrays
2. Normalize email to lowercase
3. For skills: top 15 most relevant only
4. Determine seniority_level from years of experience:
   0-1: "Fresher", 1-3: "Junior", 3-7: "Mid-Senior", 7-12: "Senior", 12+: "Lead"

Return a JSON object with EXACTLY these fields:
{
  "candidate_first_name": "string or 'unknown'",
  "candidate_last_name": "string or 'unknown'",
  "candidate_email": "lowercase email or 'unknown'",
  "candidate_linkedin": "LinkedIn URL/username or 'unknown'",
  "experience": "brief summary of work experience (2-3 sentences)",
  "skills": ["array", "of", "technical", "skills"],
  "seniority_level": "one of: Fresher, Junior, Mid-Senior, Senior, Lead"
}

Return ONLY valid JSON, no other text.`, resumeText)
}

// BuildAssessmentPrompt creates the hiring-evaluation prompt. The provider is
// expected to return a single JSON object matching domain.Assessment.
func BuildAssessmentPrompt(req AssessmentRequest) string {
	return fmt.Sprintf(`You are an expert Technical Hiring Manager. Provide an accurate,
differentiated assessment based on actual answer quality, scored against the
expectations for a %s candidate. Score strictly: 90-100 exceptional,
75-89 strong, 60-74 competent, 40-59 developing, 0-39 insufficient.

CANDIDATE PROFILE:
%s

INTERVIEW TRANSCRIPT:
%s

Return a JSON object with EXACTLY these fields:
{
  "candidate_score_percent": 0,
  "hiring_recommendation": "'Strongly Recommend', 'Recommend', 'Consider with Reservations', or 'Do Not Recommend'",
  "strengths": ["3-5 specific strengths"],
  "improvement_areas": ["2-4 specific areas"],
  "next_steps": "recommended next steps",
  "answer_quality_analysis": "brief analysis of answer depth and relevance"
}

Return ONLY valid JSON, no other text.`, req.Seniority, req.ProfileDoc, req.Transcript)
}

// FormatHistory renders the conversation log for prompts. Recent exchanges
// stay verbatim; older ones collapse into a one-line topic summary, which
// trims prompt size noticeably after a few questions.
func FormatHistory(entries []domain.ConversationEntry) string {
	if len(entries) == 0 {
		return "No previous conversation."
	}

	if len(entries) <= historyKeepRecent {
		return formatFullHistory(entries, 1)
	}

	older := entries[:len(entries)-historyKeepRecent]
	recent := entries[len(entries)-historyKeepRecent:]

	topics := make([]string, 0, len(older))
	for _, e := range older {
		topic := e.Question
		if len(topic) > 40 {
			topic = topic[:40]
		}
		topic = strings.TrimSpace(topic)
		if topic != "" {
			topics = append(topics, topic+"...")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[Earlier: %d questions covered topics: %s]\n\n", len(older), strings.Join(topics, ", "))
	b.WriteString("RECENT EXCHANGES:\n")
	b.WriteString(formatFullHistory(recent, len(older)+1))
	return b.String()
}

func formatFullHistory(entries []domain.ConversationEntry, startIndex int) string {
	var b strings.Builder
	for i, e := range entries {
		answer := "No answer yet"
		if e.Answer != nil {
			answer = *e.Answer
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", startIndex+i, e.Question, startIndex+i, answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RelevantChunks concatenates the leading resume chunks up to a character
// budget. Chunk selection is positional for now; the resume parser puts the
// most informative sections first.
func RelevantChunks(chunks []string, maxChunks int) string {
	if maxChunks > len(chunks) {
		maxChunks = len(chunks)
	}

	var b strings.Builder
	for _, chunk := range chunks[:maxChunks] {
		if b.Len()+len(chunk) > maxResumeChars {
			break
		}
		b.WriteString(chunk)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// TruncateForVoice caps question length at a word boundary so text-to-speech
// output stays short.
func TruncateForVoice(question string) string {
	if len(question) <= maxQuestionChars {
		return question
	}
	cut := question[:maxQuestionChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "?"
}

// ExtractJSON strips markdown fences and surrounding prose from a model
// response, returning the first top-level JSON object.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "```"); start != -1 {
		rest := content[start+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end != -1 {
			content = rest[:end]
		}
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(content[start : end+1])
}

// ParseProfileJSON decodes and sanitizes a profile extraction response.
func ParseProfileJSON(content string) (*domain.ResumeProfile, error) {
	var profile domain.ResumeProfile
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	profile.FirstName = cleanField(profile.FirstName)
	profile.LastName = cleanField(profile.LastName)
	profile.Email = strings.ToLower(cleanField(profile.Email))
	profile.LinkedIn = cleanField(profile.LinkedIn)
	profile.Experience = cleanField(profile.Experience)
	if profile.Seniority == "" {
		profile.Seniority = "Junior"
	}
	if len(profile.Skills) > 15 {
		profile.Skills = profile.Skills[:15]
	}
	for i, s := range profile.Skills {
		profile.Skills[i] = cleanField(s)
	}
	return &profile, nil
}

// ParseAssessmentJSON decodes an assessment response.
func ParseAssessmentJSON(content string) (*domain.Assessment, error) {
	var a domain.Assessment
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &a); err != nil {
		return nil, fmt.Errorf("failed to parse assessment JSON: %w", err)
	}
	return &a, nil
}

func cleanField(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Unknown
	}
	return s
}
