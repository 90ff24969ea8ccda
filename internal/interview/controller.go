package interview

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/session"
)

// ResumeParser turns raw resume text into a profile plus prompt-ready chunks.
// Implemented by the resume service; a failed parse returns the fallback
// profile rather than an error that would block the interview.
type ResumeParser interface {
	Parse(ctx context.Context, resumeText string) (domain.ResumeProfile, []string, error)
}

var closingTemplates = []string{
	"That brings us to the end of our interview, %s. Thank you for your thoughtful answers today, the team will be in touch with next steps soon.",
	"We've covered everything I wanted to ask, %s. I really enjoyed our conversation, you'll hear back from us about next steps shortly.",
}

var closingTemplatesAnonymous = []string{
	"That brings us to the end of our interview. Thank you for your thoughtful answers today, the team will be in touch with next steps soon.",
	"We've covered everything I wanted to ask. I really enjoyed our conversation, you'll hear back from us about next steps shortly.",
}

// Controller drives the interview turn loop: one call per candidate answer,
// one question (or closing message) out.
type Controller struct {
	registry  *session.Registry
	llm       *llm.Router
	memory    domain.MemoryService
	archive   domain.ArchiveRepository
	resume    ResumeParser
	scheduler *Scheduler
	intro     string
}

// NewController wires the turn loop. memory and archive may be nil; both are
// best-effort collaborators.
func NewController(
	registry *session.Registry,
	router *llm.Router,
	memory domain.MemoryService,
	archive domain.ArchiveRepository,
	resume ResumeParser,
	pregenDelay time.Duration,
	introQuestion string,
) *Controller {
	c := &Controller{
		registry: registry,
		llm:      router,
		memory:   memory,
		archive:  archive,
		resume:   resume,
		intro:    introQuestion,
	}
	c.scheduler = NewScheduler(registry, c.pregenerate, pregenDelay)
	return c
}

// Initialize creates the session and returns the intro question immediately.
// Resume parsing and first-question pre-generation run in the background so
// the candidate hears a greeting with no parse latency in front of it.
func (c *Controller) Initialize(ctx context.Context, sessionID, resumeText string) string {
	c.registry.Create(sessionID, domain.FallbackProfile(), nil)
	if err := c.registry.AppendRegular(sessionID, c.intro); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to append intro question")
	}

	go c.parseResumeAsync(sessionID, resumeText)

	return c.intro
}

func (c *Controller) parseResumeAsync(sessionID, resumeText string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	profile, chunks, err := c.resume.Parse(ctx, resumeText)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("resume parse failed, using fallback profile")
		profile = domain.FallbackProfile()
	}

	if err := c.registry.SetResume(sessionID, profile, chunks); err != nil {
		// Session evicted or deleted while parsing; nothing to do.
		return
	}

	log.Info().
		Str("session_id", sessionID).
		Str("seniority", profile.Seniority).
		Int("chunks", len(chunks)).
		Msg("resume parsed")

	// Warm the slot so the question after the intro answer is instant.
	c.scheduler.Schedule(sessionID)
}

// Advance processes one candidate answer and returns the next turn. The
// sequence is fixed: repeat check before anything is recorded, answer
// attachment (the only point where the quota can move), completion check,
// then question selection.
func (c *Controller) Advance(ctx context.Context, sessionID, answer string) (*domain.TurnResult, error) {
	rec, err := c.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if last, ok := lastQuestion(rec); ok && IsRepeatRequest(answer) {
		return &domain.TurnResult{Question: RepeatAck(last), IsRepeat: true}, nil
	}

	if _, err := c.registry.AttachAnswer(sessionID, answer); err != nil {
		return nil, err
	}

	asked, max, err := c.registry.Counts(sessionID)
	if err != nil {
		return nil, err
	}
	if asked >= max {
		return &domain.TurnResult{
			IsComplete:     true,
			ClosingMessage: closingMessage(rec.Profile),
		}, nil
	}

	question, pregenerated, err := c.registry.ConsumePregenerated(sessionID)
	if err != nil {
		return nil, err
	}
	if !pregenerated {
		question, err = c.generateNext(ctx, sessionID)
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("question generation failed, using fallback")
			c.registry.SetError(sessionID, err.Error())
			question = FallbackQuestion()
		}
	}

	result, err := c.commitQuestion(sessionID, question)
	if err != nil {
		return nil, err
	}

	c.scheduler.Schedule(sessionID)

	return result, nil
}

// commitQuestion classifies the generated question and appends it to the log.
// A clarifying question arriving when the last two entries were already
// clarifying is demoted to a regular question so the interview cannot stall.
func (c *Controller) commitQuestion(sessionID, question string) (*domain.TurnResult, error) {
	clean := StripClarifyTag(question)

	if IsClarifying(question) {
		trailing, err := c.registry.TrailingClarifying(sessionID)
		if err != nil {
			return nil, err
		}
		if trailing < maxTrailingClarify {
			if err := c.registry.AppendClarifying(sessionID, clean); err != nil {
				return nil, err
			}
			return &domain.TurnResult{Question: clean}, nil
		}
		log.Debug().Str("session_id", sessionID).Msg("demoting clarifying question to regular")
	}

	if err := c.registry.AppendRegular(sessionID, clean); err != nil {
		return nil, err
	}
	return &domain.TurnResult{Question: clean}, nil
}

// generateNext builds a generation request from the session's current state
// and calls the default provider.
func (c *Controller) generateNext(ctx context.Context, sessionID string) (string, error) {
	return c.generate(ctx, sessionID, 0)
}

// pregenerate is the scheduler's generation path. The deposited question is
// consumed only after the next answer lands, so the request counts that answer
// as already asked; otherwise the speculative question would be framed one
// turn behind the state it is delivered in.
func (c *Controller) pregenerate(ctx context.Context, sessionID string) (string, error) {
	return c.generate(ctx, sessionID, 1)
}

func (c *Controller) generate(ctx context.Context, sessionID string, askedOffset int) (string, error) {
	rec, err := c.registry.Get(sessionID)
	if err != nil {
		return "", err
	}

	provider, err := c.llm.GetProvider("")
	if err != nil {
		return "", err
	}

	req := llm.Request{
		Seniority:        rec.Profile.Seniority,
		MaxQuestions:     rec.MaxQuestions,
		QuestionsAsked:   rec.QuestionsAsked + askedOffset,
		FirstName:        rec.Profile.FirstName,
		ResumeContext:    llm.RelevantChunks(rec.Chunks, 3),
		History:          llm.FormatHistory(rec.Log),
		RecalledMemories: c.recallMemories(ctx, rec),
	}

	resp, err := provider.GenerateQuestion(ctx, req, "")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Question) == "" {
		return "", fmt.Errorf("provider %s returned an empty question", provider.Name())
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("model", resp.Model).
		Int64("latency_ms", resp.LatencyMs).
		Msg("question generated")

	return resp.Question, nil
}

func (c *Controller) recallMemories(ctx context.Context, rec *session.Record) string {
	if c.memory == nil || len(rec.Log) == 0 {
		return ""
	}

	last := rec.Log[len(rec.Log)-1]
	query := last.Question
	if last.Answer != nil {
		query = *last.Answer
	}

	facts, err := c.memory.Recall(ctx, rec.ID, query, 5)
	if err != nil {
		log.Warn().Err(err).Str("session_id", rec.ID).Msg("memory recall failed")
		return ""
	}
	return strings.Join(facts, "\n")
}

// Assess scores the finished interview. The session stays in the registry
// until explicitly deleted; archival and memory storage are best-effort.
func (c *Controller) Assess(ctx context.Context, sessionID string) (*domain.Assessment, error) {
	rec, err := c.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	provider, err := c.llm.GetProvider("")
	if err != nil {
		return nil, err
	}

	assessment, err := provider.GenerateAssessment(ctx, llm.AssessmentRequest{
		Seniority:  rec.Profile.Seniority,
		ProfileDoc: formatProfile(rec.Profile),
		Transcript: formatTranscript(rec.Log),
	}, "")
	if err != nil {
		return nil, fmt.Errorf("assessment generation failed: %w", err)
	}

	if c.archive != nil {
		archive := &domain.InterviewArchive{
			SessionID:   rec.ID,
			Profile:     rec.Profile,
			Transcript:  rec.Log,
			Assessment:  assessment,
			StartedAt:   rec.CreatedAt,
			CompletedAt: time.Now(),
		}
		if err := c.archive.Save(ctx, archive); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("failed to archive interview")
		}
	}

	if c.memory != nil {
		fact := fmt.Sprintf("Interviewed %s (%s): scored %d%%, recommendation %q",
			rec.Profile.FullName(), rec.Profile.Seniority,
			assessment.ScorePercent, assessment.HiringRecommendation)
		if err := c.memory.Store(ctx, sessionID, fact); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to store interview memory")
		}
	}

	return assessment, nil
}

// Delete evicts the session. Safe to call for sessions already gone.
func (c *Controller) Delete(sessionID string) {
	c.registry.Delete(sessionID)
}

// Shutdown waits for background generation to drain.
func (c *Controller) Shutdown() {
	c.scheduler.Wait()
}

// lastQuestion returns the question a repeat request should replay: the open
// one if the candidate has not answered yet, otherwise the most recent entry.
// A repeat uttered after everything is answered still deserves a replay.
func lastQuestion(rec *session.Record) (string, bool) {
	for i := len(rec.Log) - 1; i >= 0; i-- {
		if rec.Log[i].Answer == nil {
			return rec.Log[i].Question, true
		}
	}
	if n := len(rec.Log); n > 0 {
		return rec.Log[n-1].Question, true
	}
	return "", false
}

func closingMessage(profile domain.ResumeProfile) string {
	if profile.KnownFirstName() {
		tmpl := closingTemplates[rand.Intn(len(closingTemplates))]
		return fmt.Sprintf(tmpl, profile.FirstName)
	}
	return closingTemplatesAnonymous[rand.Intn(len(closingTemplatesAnonymous))]
}

func formatProfile(p domain.ResumeProfile) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nSeniority: %s\nSkills: %s\nExperience: %s",
		p.FullName(), p.Email, p.Seniority, strings.Join(p.Skills, ", "), p.Experience)
}

func formatTranscript(entries []domain.ConversationEntry) string {
	var b strings.Builder
	for i, e := range entries {
		answer := "(no answer)"
		if e.Answer != nil {
			answer = *e.Answer
		}
		kind := ""
		if e.IsClarifying {
			kind = " (clarifying)"
		}
		fmt.Fprintf(&b, "Q%d%s: %s\nA%d: %s\n\n", i+1, kind, e.Question, i+1, answer)
	}
	return strings.TrimRight(b.String(), "\n")
}
