package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/response"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

// MatchService is implemented by match.Service.
type MatchService interface {
	Match(ctx context.Context, resumeText string, limit int) ([]domain.JobMatch, error)
}

// JobsHandler handles the job board endpoints
type JobsHandler struct {
	jobs    domain.JobRepository
	matcher MatchService
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobs domain.JobRepository, matcher MatchService) *JobsHandler {
	return &JobsHandler{jobs: jobs, matcher: matcher}
}

// List returns active job postings, filtered by query parameters.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.JobFilter{
		Location:        q.Get("location"),
		ExperienceLevel: q.Get("experience_level"),
	}
	if skills := q.Get("skills"); skills != "" {
		filter.Skills = strings.Split(skills, ",")
	}

	limit := intParam(q.Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}
	offset := intParam(q.Get("offset"), 0)

	jobs, total, err := h.jobs.List(r.Context(), filter, limit, offset)
	if err != nil {
		response.InternalError(w, r, err.Error())
		return
	}

	response.OK(w, r, map[string]any{
		"jobs":   jobs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

type matchRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=10"`
	Limit      int    `json:"limit"`
}

// Match ranks jobs against a resume by semantic similarity.
func (h *JobsHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	matches, err := h.matcher.Match(r.Context(), req.ResumeText, req.Limit)
	if err != nil {
		response.InternalError(w, r, err.Error())
		return
	}

	response.OK(w, r, map[string]any{"matches": matches})
}

func intParam(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
