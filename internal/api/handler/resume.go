package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/response"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

// ResumeService is implemented by resume.Service.
type ResumeService interface {
	Parse(ctx context.Context, resumeText string) (domain.ResumeProfile, []string, error)
}

// ResumeHandler handles standalone resume parsing
type ResumeHandler struct {
	resumes ResumeService
}

// NewResumeHandler creates a new resume handler
func NewResumeHandler(resumes ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

type parseResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=10"`
}

// Parse extracts a candidate profile from raw resume text. A degraded parse
// still returns the fallback profile with HTTP 200; clients distinguish it by
// the unknown sentinels.
func (h *ResumeHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	// Parse degrades to the fallback profile on extraction errors; the
	// service logs the cause.
	profile, _, _ := h.resumes.Parse(r.Context(), req.ResumeText)

	response.OK(w, r, profile)
}
