package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/response"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/security"

	"github.com/go-chi/chi/v5"
)

var validate = validator.New()

// InterviewService is implemented by interview.Controller.
type InterviewService interface {
	Initialize(ctx context.Context, sessionID, resumeText string) string
	Advance(ctx context.Context, sessionID, answer string) (*domain.TurnResult, error)
	Assess(ctx context.Context, sessionID string) (*domain.Assessment, error)
	Delete(sessionID string)
}

// InterviewHandler handles interview lifecycle endpoints
type InterviewHandler struct {
	interviews InterviewService
	tokens     *security.TokenManager
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviews InterviewService, tokens *security.TokenManager) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, tokens: tokens}
}

type createInterviewRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=10"`
}

type createInterviewResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Question  string `json:"question"`
}

// Create starts an interview session and returns the opening question along
// with the session token the client must present on every later call.
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	sessionID := uuid.NewString()

	token, err := h.tokens.Generate(sessionID)
	if err != nil {
		response.InternalError(w, r, "failed to create session")
		return
	}

	question := h.interviews.Initialize(r.Context(), sessionID, req.ResumeText)

	response.Created(w, r, createInterviewResponse{
		SessionID: sessionID,
		Token:     token,
		Question:  question,
	})
}

type answerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// Answer advances the interview by one turn.
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	result, err := h.interviews.Advance(r.Context(), sessionID, req.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, r, "session not found")
			return
		}
		response.InternalError(w, r, err.Error())
		return
	}

	response.OK(w, r, result)
}

// Assessment generates the hiring assessment for a finished interview.
func (h *InterviewHandler) Assessment(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	assessment, err := h.interviews.Assess(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			response.NotFound(w, r, "session not found")
			return
		}
		response.InternalError(w, r, err.Error())
		return
	}

	response.OK(w, r, assessment)
}

// Delete ends the session and discards its state.
func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.interviews.Delete(chi.URLParam(r, "sessionID"))
	response.NoContent(w)
}
