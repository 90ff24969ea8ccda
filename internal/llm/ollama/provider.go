package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

// Provider implements llm.Provider for Ollama
type Provider struct {
	host           string
	defaultModel   string
	embeddingModel string
	client         *http.Client
}

// NewProvider creates a new Ollama provider
func NewProvider(host, defaultModel string) llm.Provider {
	if defaultModel == "" {
		defaultModel = "llama3"
	}
	return &Provider{
		host:           host,
		defaultModel:   defaultModel,
		embeddingModel: "nomic-embed-text",
		client:         &http.Client{Timeout: 300 * time.Second},
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "ollama"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"llama3",
		"llama3.1",
		"llama3.2",
		"mistral",
		"mixtral",
		"phi3",
		"qwen2",
	}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.host != ""
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count"`
}

func (p *Provider) generate(ctx context.Context, model, prompt string, temperature float64) (string, int, error) {
	ollamaReq := ollamaRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": temperature,
			"num_predict": 2048,
		},
	}

	body, err := json.Marshal(ollamaReq)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var ollamaResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return ollamaResp.Response, ollamaResp.EvalCount, nil
}

// GenerateQuestion generates the next interview question
func (p *Provider) GenerateQuestion(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if model == "" {
		model = p.defaultModel
	}

	start := time.Now()
	output, tokens, err := p.generate(ctx, model, llm.BuildQuestionPrompt(req), 0.7)
	if err != nil {
		return nil, err
	}

	return &llm.Response{
		Question:   llm.TruncateForVoice(output),
		Model:      model,
		TokensUsed: tokens,
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

// ParseResume extracts a candidate profile from raw resume text
func (p *Provider) ParseResume(ctx context.Context, resumeText, model string) (*domain.ResumeProfile, error) {
	if model == "" {
		model = p.defaultModel
	}

	output, _, err := p.generate(ctx, model, llm.BuildResumePrompt(resumeText), 0)
	if err != nil {
		return nil, err
	}

	return llm.ParseProfileJSON(output)
}

// GenerateAssessment evaluates a finished interview transcript
func (p *Provider) GenerateAssessment(ctx context.Context, req llm.AssessmentRequest, model string) (*domain.Assessment, error) {
	if model == "" {
		model = p.defaultModel
	}

	output, _, err := p.generate(ctx, model, llm.BuildAssessmentPrompt(req), 0)
	if err != nil {
		return nil, err
	}

	return llm.ParseAssessmentJSON(output)
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns an embedding vector for the given text
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Model: p.embeddingModel, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.host+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var embResp embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return embResp.Embedding, nil
}
