package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/config"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

type Provider struct {
	apiKey         string
	model          string
	embeddingModel string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		embeddingModel: "text-embedding-004",
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) generate(ctx context.Context, model, prompt string, temperature float32) (string, int, error) {
	if !p.IsConfigured() {
		return "", 0, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	generativeModel.Temperature = &temperature

	resp, err := generativeModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", 0, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", 0, fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return output, tokensUsed, nil
}

func (p *Provider) GenerateQuestion(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if model == "" {
		model = p.DefaultModel()
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

func (p *Provider) ParseResume(ctx context.Context, resumeText, model string) (*domain.ResumeProfile, error) {
	if model == "" {
		model = p.DefaultModel()
	}

	output, _, err := p.generate(ctx, model, llm.BuildResumePrompt(resumeText), 0)
	if err != nil {
		return nil, err
	}

	return llm.ParseProfileJSON(output)
}

func (p *Provider) GenerateAssessment(ctx context.Context, req llm.AssessmentRequest, model string) (*domain.Assessment, error) {
	if model == "" {
		model = p.DefaultModel()
	}

	output, _, err := p.generate(ctx, model, llm.BuildAssessmentPrompt(req), 0)
	if err != nil {
		return nil, err
	}

	return llm.ParseAssessmentJSON(output)
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	em := client.EmbeddingModel(p.embeddingModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding error: %w", err)
	}

	if resp.Embedding == nil {
		return nil, fmt.Errorf("empty embedding from gemini")
	}

	return resp.Embedding.Values, nil
}
