// Package llm wraps the OpenAI-compatible analysis and generation services.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pethoang/ExamGen10/internal/llm/prompts"
	"github.com/pethoang/ExamGen10/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping verifies the endpoint is reachable and the configured model exists.
func (c *Client) Ping(ctx context.Context) error {
	models, err := c.api.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, m := range models.Models {
		if m.ID == c.model {
			return nil
		}
	}
	slog.Warn("configured model not advertised by endpoint", "model", c.model)
	return nil
}

// Analyze asks the service to profile a sample exam text. Callers substitute
// model.DefaultAnalysis on any returned error instead of propagating it.
func (c *Client) Analyze(ctx context.Context, sampleText string) (model.Analysis, error) {
	prompt, err := prompts.BuildAnalyzePrompt(sampleText)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("build analyze prompt: %w", err)
	}

	raw, err := c.complete(ctx, prompt, 0.2)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("analysis API call: %w", err)
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &a); err != nil {
		return model.Analysis{}, fmt.Errorf("parse analysis response: %w (raw: %s)", err, raw)
	}
	if a.Reading.AverageWordCount <= 0 {
		return model.Analysis{}, fmt.Errorf("analysis response missing average word count (raw: %s)", raw)
	}
	return a, nil
}

// Generate asks the service for a full exam matching the structure matrix
// and the analysis. Malformed responses come back as errors; an incomplete
// exam never reaches the renderer.
func (c *Client) Generate(ctx context.Context, matrix string, analysis model.Analysis) (model.Exam, error) {
	prompt, err := prompts.BuildGeneratePrompt(matrix, analysis)
	if err != nil {
		return model.Exam{}, fmt.Errorf("build generate prompt: %w", err)
	}

	raw, err := c.complete(ctx, prompt, 0.7)
	if err != nil {
		return model.Exam{}, fmt.Errorf("generation API call: %w", err)
	}

	var exam model.Exam
	if err := json.Unmarshal([]byte(extractJSON(raw)), &exam); err != nil {
		return model.Exam{}, fmt.Errorf("parse generated exam: %w (raw: %s)", err, raw)
	}
	if err := ValidateExam(exam); err != nil {
		return model.Exam{}, fmt.Errorf("generated exam invalid: %w", err)
	}
	return exam, nil
}

func (c *Client) complete(ctx context.Context, systemPrompt string, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "raw", raw)
	return raw, nil
}

// ValidateExam checks that a generated exam has the required shape before it
// is stored or rendered.
func ValidateExam(exam model.Exam) error {
	if strings.TrimSpace(exam.Title) == "" {
		return fmt.Errorf("missing title")
	}
	if len(exam.Sections) == 0 {
		return fmt.Errorf("no sections")
	}
	for i, sec := range exam.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			return fmt.Errorf("section %d: missing title", i+1)
		}
		if len(sec.Questions) == 0 {
			return fmt.Errorf("section %d: no questions", i+1)
		}
		for j, q := range sec.Questions {
			if strings.TrimSpace(q.ID) == "" {
				return fmt.Errorf("section %d question %d: missing id", i+1, j+1)
			}
			switch q.Kind {
			case model.KindMultipleChoice, model.KindConstructedResponse,
				model.KindEssay, model.KindConversationMatching:
			default:
				return fmt.Errorf("section %d question %d: unknown type %q", i+1, j+1, q.Kind)
			}
			if q.SubCount < 0 {
				return fmt.Errorf("section %d question %d: negative sub_count", i+1, j+1)
			}
		}
	}
	return nil
}

// extractJSON strips markdown code fences some models wrap around JSON
// output despite the response-format hint.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
