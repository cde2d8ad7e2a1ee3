// Package llm wraps the OpenAI API behind a small interface so the
// pipeline can be tested without network access.
package llm

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client is the language-model surface the pipeline depends on.
type Client interface {
	// Complete sends a single-turn prompt and returns the model's text.
	Complete(ctx context.Context, model, prompt string) (string, error)
	// GenerateImage returns the URL of a generated cover image.
	GenerateImage(ctx context.Context, model, prompt string) (string, error)
}

// OpenAIClient implements Client with the official openai-go SDK.
type OpenAIClient struct {
	client openai.Client
	logger *slog.Logger
}

func NewOpenAIClient(apiKey, baseURL string, logger *slog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		logger: logger,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateImage(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(model),
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("openai: no image returned")
	}
	return resp.Data[0].URL, nil
}
