package openai

import (
	"context"
	"errors"
	"fmt"

	"ai-blog/providers"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// Client implementiert providers.Completer über die Chat-Completions-API.
type Client struct {
	client *sdk.Client
	model  sdk.ChatModel
	Logger *zap.Logger
}

// NewClient erstellt einen OpenAI-Client. Wiederholungen des SDK sind abgeschaltet,
// jeder Auftrag ist genau ein Versuch.
func NewClient(apiKey, model string, logger *zap.Logger, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := sdk.NewClient(opts...)
	return &Client{client: &client, model: sdk.ChatModel(model), Logger: logger}
}

// Name gibt den Namen des Providers zurück.
func (c *Client) Name() string {
	return "openai"
}

// Complete führt eine Chat-Completion aus.
func (c *Client) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	params := sdk.ChatCompletionNewParams{
		Model: c.model,
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(req.System),
			sdk.UserMessage(req.User),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	c.Logger.Debug("OpenAI completion finished",
		zap.String("model", resp.Model),
		zap.Int64("total_tokens", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}
