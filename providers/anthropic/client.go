package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-blog/providers"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const defaultMaxTokens = 1500

// Client implementiert providers.Completer über die Messages-API.
type Client struct {
	client *sdk.Client
	model  sdk.Model
	Logger *zap.Logger
}

// NewClient erstellt einen Anthropic-Client ohne automatische Wiederholungen.
func NewClient(apiKey, model string, logger *zap.Logger, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := sdk.NewClient(opts...)
	return &Client{client: &client, model: sdk.Model(model), Logger: logger}
}

// Name gibt den Namen des Providers zurück.
func (c *Client) Name() string {
	return "anthropic"
}

// Complete schickt System- und User-Prompt an die Messages-API und fügt alle Textblöcke zusammen.
func (c *Client) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []sdk.TextBlockParam{
			{Text: req.System},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.User)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", errors.New("no response from anthropic")
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	c.Logger.Debug("Anthropic completion finished",
		zap.String("model", string(resp.Model)),
		zap.Int64("output_tokens", resp.Usage.OutputTokens))
	return b.String(), nil
}
