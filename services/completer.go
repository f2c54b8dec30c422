package services

import (
	"fmt"

	"ai-blog/config"
	"ai-blog/providers"
	"ai-blog/providers/anthropic"
	"ai-blog/providers/openai"

	"go.uber.org/zap"
)

// NewCompleter wählt den Text-Provider anhand von AI_PROVIDER.
func NewCompleter(cfg *config.Config, logger *zap.Logger) (providers.Completer, error) {
	switch cfg.AIProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger), nil
	case "anthropic":
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AIProvider)
	}
}

// NewGeneratorFromConfig baut Provider, Themenkatalog und Generator aus der Konfiguration.
func NewGeneratorFromConfig(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	completer, err := NewCompleter(cfg, logger)
	if err != nil {
		return nil, err
	}

	var topics []string
	if cfg.TopicsFile != "" {
		if topics, err = LoadTopics(cfg.TopicsFile); err != nil {
			return nil, err
		}
		logger.Info("Loaded topic catalog", zap.String("file", cfg.TopicsFile), zap.Int("topics", len(topics)))
	}
	return NewGenerator(completer, topics, cfg.GenerationTimeout, logger), nil
}
