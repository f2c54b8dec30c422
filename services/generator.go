package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"ai-blog/providers"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultAuthor steht bei allen generierten Artikeln als Autor.
const DefaultAuthor = "AI Blog Writer"

const excerptLength = 150

const systemPrompt = "You are a professional tech blogger who writes engaging, informative articles. Write in a conversational yet professional tone."

const userPromptTemplate = `Write a comprehensive blog article about "%s".

The article should:
- Be 600-800 words long
- Have an engaging introduction
- Include 3-4 main points with explanations
- Have a thoughtful conclusion
- Be informative and well-structured
- Use markdown formatting (headings, bold, lists where appropriate)

Only provide the article content, no title.`

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// DefaultTopics ist der eingebaute Themenkatalog.
var DefaultTopics = []string{
	"The Future of Artificial Intelligence in Healthcare",
	"Sustainable Energy Solutions for Tomorrow",
	"The Rise of Remote Work Culture",
	"Blockchain Technology Beyond Cryptocurrency",
	"Mental Health in the Digital Age",
	"Space Exploration and Human Settlement",
	"The Evolution of Mobile Technology",
	"Cybersecurity Trends and Challenges",
	"The Impact of Social Media on Society",
	"Climate Change and Environmental Conservation",
	"Quantum Computing Breakthroughs",
	"The Gig Economy and Future of Work",
	"Virtual Reality in Education",
	"Autonomous Vehicles Revolution",
	"The Ethics of Genetic Engineering",
	"Smart Cities and Urban Development",
	"The Future of Food Technology",
	"Privacy in the Age of Big Data",
	"Renewable Energy Innovations",
	"The Metaverse and Digital Identity",
}

// ErrEmptyContent meldet eine Antwort des Providers ohne verwertbaren Text.
var ErrEmptyContent = errors.New("provider returned empty content")

// GenerationError kapselt jeden Fehlschlag bei der Erzeugung eines Artikels.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate article about %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ArticleDraft ist ein erzeugter, noch nicht gespeicherter Artikel.
type ArticleDraft struct {
	Title   string
	Content string
	Author  string
	Excerpt string
}

// Generator erzeugt Artikel zu einem zufälligen Thema über einen Text-Provider.
type Generator struct {
	Provider providers.Completer
	Topics   []string
	Timeout  time.Duration
	Logger   *zap.Logger

	pick func(n int) int
}

// NewGenerator erstellt einen Generator. Ohne Themen wird DefaultTopics verwendet.
func NewGenerator(provider providers.Completer, topics []string, timeout time.Duration, logger *zap.Logger) *Generator {
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	return &Generator{
		Provider: provider,
		Topics:   topics,
		Timeout:  timeout,
		Logger:   logger,
		pick:     rand.Intn,
	}
}

// Generate wählt ein Thema, ruft den Provider genau einmal auf und baut daraus den Artikel.
func (g *Generator) Generate(ctx context.Context) (*ArticleDraft, error) {
	topic := g.Topics[g.pick(len(g.Topics))]
	log := g.Logger.With(zap.String("topic", topic), zap.String("provider", g.Provider.Name()))
	log.Info("Generating article")

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := g.Provider.Complete(ctx, providers.CompletionRequest{
		System:      systemPrompt,
		User:        UserPrompt(topic),
		Temperature: 0.8,
		MaxTokens:   1500,
	})
	if err != nil {
		log.Debug("Article generation failed", zap.Error(err))
		return nil, &GenerationError{Topic: topic, Err: err}
	}

	content := strings.TrimSpace(text)
	if content == "" {
		log.Debug("Article generation returned no content")
		return nil, &GenerationError{Topic: topic, Err: ErrEmptyContent}
	}

	log.Info("Article generated", zap.Int("content_length", len(content)), zap.Duration("took", time.Since(started)))
	return &ArticleDraft{
		Title:   topic,
		Content: content,
		Author:  DefaultAuthor,
		Excerpt: Excerpt(content),
	}, nil
}

// UserPrompt baut die Anweisung für ein Thema.
func UserPrompt(topic string) string {
	return fmt.Sprintf(userPromptTemplate, topic)
}

// Excerpt liefert die ersten 150 Zeichen des Inhalts ohne Zeilenumbrüche, gefolgt von "...".
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return lineBreaks.Replace(string(runes)) + "..."
}

// LoadTopics liest einen Themenkatalog aus einer YAML-Datei der Form "topics: [...]".
func LoadTopics(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics file: %w", err)
	}
	var file struct {
		Topics []string `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse topics file %s: %w", path, err)
	}

	var topics []string
	for _, t := range file.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("topics file %s contains no topics", path)
	}
	return topics, nil
}
