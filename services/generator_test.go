package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"ai-blog/config"
	"ai-blog/providers"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type fakeCompleter struct {
	text  string
	err   error
	delay time.Duration
	last  providers.CompletionRequest
	calls int
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	f.calls++
	f.last = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func newTestGenerator(t *testing.T, c providers.Completer, topics []string) *Generator {
	g := NewGenerator(c, topics, time.Second, zaptest.NewLogger(t))
	g.pick = func(n int) int { return n - 1 }
	return g
}

func TestGenerate(t *testing.T) {
	c := &fakeCompleter{text: "\n  ## Intro\nQuantum computers use **qubits**.\n  "}
	g := newTestGenerator(t, c, []string{"Other", "Quantum Computing Breakthroughs"})

	draft, err := g.Generate(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "Quantum Computing Breakthroughs", draft.Title)
	assert.Equal(t, "## Intro\nQuantum computers use **qubits**.", draft.Content)
	assert.Equal(t, DefaultAuthor, draft.Author)
	assert.Equal(t, "## Intro Quantum computers use **qubits**....", draft.Excerpt)
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, systemPrompt, c.last.System)
	assert.Equal(t, true, strings.Contains(c.last.User, `"Quantum Computing Breakthroughs"`))
	assert.Equal(t, true, strings.Contains(c.last.User, "600-800 words"))
	assert.Equal(t, true, strings.Contains(c.last.User, "no title"))
}

func TestGenerate_ProviderError(t *testing.T) {
	cause := errors.New("quota exceeded")
	c := &fakeCompleter{err: cause}
	g := newTestGenerator(t, c, nil)

	_, err := g.Generate(context.Background())

	var gerr *GenerationError
	assert.Equal(t, true, errors.As(err, &gerr))
	assert.Equal(t, true, errors.Is(err, cause))
	assert.Equal(t, DefaultTopics[len(DefaultTopics)-1], gerr.Topic)
	assert.Equal(t, 1, c.calls)
}

func TestGenerate_EmptyContent(t *testing.T) {
	g := newTestGenerator(t, &fakeCompleter{text: " \n\t "}, nil)
	_, err := g.Generate(context.Background())
	assert.Equal(t, true, errors.Is(err, ErrEmptyContent))
}

func TestGenerate_Timeout(t *testing.T) {
	c := &fakeCompleter{text: "late", delay: time.Second}
	g := newTestGenerator(t, c, nil)
	g.Timeout = 20 * time.Millisecond

	_, err := g.Generate(context.Background())
	assert.Equal(t, true, errors.Is(err, context.DeadlineExceeded))
}

func TestNewGenerator_DefaultTopics(t *testing.T) {
	g := NewGenerator(&fakeCompleter{}, nil, 0, zaptest.NewLogger(t))
	assert.Equal(t, 20, len(g.Topics))
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("line one\n", 40)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "short content", content: "Hello\nworld", want: "Hello world..."},
		{name: "windows line endings", content: "a\r\nb", want: "a b..."},
		{name: "truncated at 150", content: long, want: strings.ReplaceAll(long[:150], "\n", " ") + "..."},
		{name: "multibyte runes", content: strings.Repeat("ü", 200), want: strings.Repeat("ü", 150) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.content)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Excerpt(tt.content))
			assert.Equal(t, false, strings.ContainsAny(got, "\r\n"))
			assert.Equal(t, true, utf8.RuneCountInString(strings.TrimSuffix(got, "...")) <= 150)
		})
	}
}

func TestLoadTopics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yaml")
	os.WriteFile(path, []byte("topics:\n  - Edge Computing\n  - \"  \"\n  - Open Source Sustainability\n"), 0o644)

	topics, err := LoadTopics(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Edge Computing", "Open Source Sustainability"}, topics)

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("topics: []\n"), 0o644)
	_, err = LoadTopics(empty)
	assert.NotEqual(t, nil, err)

	_, err = LoadTopics(filepath.Join(dir, "missing.yaml"))
	assert.NotEqual(t, nil, err)
}

func TestNewCompleter(t *testing.T) {
	log := zaptest.NewLogger(t)

	c, err := NewCompleter(&config.Config{AIProvider: "openai", OpenAIAPIKey: "k", OpenAIModel: "gpt-3.5-turbo"}, log)
	assert.Equal(t, nil, err)
	assert.Equal(t, "openai", c.Name())

	c, err = NewCompleter(&config.Config{AIProvider: "anthropic", AnthropicAPIKey: "k", AnthropicModel: "claude-haiku-4-5"}, log)
	assert.Equal(t, nil, err)
	assert.Equal(t, "anthropic", c.Name())

	_, err = NewCompleter(&config.Config{AIProvider: "llama"}, log)
	assert.NotEqual(t, nil, err)
}

func TestNewGeneratorFromConfig_TopicsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	os.WriteFile(path, []byte("topics: [\"Only Topic\"]\n"), 0o644)

	g, err := NewGeneratorFromConfig(&config.Config{AIProvider: "openai", OpenAIAPIKey: "k", TopicsFile: path, GenerationTimeout: time.Minute}, zaptest.NewLogger(t))
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Only Topic"}, g.Topics)
	assert.Equal(t, time.Minute, g.Timeout)
}

func TestGenerate_FailureLeavesErrorLoggingToCaller(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGenerator(&fakeCompleter{err: errors.New("boom")}, nil, time.Second, zap.New(core))

	_, err := g.Generate(context.Background())
	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("Article generation failed").Len())

	g.Provider = &fakeCompleter{text: "   "}
	_, err = g.Generate(context.Background())
	assert.Equal(t, true, errors.Is(err, ErrEmptyContent))
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
