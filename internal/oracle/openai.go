package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veridict/veridict/internal/model"
)

// OpenAISentiment implements SentimentOracle against an OpenAI-compatible
// Chat Completions API.
type OpenAISentiment struct {
	client *openai.Client
	config model.OracleConfig
}

// NewOpenAISentiment creates a new OpenAI-backed sentiment oracle.
func NewOpenAISentiment(cfg model.OracleConfig) (*OpenAISentiment, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAISentiment{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the backend name
func (o *OpenAISentiment) Name() string {
	return "openai"
}

const sentimentSystemPrompt = `You are a sentiment classifier. Respond with only a JSON object of the form {"label": "<positive|negative|neutral>", "score": <number between 0 and 1>} where score is your confidence in the label. No prose, no code fences.`

// Analyze classifies the sentiment of the text and returns the
// top-ranked label with its score.
func (o *OpenAISentiment) Analyze(ctx context.Context, text string) (*Sentiment, error) {
	mdl := o.config.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}

	timeout := time.Duration(o.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   64,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseSentimentJSON(resp.Choices[0].Message.Content)
}

// parseSentimentJSON extracts a Sentiment from a model reply, tolerating
// surrounding text and code fences.
func parseSentimentJSON(reply string) (*Sentiment, error) {
	raw := strings.TrimSpace(reply)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var s Sentiment
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("parse sentiment reply %q: %w", reply, err)
	}
	if s.Label == "" {
		return nil, fmt.Errorf("sentiment reply missing label: %q", reply)
	}
	if s.Score < 0 {
		s.Score = 0
	}
	if s.Score > 1 {
		s.Score = 1
	}
	return &s, nil
}
