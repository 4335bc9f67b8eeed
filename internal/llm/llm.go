// Package llm wraps the Gemini API. It has one job: send a prompt and
// return the model's raw text. It knows nothing about sports, JSON schemas,
// or files.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"storygen/internal/logger"
)

// DefaultModel is the default Gemini model for story generation.
const DefaultModel = "gemini-2.5-flash"

// Client represents a client for the generation service.
type Client struct {
	modelName   string
	maxTokens   int32
	temperature float32
	gClient     *genai.Client
}

// Options configures text generation.
type Options struct {
	MaxTokens   int32   // Maximum number of tokens to generate
	Temperature float32 // Temperature for randomness (0.0 to 1.0)
}

// NewClient creates a new generation client.
// It supports multiple ways to get the API key (in order of preference):
// 1. Environment variables: GEMINI_API_KEY (or alternatives)
// 2. Viper configuration: ai.gemini.api_key
func NewClient(ctx context.Context, modelName string, opts Options) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("ai.gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}

	if modelName == "" {
		modelName = viper.GetString("ai.gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName:   modelName,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		gClient:     gClient,
	}, nil
}

// ModelName returns the model this client generates with.
func (c *Client) ModelName() string {
	return c.modelName
}

// GenerateStory sends the prompt to the model and returns the raw response
// text, unmodified. Cleaning and validation belong to the story package.
func (c *Client) GenerateStory(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if c.maxTokens > 0 {
		config.MaxOutputTokens = c.maxTokens
	}

	logger.Infof("sending prompt to %s", c.modelName)

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	if usage := resp.UsageMetadata; usage != nil {
		logger.Infof("tokens used - input: %d, output: %d, total: %d",
			usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)
	}

	return text, nil
}
