package summarize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultModelName = "gpt-4o-mini"

	// baseURLEnvironmentVariable overrides the completion endpoint, allowing
	// OpenAI-compatible local servers to stand in for the hosted API.
	baseURLEnvironmentVariable = "LIBINDEX_BASE_URL"
	// modelEnvironmentVariable overrides the completion model name.
	modelEnvironmentVariable = "LIBINDEX_MODEL"
	// apiKeyEnvironmentVariable supplies the API credential.
	apiKeyEnvironmentVariable = "OPENAI_API_KEY"

	// placeholderAPIKey satisfies clients of local endpoints that do not
	// authenticate requests.
	placeholderAPIKey = "not-needed"
)

// ErrMissingAPIKey indicates that no credential is available for the hosted endpoint.
var ErrMissingAPIKey = errors.New("missing API key: set " + apiKeyEnvironmentVariable)

// ClientConfig selects the model endpoint used for summarization requests.
type ClientConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

// ClientConfigFromEnvironment returns config populated from environment
// variables, falling back to the hosted endpoint defaults.
func ClientConfigFromEnvironment() ClientConfig {
	configuration := ClientConfig{
		BaseURL: strings.TrimSpace(os.Getenv(baseURLEnvironmentVariable)),
		Model:   strings.TrimSpace(os.Getenv(modelEnvironmentVariable)),
		APIKey:  strings.TrimSpace(os.Getenv(apiKeyEnvironmentVariable)),
	}
	return configuration.withDefaults()
}

func (config ClientConfig) withDefaults() ClientConfig {
	result := config
	if result.BaseURL == "" {
		result.BaseURL = defaultBaseURL
	}
	if result.Model == "" {
		result.Model = defaultModelName
	}
	return result
}

// Validate reports configuration problems before a client is constructed. A
// credential is required for the hosted endpoint only; OpenAI-compatible local
// servers typically accept unauthenticated requests.
func (config ClientConfig) Validate() error {
	resolved := config.withDefaults()
	if resolved.APIKey == "" && resolved.BaseURL == defaultBaseURL {
		return ErrMissingAPIKey
	}
	return nil
}

// Client is a Completer backed by an OpenAI-compatible chat model.
type Client struct {
	languageModel llms.Model
}

// NewClient constructs a Client for the configured endpoint.
func NewClient(config ClientConfig) (*Client, error) {
	if validationError := config.Validate(); validationError != nil {
		return nil, validationError
	}
	resolved := config.withDefaults()
	apiKey := resolved.APIKey
	if apiKey == "" {
		apiKey = placeholderAPIKey
	}
	languageModel, clientError := openai.New(
		openai.WithModel(resolved.Model),
		openai.WithToken(apiKey),
		openai.WithBaseURL(resolved.BaseURL),
	)
	if clientError != nil {
		return nil, fmt.Errorf("create summarization client: %w", clientError)
	}
	return &Client{languageModel: languageModel}, nil
}

// Complete sends one completion request and returns the generated text.
func (client *Client) Complete(requestContext context.Context, request CompletionRequest) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, request.SystemInstruction),
		llms.TextParts(llms.ChatMessageTypeHuman, request.Prompt),
	}
	response, generationError := client.languageModel.GenerateContent(
		requestContext,
		messages,
		llms.WithTemperature(request.Temperature),
		llms.WithMaxTokens(request.MaxTokens),
	)
	if generationError != nil {
		return "", fmt.Errorf("summarization request: %w", generationError)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("summarization response contained no choices")
	}
	return response.Choices[0].Content, nil
}

var _ Completer = (*Client)(nil)
