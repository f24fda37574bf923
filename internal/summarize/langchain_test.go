package summarize

import (
	"errors"
	"testing"
)

// TestClientConfigFromEnvironment verifies environment variable resolution and
// defaulting.
func TestClientConfigFromEnvironment(testingHandle *testing.T) {
	testingHandle.Setenv("LIBINDEX_BASE_URL", "http://localhost:8080/v1")
	testingHandle.Setenv("LIBINDEX_MODEL", "local-model")
	testingHandle.Setenv("OPENAI_API_KEY", "  secret  ")

	configuration := ClientConfigFromEnvironment()
	if configuration.BaseURL != "http://localhost:8080/v1" {
		testingHandle.Fatalf("expected the base URL override, got %q", configuration.BaseURL)
	}
	if configuration.Model != "local-model" {
		testingHandle.Fatalf("expected the model override, got %q", configuration.Model)
	}
	if configuration.APIKey != "secret" {
		testingHandle.Fatalf("expected the trimmed API key, got %q", configuration.APIKey)
	}
}

// TestClientConfigDefaults verifies the hosted endpoint defaults.
func TestClientConfigDefaults(testingHandle *testing.T) {
	testingHandle.Setenv("LIBINDEX_BASE_URL", "")
	testingHandle.Setenv("LIBINDEX_MODEL", "")
	testingHandle.Setenv("OPENAI_API_KEY", "")

	configuration := ClientConfigFromEnvironment()
	if configuration.BaseURL != defaultBaseURL {
		testingHandle.Fatalf("expected the default base URL, got %q", configuration.BaseURL)
	}
	if configuration.Model != defaultModelName {
		testingHandle.Fatalf("expected the default model, got %q", configuration.Model)
	}
}

// TestClientConfigValidate verifies that a credential is required only for the
// hosted endpoint.
func TestClientConfigValidate(testingHandle *testing.T) {
	hostedWithoutKey := ClientConfig{}
	if validationError := hostedWithoutKey.Validate(); !errors.Is(validationError, ErrMissingAPIKey) {
		testingHandle.Fatalf("expected ErrMissingAPIKey for the hosted endpoint, got %v", validationError)
	}

	hostedWithKey := ClientConfig{APIKey: "secret"}
	if validationError := hostedWithKey.Validate(); validationError != nil {
		testingHandle.Fatalf("expected a credentialed hosted configuration to validate, got %v", validationError)
	}

	localWithoutKey := ClientConfig{BaseURL: "http://localhost:8080/v1"}
	if validationError := localWithoutKey.Validate(); validationError != nil {
		testingHandle.Fatalf("expected a local endpoint to validate without a credential, got %v", validationError)
	}
}

// TestNewClientRequiresCredentialForHostedEndpoint verifies construction fails
// fast when the hosted endpoint has no key.
func TestNewClientRequiresCredentialForHostedEndpoint(testingHandle *testing.T) {
	if _, clientError := NewClient(ClientConfig{}); !errors.Is(clientError, ErrMissingAPIKey) {
		testingHandle.Fatalf("expected ErrMissingAPIKey, got %v", clientError)
	}
}
