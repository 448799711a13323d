package domain

import "fmt"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOpenAI is the OpenAI cloud API (embeddings).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderAnthropic, AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderAnthropic || p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// LLMSettings configures the language model provider.
type LLMSettings struct {
	// Provider is anthropic or ollama.
	Provider AIProvider

	// Model is the model name (provider defaults apply when empty).
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// MaxTokens caps each generation (default 800).
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64
}

// IsConfigured returns true when the settings name a usable provider.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// Validate checks the settings for inconsistencies.
func (s *LLMSettings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: unknown llm provider %q", ErrInvalidInput, s.Provider)
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return fmt.Errorf("%w: provider %s requires an API key", ErrInvalidInput, s.Provider)
	}
	return nil
}

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	// Provider is openai or ollama.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// APIKey authenticates cloud providers.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// Dimensions overrides the model's default vector size.
	Dimensions int
}

// IsConfigured returns true when the settings name a usable provider.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// Validate checks the settings for inconsistencies.
func (s *EmbeddingSettings) Validate() error {
	if !s.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidInput, s.Provider)
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return fmt.Errorf("%w: provider %s requires an API key", ErrInvalidInput, s.Provider)
	}
	return nil
}

// VectorStoreSettings configures the qdrant connection and collections.
type VectorStoreSettings struct {
	// Host is the qdrant host (default localhost).
	Host string

	// Port is the qdrant gRPC port (default 6334).
	Port int

	// APIKey authenticates qdrant cloud instances.
	APIKey string

	// UseTLS enables transport security.
	UseTLS bool

	// CatalogCollection holds one summary point per course.
	CatalogCollection string

	// ContentCollection holds every chunk.
	ContentCollection string

	// ScoreThreshold is the minimum cosine similarity for fuzzy
	// course-name resolution. Matches below it are treated as misses.
	ScoreThreshold float64
}

// ChunkingSettings configures the segmenter.
type ChunkingSettings struct {
	// Size is the chunk character budget.
	Size int

	// Overlap is the trailing-context budget carried into the next chunk.
	Overlap int
}

// SessionSettings configures conversation history.
type SessionSettings struct {
	// MaxHistory is the number of retained exchanges per session.
	// The oldest exchange is evicted when it would be exceeded.
	MaxHistory int
}

// Default settings values.
const (
	DefaultChunkSize      = 800
	DefaultChunkOverlap   = 100
	DefaultMaxHistory     = 2
	DefaultMaxTokens      = 800
	DefaultScoreThreshold = 0.35
	DefaultQdrantHost     = "localhost"
	DefaultQdrantPort     = 6334
	DefaultCatalogName    = "course_catalog"
	DefaultContentName    = "course_content"
)
