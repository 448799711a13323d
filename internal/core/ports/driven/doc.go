// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Segmenter: Parses course scripts into courses and chunks
//   - VectorStore: Dual-collection vector storage and filtered search
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Tool-calling language model capability
//   - SessionStore: Bounded conversation history
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
