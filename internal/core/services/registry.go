package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

// Tool is a capability the language model can invoke by name.
// New tools are added by implementing this interface and registering;
// the orchestrator never changes.
type Tool interface {
	// Spec declares the tool to the model.
	Spec() domain.ToolSpec

	// Execute runs the tool. It returns the text result for the model
	// and any citation sources the result is grounded on. Soft failures
	// (nothing found) are explanatory text, not errors; an error means
	// the underlying capability failed.
	Execute(ctx context.Context, input map[string]any) (string, []domain.Source, error)
}

// ToolRegistry holds the available tools, dispatches invocations by name,
// and accumulates the citation sources emitted during one query.
type ToolRegistry struct {
	mu      sync.Mutex
	tools   map[string]Tool
	order   []string
	sources []domain.Source
	seen    map[string]bool
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
		seen:  make(map[string]bool),
	}
}

// Register adds a tool keyed by its declared name.
// Re-registering a name overwrites the previous tool.
func (r *ToolRegistry) Register(tool Tool) {
	name := tool.Spec().Name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Specs returns the declared schemas of all registered tools, in
// registration order.
func (r *ToolRegistry) Specs() []domain.ToolSpec {
	r.mu.Lock()
	defer r.mu.Unlock()

	specs := make([]domain.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec())
	}
	return specs
}

// Execute dispatches one tool invocation. An unregistered name yields an
// explanatory text result together with domain.ErrUnknownTool; the text
// is still suitable to send to the model. Sources emitted by the tool
// are accumulated, deduplicated by (course, lesson), in first-seen order.
func (r *ToolRegistry) Execute(ctx context.Context, name string, input map[string]any) (string, error) {
	r.mu.Lock()
	tool, ok := r.tools[name]
	r.mu.Unlock()

	if !ok {
		logger.Warn("Unknown tool requested: %s", name)
		return fmt.Sprintf("Tool '%s' not found", name), domain.ErrUnknownTool
	}

	text, sources, err := tool.Execute(ctx, input)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", name, err)
	}

	r.addSources(sources)
	return text, nil
}

// LastSources returns the sources accumulated since the last reset,
// across all tool invocations.
func (r *ToolRegistry) LastSources() []domain.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Source(nil), r.sources...)
}

// ResetSources clears the accumulated sources. Callers must reset after
// every query so citations cannot leak into unrelated answers.
func (r *ToolRegistry) ResetSources() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = nil
	r.seen = make(map[string]bool)
}

func (r *ToolRegistry) addSources(sources []domain.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, src := range sources {
		if key := src.Key(); !r.seen[key] {
			r.seen[key] = true
			r.sources = append(r.sources, src)
		}
	}
}
