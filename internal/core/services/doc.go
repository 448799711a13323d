// Package services implements the driving port interfaces.
// Services contain the core business logic: the tool registry, the
// retrieval tools, the two-phase query orchestrator, and ingestion.
// They orchestrate calls to driven ports (adapters).
package services
