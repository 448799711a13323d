package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// courseScriptExtensions are the file types ingested from a folder.
var courseScriptExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// IngestService loads course scripts into the vector store: segment,
// deduplicate by title, upsert summary and chunks.
type IngestService struct {
	segmenter driven.Segmenter
	store     driven.VectorStore
}

// NewIngestService creates the ingestion service.
func NewIngestService(segmenter driven.Segmenter, store driven.VectorStore) *IngestService {
	return &IngestService{segmenter: segmenter, store: store}
}

// AddCourseDocument ingests one course script. A title already present
// in the catalog is treated as a duplicate document and skipped entirely
// (no summary or chunk writes); the parsed course is still returned with
// zero chunks.
func (s *IngestService) AddCourseDocument(ctx context.Context, path string) (*domain.Course, int, error) {
	existing, err := s.store.ExistingCourseTitles(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("existing titles: %w", err)
	}
	return s.addDocument(ctx, path, existing)
}

func (s *IngestService) addDocument(ctx context.Context, path string, existing map[string]bool) (*domain.Course, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read document: %w", err)
	}

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	course, chunks, err := s.segmenter.Segment(ctx, string(raw), fallback)
	if err != nil {
		return nil, 0, fmt.Errorf("segment %s: %w", filepath.Base(path), err)
	}

	if existing[course.Title] {
		logger.Debug("Skipping duplicate course %q", course.Title)
		return course, 0, nil
	}

	if err := s.store.UpsertCourseSummary(ctx, course); err != nil {
		return nil, 0, fmt.Errorf("upsert summary: %w", err)
	}
	if err := s.store.UpsertChunks(ctx, chunks); err != nil {
		return nil, 0, fmt.Errorf("upsert chunks: %w", err)
	}

	logger.Info("Indexed course %q: %d lessons, %d chunks",
		course.Title, len(course.Lessons), len(chunks))
	return course, len(chunks), nil
}

// AddCourseFolder ingests every course script in dir, in name order.
// Unreadable or unparseable documents are skipped and counted; they do
// not abort the run. A missing folder is an error.
func (s *IngestService) AddCourseFolder(ctx context.Context, dir string, clearExisting bool) (*driving.IngestStats, error) {
	if clearExisting {
		logger.Info("Clearing existing course data")
		if err := s.store.Reset(ctx); err != nil {
			return nil, fmt.Errorf("reset store: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read docs folder: %w", err)
	}

	existing, err := s.store.ExistingCourseTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("existing titles: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !courseScriptExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	stats := &driving.IngestStats{}
	for _, name := range names {
		course, chunks, err := s.addDocument(ctx, filepath.Join(dir, name), existing)
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			stats.Failures++
			continue
		}
		if chunks == 0 && existing[course.Title] {
			stats.Skipped++
			continue
		}
		existing[course.Title] = true
		stats.Courses++
		stats.Chunks += chunks
	}

	return stats, nil
}

// Catalog returns every course summary, sorted by title.
func (s *IngestService) Catalog(ctx context.Context) ([]domain.CourseSummary, error) {
	summaries, err := s.store.ListCourseSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Title < summaries[j].Title
	})
	return summaries, nil
}
