// Package qdrant provides a vector store adapter backed by a Qdrant
// instance over gRPC. It maintains two collections: a catalog with one
// summary point per course, used for fuzzy course-name resolution, and
// a content collection holding every chunk.
package qdrant

import (
	"context"
	"crypto/tls"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// scrollPageSize bounds one catalog scroll request.
const scrollPageSize = 64

// Config holds configuration for the Qdrant store.
type Config struct {
	// Host is the Qdrant host (default: localhost).
	Host string

	// Port is the Qdrant gRPC port (default: 6334).
	Port int

	// APIKey authenticates Qdrant cloud instances (optional).
	APIKey string

	// UseTLS enables transport security.
	UseTLS bool

	// CatalogCollection is the course summary collection name
	// (default: course_catalog).
	CatalogCollection string

	// ContentCollection is the chunk collection name
	// (default: course_content).
	ContentCollection string

	// ScoreThreshold is the minimum similarity for course-name
	// resolution (default: 0.35).
	ScoreThreshold float64
}

// Store is a Qdrant-backed vector store. Embedding happens inside the
// adapter: callers pass text, never vectors.
type Store struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	embedder    driven.EmbeddingService
	catalog     string
	content     string
	threshold   float64
}

// NewStore connects to Qdrant and ensures both collections exist, sized
// to the embedder's dimensions.
func NewStore(ctx context.Context, cfg Config, embedder driven.EmbeddingService) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = domain.DefaultQdrantHost
	}
	if cfg.Port == 0 {
		cfg.Port = domain.DefaultQdrantPort
	}
	if cfg.CatalogCollection == "" {
		cfg.CatalogCollection = domain.DefaultCatalogName
	}
	if cfg.ContentCollection == "" {
		cfg.ContentCollection = domain.DefaultContentName
	}
	if cfg.ScoreThreshold == 0 {
		cfg.ScoreThreshold = domain.DefaultScoreThreshold
	}

	creds := insecure.NewCredentials()
	if cfg.UseTLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s:%d: %w",
			domain.ErrVectorStoreUnavailable, cfg.Host, cfg.Port, err)
	}

	s := &Store{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		embedder:    embedder,
		catalog:     cfg.CatalogCollection,
		content:     cfg.ContentCollection,
		threshold:   cfg.ScoreThreshold,
	}

	if err := s.ensureCollections(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// apiKeyInterceptor attaches the api-key metadata to every call.
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption,
	) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// ensureCollections creates the catalog and content collections if they
// are missing.
func (s *Store) ensureCollections(ctx context.Context) error {
	resp, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("%w: list collections: %w", domain.ErrVectorStoreUnavailable, err)
	}

	existing := make(map[string]bool)
	for _, col := range resp.GetCollections() {
		existing[col.GetName()] = true
	}

	for _, name := range []string{s.catalog, s.content} {
		if existing[name] {
			continue
		}
		if err := s.createCollection(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) createCollection(ctx context.Context, name string) error {
	logger.Debug("Creating collection %q (%d dims)", name, s.embedder.Dimensions())
	_, err := s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: name,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(s.embedder.Dimensions()),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

// UpsertCourseSummary writes the course's catalog point. The point ID is
// derived from the title, so re-ingesting a course overwrites its
// summary instead of duplicating it.
func (s *Store) UpsertCourseSummary(ctx context.Context, course *domain.Course) error {
	summary := course.Summary()

	vector, err := s.embedder.Embed(ctx, summary.CatalogText())
	if err != nil {
		return fmt.Errorf("embed summary: %w", err)
	}

	point, err := summaryPoint(&summary, vector)
	if err != nil {
		return err
	}

	wait := true
	_, err = s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.catalog,
		Wait:           &wait,
		Points:         []*qdrantclient.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

// UpsertChunks embeds and writes content chunks in one batch. Chunk IDs
// derive from (course, index), making re-ingestion last-write-wins.
func (s *Store) UpsertChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	points := make([]*qdrantclient.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = chunkPoint(chunk, vectors[i])
	}

	wait := true
	_, err = s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.content,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upsert chunks: %w", err)
	}

	logger.Debug("Upserted %d chunks", len(chunks))
	return nil
}

// ResolveCourseName matches a free-text course reference against the
// catalog by vector similarity. Matches below the score threshold are
// misses.
func (s *Store) ResolveCourseName(ctx context.Context, name string) (string, error) {
	vector, err := s.embedder.Embed(ctx, name)
	if err != nil {
		return "", fmt.Errorf("embed course name: %w", err)
	}

	threshold := float32(s.threshold)
	resp, err := s.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: s.catalog,
		Vector:         vector,
		Limit:          1,
		ScoreThreshold: &threshold,
		WithPayload:    includePayload(payloadTitle),
	})
	if err != nil {
		return "", fmt.Errorf("search catalog: %w", err)
	}

	if len(resp.GetResult()) == 0 {
		return "", fmt.Errorf("resolve %q: %w", name, domain.ErrCourseNotFound)
	}

	hit := resp.GetResult()[0]
	title := hit.GetPayload()[payloadTitle].GetStringValue()
	logger.Debug("Resolved %q -> %q (score %.3f)", name, title, hit.GetScore())
	return title, nil
}

// Search performs filtered semantic search over the content collection.
// A course reference is resolved to an exact title first; resolution
// misses surface as ErrCourseNotFound.
func (s *Store) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	var conditions []*qdrantclient.Condition

	if opts.CourseName != "" {
		title, err := s.ResolveCourseName(ctx, opts.CourseName)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, matchKeyword(payloadCourseTitle, title))
	}
	if opts.LessonNumber != nil {
		conditions = append(conditions, matchInteger(payloadLessonNumber, int64(*opts.LessonNumber)))
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	req := &qdrantclient.SearchPoints{
		CollectionName: s.content,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload:    includePayload(payloadCourseTitle, payloadLessonNumber, payloadContent),
	}
	if len(conditions) > 0 {
		req.Filter = &qdrantclient.Filter{Must: conditions}
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search content: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(resp.GetResult()))
	for _, hit := range resp.GetResult() {
		results = append(results, scoredResult(hit))
	}
	return results, nil
}

// ExistingCourseTitles returns the set of titles present in the catalog.
func (s *Store) ExistingCourseTitles(ctx context.Context) (map[string]bool, error) {
	titles := make(map[string]bool)
	err := s.scrollCatalog(ctx, []string{payloadTitle}, func(point *qdrantclient.RetrievedPoint) {
		if title := point.GetPayload()[payloadTitle].GetStringValue(); title != "" {
			titles[title] = true
		}
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// ListCourseSummaries returns every catalog record.
func (s *Store) ListCourseSummaries(ctx context.Context) ([]domain.CourseSummary, error) {
	var summaries []domain.CourseSummary
	var decodeErr error
	err := s.scrollCatalog(ctx, nil, func(point *qdrantclient.RetrievedPoint) {
		summary, err := summaryFromPayload(point.GetPayload())
		if err != nil {
			decodeErr = err
			return
		}
		summaries = append(summaries, *summary)
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return summaries, nil
}

// GetCourseSummary fetches one catalog record by its exact stored title.
func (s *Store) GetCourseSummary(ctx context.Context, title string) (*domain.CourseSummary, error) {
	resp, err := s.points.Get(ctx, &qdrantclient.GetPoints{
		CollectionName: s.catalog,
		Ids:            []*qdrantclient.PointId{summaryID(title)},
		WithPayload:    includeAllPayload(),
	})
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	if len(resp.GetResult()) == 0 {
		return nil, fmt.Errorf("summary %q: %w", title, domain.ErrNotFound)
	}
	return summaryFromPayload(resp.GetResult()[0].GetPayload())
}

// scrollCatalog pages through the catalog collection.
func (s *Store) scrollCatalog(ctx context.Context, fields []string, visit func(*qdrantclient.RetrievedPoint)) error {
	limit := uint32(scrollPageSize)
	payload := includeAllPayload()
	if len(fields) > 0 {
		payload = includePayload(fields...)
	}

	var offset *qdrantclient.PointId
	for {
		resp, err := s.points.Scroll(ctx, &qdrantclient.ScrollPoints{
			CollectionName: s.catalog,
			Limit:          &limit,
			Offset:         offset,
			WithPayload:    payload,
		})
		if err != nil {
			return fmt.Errorf("scroll catalog: %w", err)
		}

		for _, point := range resp.GetResult() {
			visit(point)
		}

		offset = resp.GetNextPageOffset()
		if offset == nil {
			return nil
		}
	}
}

// Reset drops and recreates both collections.
func (s *Store) Reset(ctx context.Context) error {
	for _, name := range []string{s.catalog, s.content} {
		_, err := s.collections.Delete(ctx, &qdrantclient.DeleteCollection{
			CollectionName: name,
		})
		if err != nil {
			return fmt.Errorf("delete collection %s: %w", name, err)
		}
		if err := s.createCollection(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
