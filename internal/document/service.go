package document

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/inkwell/internal/cachemanager"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// runsTTL is how long parsed run lists stay hot after the last access.
const runsTTL = 5 * time.Minute

// Service coordinates document persistence with a read-through cache of
// parsed run lists, change events for the UI, and tracing spans around
// repository calls.
type Service struct {
	repo   Repository
	table  richtext.Table
	runs   *cachemanager.ReadThroughCache[string, richtext.Runs, string]
	cache  cachemanager.CacheManager[string, richtext.Runs]
	events *pubsub.Broker[*Document]
	tracer trace.Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTracer attaches a tracer; without it spans are no-ops.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tracer }
}

// NewService builds a document service on top of a repository. The cache
// holds parsed run lists keyed by document GUID.
func NewService(repo Repository, table richtext.Table, cache cachemanager.CacheManager[string, richtext.Runs], opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		table:  table,
		cache:  cache,
		events: pubsub.NewBroker[*Document](),
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	s.runs = cachemanager.NewReadThroughCache[string, richtext.Runs, string](
		cache,
		s.loadRuns,
		cache == nil,
	)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadRuns fetches a document and parses its markup into a run list.
func (s *Service) loadRuns(ctx context.Context, guid string) (richtext.Runs, error) {
	doc, err := s.Get(ctx, guid)
	if err != nil {
		return nil, err
	}
	runs, _ := richtext.ParseMarkup(doc.Markup(), s.table)
	return runs, nil
}

// Create persists a new document and announces it.
func (s *Service) Create(ctx context.Context, title, markup string) (*Document, error) {
	_, span := s.tracer.Start(ctx, "document.Create")
	defer span.End()

	doc := New(title, markup)
	if err := s.repo.Save(doc); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	span.SetAttributes(attribute.String("document.guid", doc.GUID()))

	log.Info(log.CatDB, "Created document", "guid", doc.GUID(), "title", title)
	s.events.Publish(pubsub.CreatedEvent, doc)
	return doc, nil
}

// Get retrieves a document by GUID.
func (s *Service) Get(ctx context.Context, guid string) (*Document, error) {
	_, span := s.tracer.Start(ctx, "document.Get",
		trace.WithAttributes(attribute.String("document.guid", guid)))
	defer span.End()

	doc, err := s.repo.FindByGUID(guid)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return doc, nil
}

// Runs returns the parsed run list for a document, served from the cache
// when hot. The TTL is refreshed on every access.
func (s *Service) Runs(ctx context.Context, guid string) (richtext.Runs, error) {
	return s.runs.GetWithRefresh(ctx, guid, guid, runsTTL)
}

// Save persists changes to an existing document, invalidates its cached run
// list, and announces the update.
func (s *Service) Save(ctx context.Context, doc *Document) error {
	_, span := s.tracer.Start(ctx, "document.Save",
		trace.WithAttributes(attribute.String("document.guid", doc.GUID())))
	defer span.End()

	if err := s.repo.Save(doc); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save document: %w", err)
	}
	s.invalidate(ctx, doc.GUID())

	log.Debug(log.CatDB, "Saved document", "guid", doc.GUID())
	s.events.Publish(pubsub.UpdatedEvent, doc)
	return nil
}

// Delete soft-deletes a document and announces the removal.
func (s *Service) Delete(ctx context.Context, guid string) error {
	_, span := s.tracer.Start(ctx, "document.Delete",
		trace.WithAttributes(attribute.String("document.guid", guid)))
	defer span.End()

	doc, err := s.repo.FindByGUID(guid)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.repo.Delete(guid); err != nil {
		span.RecordError(err)
		return err
	}
	s.invalidate(ctx, guid)

	log.Info(log.CatDB, "Deleted document", "guid", guid)
	s.events.Publish(pubsub.DeletedEvent, doc)
	return nil
}

// List retrieves documents matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Document, error) {
	_, span := s.tracer.Start(ctx, "document.List")
	defer span.End()

	docs, err := s.repo.List(filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("document.count", len(docs)))
	return docs, nil
}

// InvalidateAll flushes the run-list cache, typically after an external
// process modified the library database.
func (s *Service) InvalidateAll(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Flush(ctx)
	}
}

func (s *Service) invalidate(ctx context.Context, guid string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, guid)
	}
}

// Events returns the broker carrying document change events.
func (s *Service) Events() *pubsub.Broker[*Document] {
	return s.events
}

// Close shuts down the event broker.
func (s *Service) Close() {
	s.events.Close()
}
