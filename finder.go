package facultyfinder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/facultyfinder/ai"
	"github.com/poiesic/facultyfinder/catalog"
	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/index"
	"github.com/poiesic/facultyfinder/search"
	"github.com/poiesic/facultyfinder/storage"
	"github.com/poiesic/facultyfinder/storage/badger"
	"github.com/poiesic/facultyfinder/storage/sqlite"
)

// ErrRepositoryRequired is returned when Open is given a nil repository.
var ErrRepositoryRequired = errors.New("faculty repository required")

// Finder answers faculty queries over a loaded catalog.
// The embedding index is built once, in Open, before any query can run.
type Finder struct {
	repository     storage.FacultyRepository
	ownsRepository bool
	provider       ai.AIProvider
	ownsProvider   bool
	catalog        *catalog.Catalog
	index          *index.EmbeddingIndex
	resolver       *search.Resolver
	logger         *slog.Logger
}

// Option configures a Finder.
type Option func(*finderOptions) error

type finderOptions struct {
	aiConfig     *ai.Config
	provider     ai.AIProvider
	indexOpts    []index.Option
	searchConfig *search.Config
	logger       *slog.Logger
}

// WithAIConfig sets the embedding provider configuration.
// Ignored when WithProvider is given.
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *finderOptions) error {
		if cfg == nil {
			return errors.New("ai config cannot be nil")
		}
		o.aiConfig = cfg
		return nil
	}
}

// WithProvider supplies an already-open embedding provider.
// The caller keeps ownership; Close does not close it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *finderOptions) error {
		if provider == nil {
			return errors.New("ai provider cannot be nil")
		}
		o.provider = provider
		return nil
	}
}

// WithIndexOptions passes options through to index.Build.
func WithIndexOptions(opts ...index.Option) Option {
	return func(o *finderOptions) error {
		o.indexOpts = append(o.indexOpts, opts...)
		return nil
	}
}

// WithSearchConfig sets the resolver tunables.
func WithSearchConfig(cfg *search.Config) Option {
	return func(o *finderOptions) error {
		o.searchConfig = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *finderOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// Open loads the catalog from repo, embeds every record and prepares the
// resolver. The caller keeps ownership of repo.
func Open(ctx context.Context, repo storage.FacultyRepository, opts ...Option) (*Finder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	options := &finderOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	logger := options.logger.With("component", "finder")

	records, err := repo.ListFacultyRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading faculty records: %w", err)
	}
	cat, err := catalog.New(records)
	if err != nil {
		return nil, err
	}

	f := &Finder{
		repository: repo,
		provider:   options.provider,
		catalog:    cat,
		logger:     logger,
	}
	if f.provider == nil {
		if f.provider, err = NewAIProvider(options.aiConfig); err != nil {
			return nil, fmt.Errorf("creating embedding provider: %w", err)
		}
		f.ownsProvider = true
	}

	indexOpts := append([]index.Option{index.WithLogger(options.logger)}, options.indexOpts...)
	f.index, err = index.Build(ctx, f.provider.Embedder(), cat.Texts(), indexOpts...)
	if err != nil {
		f.closeProvider()
		return nil, fmt.Errorf("building embedding index: %w", err)
	}

	searchOpts := []search.Option{search.WithLogger(options.logger)}
	if options.searchConfig != nil {
		searchOpts = append(searchOpts, search.WithConfig(options.searchConfig))
	}
	f.resolver, err = search.NewResolver(cat, f.index, searchOpts...)
	if err != nil {
		f.closeProvider()
		return nil, err
	}

	logger.Info("finder ready", "records", cat.Len(), "dimensions", f.index.Dimensions())
	return f, nil
}

// OpenBadger opens the badger catalog at path and then the Finder over it.
// Close closes the catalog.
func OpenBadger(ctx context.Context, path string, opts ...Option) (*Finder, error) {
	repo, err := badger.NewRepository(path, loggerFrom(opts))
	if err != nil {
		return nil, err
	}
	return openOwned(ctx, repo, opts)
}

// OpenSQLite opens the SQLite catalog at path and then the Finder over it.
// Close closes the catalog.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*Finder, error) {
	repo, err := sqlite.NewRepository(path, loggerFrom(opts))
	if err != nil {
		return nil, err
	}
	return openOwned(ctx, repo, opts)
}

func openOwned(ctx context.Context, repo storage.FacultyRepository, opts []Option) (*Finder, error) {
	f, err := Open(ctx, repo, opts...)
	if err != nil {
		repo.Close()
		return nil, err
	}
	f.ownsRepository = true
	return f, nil
}

// loggerFrom extracts the logger configured by opts, if any.
func loggerFrom(opts []Option) *slog.Logger {
	o := &finderOptions{}
	for _, opt := range opts {
		_ = opt(o)
	}
	return o.logger
}

// Resolve returns the records matching query.
func (f *Finder) Resolve(ctx context.Context, query string) ([]*core.FacultyRecord, error) {
	return f.resolver.Resolve(ctx, query)
}

// ResolveDetailed resolves query and reports the answering stage and scores.
func (f *Finder) ResolveDetailed(ctx context.Context, query string) (*search.Resolution, error) {
	return f.resolver.ResolveDetailed(ctx, query)
}

// ResolveWithMonitor resolves query, reporting each stage decision to monitor.
func (f *Finder) ResolveWithMonitor(ctx context.Context, query string, monitor search.SearchMonitor) (*search.Resolution, error) {
	return f.resolver.ResolveWithMonitor(ctx, query, monitor)
}

// Record returns the stored record with id, or storage.ErrNotFound.
func (f *Finder) Record(ctx context.Context, id core.ID) (*core.FacultyRecord, error) {
	return f.repository.GetFacultyRecord(ctx, id)
}

// Catalog returns the loaded catalog.
func (f *Finder) Catalog() *catalog.Catalog {
	return f.catalog
}

// Resolver returns the underlying resolver.
func (f *Finder) Resolver() *search.Resolver {
	return f.resolver
}

// Repository returns the catalog repository.
func (f *Finder) Repository() storage.FacultyRepository {
	return f.repository
}

// Close releases the provider and repository the Finder opened.
func (f *Finder) Close() error {
	var errs []error
	if err := f.closeProvider(); err != nil {
		f.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if f.ownsRepository {
		f.ownsRepository = false
		if err := f.repository.Close(); err != nil {
			f.logger.Error("error closing repository", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Finder) closeProvider() error {
	if !f.ownsProvider || f.provider == nil {
		return nil
	}
	f.ownsProvider = false
	return f.provider.Close()
}
