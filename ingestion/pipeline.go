package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/storage"
)

// Pipeline cleans scraped profiles and loads them into a repository.
type Pipeline struct {
	repository storage.FacultyRepository
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent cleaning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.FacultyRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	pool, err := ants.NewPool(max(1, runtime.NumCPU()/2))
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	return p, nil
}

// Ingest cleans raws and replaces the repository's catalog with the result.
// Ids are assigned 1..n in input order. Nothing is written if any profile fails.
func (p *Pipeline) Ingest(ctx context.Context, raws []RawProfile) ([]*core.FacultyRecord, error) {
	p.logger.Info("cleaning raw profiles", "profiles", len(raws))

	records := make([]*core.FacultyRecord, len(raws))
	errs := make([]error, len(raws))
	var wg sync.WaitGroup

	for i := range raws {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		// each task writes only its own slot
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			records[i], errs[i] = CleanProfile(&raws[i], core.ID(i+1))
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting profile %d: %w", i+1, submitErr)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		p.logger.Error("profile cleaning failed", "err", err)
		return nil, err
	}

	if err := p.store(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// IngestClean validates already-cleaned records and replaces the catalog with them.
// Ids are kept as given.
func (p *Pipeline) IngestClean(ctx context.Context, records []*core.FacultyRecord) error {
	for i, record := range records {
		if err := core.ValidateFacultyRecord(record); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrInvalidRecord, i, err)
		}
	}
	return p.store(ctx, records)
}

func (p *Pipeline) store(ctx context.Context, records []*core.FacultyRecord) error {
	if err := p.repository.ReplaceFacultyRecords(ctx, records...); err != nil {
		p.logger.Error("error storing faculty records", "err", err)
		return err
	}
	p.logger.Info("faculty records stored", "records", len(records))
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
