package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/facultyfinder"
	"github.com/poiesic/facultyfinder/catalog"
	"github.com/poiesic/facultyfinder/core"
	"github.com/poiesic/facultyfinder/index"
	"github.com/poiesic/facultyfinder/ingestion"
	"github.com/poiesic/facultyfinder/storage"
)

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return errors.New("import takes exactly one input file")
	}
	cfg := configFrom(c)
	logger := loggerFrom(c)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	pipeline, err := ingestion.NewPipeline(repo,
		ingestion.WithPoolSize(c.Int("workers")),
		ingestion.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	var count int
	if c.Bool("clean") {
		records, err := ingestion.LoadCleanRecords(f)
		if err != nil {
			return err
		}
		if err := pipeline.IngestClean(ctx, records); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		count = len(records)
	} else {
		raws, err := ingestion.LoadRawProfiles(f)
		if err != nil {
			return err
		}
		records, err := pipeline.Ingest(ctx, raws)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		count = len(records)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d faculty records into %s\n", count, cfg.Storage.Path)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	cfg := configFrom(c)
	logger := loggerFrom(c)

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	finder, err := facultyfinder.Open(ctx, repo,
		facultyfinder.WithAIConfig(cfg.AIConfig()),
		facultyfinder.WithIndexOptions(index.WithConfig(cfg.IndexConfig())),
		facultyfinder.WithSearchConfig(cfg.SearchConfig()),
		facultyfinder.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer finder.Close()

	var monitor *explainMonitor
	if c.Bool("explain") {
		monitor = newExplainMonitor(c.App.ErrWriter)
	}
	res, err := finder.ResolveWithMonitor(ctx, query, monitor.orNoop())
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Bool("json") {
		return writeJSON(c, res.Records())
	}
	writeResolution(c.App.Writer, res)
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return errors.New("show takes exactly one record id")
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record id %q", c.Args().First())
	}

	repo, err := openRepository(configFrom(c), loggerFrom(c))
	if err != nil {
		return err
	}
	defer repo.Close()

	record, err := repo.GetFacultyRecord(ctx, core.ID(id))
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no faculty record with id %d", id)
	}
	if err != nil {
		return err
	}
	writeRecord(c.App.Writer, record)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	repo, err := openRepository(configFrom(c), loggerFrom(c))
	if err != nil {
		return err
	}
	defer repo.Close()

	var records []*core.FacultyRecord
	if keyword := c.String("specialization"); keyword != "" {
		records, err = repo.FindBySpecialization(ctx, keyword)
	} else {
		records, err = repo.ListFacultyRecords(ctx)
	}
	if err != nil {
		return err
	}
	if phrase := c.String("bio"); phrase != "" {
		if records, err = matchBio(records, phrase); err != nil {
			return err
		}
	}
	for _, r := range records {
		writeSummary(c.App.Writer, r)
	}
	return nil
}

// matchBio keeps the records whose biography contains phrase, case-insensitively.
func matchBio(records []*core.FacultyRecord, phrase string) ([]*core.FacultyRecord, error) {
	cat, err := catalog.New(records)
	if err != nil {
		return nil, err
	}
	var out []*core.FacultyRecord
	for _, pos := range cat.MatchBio(strings.ToLower(strings.TrimSpace(phrase))) {
		out = append(out, cat.At(pos))
	}
	return out, nil
}

func writeJSON(c *cli.Context, records []*core.FacultyRecord) error {
	if records == nil {
		records = []*core.FacultyRecord{}
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
