package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/mangarec"
	"github.com/poiesic/mangarec/config"
	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/ingestion"
	"github.com/poiesic/mangarec/recommend"
	"github.com/poiesic/mangarec/storage/file"
	"github.com/urfave/cli/v2"
)

// defaultCacheSize is used by --cache when the config leaves the cache disabled.
const defaultCacheSize = 4

func openDatabase(c *cli.Context, cfg *config.Config) (*mangarec.Database, error) {
	path := c.String("db")
	if path == "" {
		path = cfg.Storage.Path
	}
	var opts []mangarec.DatabaseOption
	if cfg.Storage.InMemory && !c.IsSet("db") {
		opts = append(opts, mangarec.WithInMemory())
	}
	db, err := mangarec.NewDatabase(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}

	loader, err := file.NewLoader(c.String("file"), slog.Default())
	if err != nil {
		return err
	}
	items, err := loader.ReadItems(ctx)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := cfg.IngestionOptions()
	if c.IsSet("batch-size") {
		opts = append(opts, ingestion.WithBatchSize(c.Int("batch-size")))
	}
	if n := c.Int("min-description"); n >= 0 {
		opts = append(opts, ingestion.WithMinDescriptionLength(n))
	}
	interval := cfg.Ingest.ProgressInterval
	if c.IsSet("report-interval") {
		interval = c.Int("report-interval")
	}
	if interval > 0 {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter, interval))
	}

	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(ctx, items)
	printReport(c, report)
	return err
}

func printReport(c *cli.Context, report *ingestion.Report) {
	if report == nil {
		return
	}
	w := c.App.Writer
	fmt.Fprintf(w, "Read:       %d\n", report.Received)
	fmt.Fprintf(w, "Stored:     %d\n", report.Stored)
	fmt.Fprintf(w, "Invalid:    %d\n", report.Invalid)
	fmt.Fprintf(w, "Duplicates: %d\n", report.Duplicates)
	if report.Failed > 0 {
		fmt.Fprintf(w, "Failed:     %d\n", report.Failed)
	}
	for _, r := range report.Rejected {
		slog.Debug("rejected item", "index", r.Index, "title", r.Title, "err", r.Err)
	}
}

func recommendCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}

	queries := c.Args().Slice()
	if len(queries) == 0 {
		return cli.Exit("at least one title is required", 2)
	}

	count := cfg.Recommend.DefaultCount
	if c.IsSet("count") {
		count = c.Int("count")
	}

	opts := cfg.RecommenderOptions()
	if c.Bool("cache") && cfg.Recommend.MatrixCacheSize == 0 {
		opts = append(opts, recommend.WithMatrixCache(defaultCacheSize))
	}

	path := c.String("file")
	if path == "" && !c.IsSet("db") {
		path = cfg.Storage.CorpusFile
	}

	var rec *recommend.Recommender
	if path != "" {
		loader, err := file.NewLoader(path, slog.Default())
		if err != nil {
			return err
		}
		rec, err = recommend.NewRecommender(loader, opts...)
		if err != nil {
			return err
		}
	} else {
		db, err := openDatabase(c, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		rec, err = db.NewRecommender(opts...)
		if err != nil {
			return err
		}
	}
	defer rec.Release()

	if len(queries) == 1 {
		results, err := rec.Recommend(ctx, queries[0], count)
		if err != nil {
			return recommendError(queries[0], err)
		}
		printRecommendations(c, queries[0], results)
		return nil
	}

	batch, err := rec.RecommendBatch(ctx, queries, count)
	if err != nil {
		return err
	}
	var failed error
	for _, result := range batch {
		if result.Err != nil {
			fmt.Fprintln(c.App.ErrWriter, recommendError(result.Query, result.Err))
			failed = cli.Exit("", 1)
			continue
		}
		printRecommendations(c, result.Query, result.Recommendations)
	}
	return failed
}

func recommendError(query string, err error) error {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		return cli.Exit(fmt.Sprintf("no manga found matching %q", query), 1)
	case errors.Is(err, recommend.ErrInvalidRequest):
		return cli.Exit(err.Error(), 2)
	case errors.Is(err, recommend.ErrEmptyVocabulary):
		return cli.Exit(fmt.Sprintf("catalog too small to compare titles: %v", err), 1)
	default:
		return err
	}
}

func printRecommendations(c *cli.Context, query string, results []*core.Recommendation) {
	w := c.App.Writer
	fmt.Fprintf(w, "Recommendations for %q:\n", query)
	if len(results) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, r := range results {
		tags := append(append([]string{}, r.Genres...), r.Themes...)
		fmt.Fprintf(w, "%3d. %s [%.4f] %s\n", i+1, r.Title, r.Score, strings.Join(tags, ", "))
	}
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.ItemRepository().LoadCorpus(ctx)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := file.WriteCorpus(out, items); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Exported %d items to %s\n", len(items), out)
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := appConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.ItemRepository().LoadCorpus(ctx)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Items:      %d\n", len(items))
	fmt.Fprintf(w, "Genres:     %d\n", countTags(items, func(i *core.Item) []string { return i.Genres }))
	fmt.Fprintf(w, "Themes:     %d\n", countTags(items, func(i *core.Item) []string { return i.Themes }))

	scoring := cfg.ScoringConfig()
	docs := recommend.ComposeCorpus(items, scoring.TagRepeat)
	matrix, err := recommend.Vectorize(docs, recommend.VectorizerConfig{
		MinDocumentFrequency: scoring.MinDocumentFrequency,
		MaxDocumentFrequency: scoring.MaxDocumentFrequency,
		MaxNGram:             scoring.MaxNGram,
	})
	switch {
	case errors.Is(err, recommend.ErrEmptyVocabulary):
		fmt.Fprintln(w, "Vocabulary: 0 (catalog too small)")
	case err != nil:
		return err
	default:
		fmt.Fprintf(w, "Vocabulary: %d\n", len(matrix.Vocabulary()))
	}

	top := topGenres(items, 5)
	if len(top) > 0 {
		fmt.Fprintf(w, "Top genres: %s\n", strings.Join(top, ", "))
	}
	return nil
}

func countTags(items []*core.Item, tags func(*core.Item) []string) int {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, t := range tags(item) {
			seen[t] = struct{}{}
		}
	}
	return len(seen)
}

func topGenres(items []*core.Item, n int) []string {
	counts := make(map[string]int)
	for _, item := range items {
		for _, g := range item.Genres {
			counts[g]++
		}
	}
	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > n {
		genres = genres[:n]
	}
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = fmt.Sprintf("%s (%d)", g, counts[g])
	}
	return out
}
