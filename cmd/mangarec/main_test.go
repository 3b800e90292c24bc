package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const catalogJSON = `[
    {"title": "Naruto", "description": "A ninja's journey to become Hokage.", "genres": ["Action", "Adventure"], "themes": ["Martial Arts"], "image_url": "https://example.com/naruto.jpg"},
    {"title": "One Piece", "description": "Pirate crew sails to find the One Piece.", "genres": ["Action", "Adventure"], "themes": []},
    {"title": "Bleach", "description": "Teen gains powers to fight evil spirits.", "genres": ["Action", "Supernatural"], "themes": []},
    {"title": "Attack on Titan", "description": "Humans fight for survival against Titans.", "genres": ["Action", "Drama"], "themes": ["Gore"]},
    {"title": "Death Note", "description": "A notebook grants power to kill.", "genres": ["Supernatural", "Thriller"], "themes": ["Psychological"]},
    {"title": "Tiny", "description": "Too short.", "genres": ["Comedy"], "themes": []}
]`

type runResult struct {
	stdout string
	stderr string
	code   int
	err    error
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := 0
	oldExiter, oldErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = &stderr
	defer func() {
		cli.OsExiter = oldExiter
		cli.ErrWriter = oldErrWriter
	}()

	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"mangarec", "--log-level", "error"}, args...))
	return runResult{stdout: stdout.String(), stderr: stderr.String(), code: code, err: err}
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manga_data.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))
	return path
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		assert.NoError(t, setupLogger(level), level)
	}
	assert.Error(t, setupLogger("verbose"))
}

func TestInvalidLogLevel(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run([]string{"mangarec", "--log-level", "loud", "stats", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestImportRecommendExportStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")
	catalog := writeCatalog(t)

	res := run(t, "import", "--db", dbPath, "--file", catalog)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Read:       6")
	assert.Contains(t, res.stdout, "Stored:     5")
	assert.Contains(t, res.stdout, "Invalid:    1")

	t.Run("recommend from database", func(t *testing.T) {
		res := run(t, "recommend", "--db", dbPath, "--count", "3", "Naruto")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, `Recommendations for "Naruto":`)
		assert.Contains(t, res.stdout, "  1. One Piece")
		assert.NotContains(t, res.stdout, "4. ")
	})

	t.Run("recommend several titles", func(t *testing.T) {
		res := run(t, "recommend", "--db", dbPath, "--cache", "-n", "2", "Naruto", "Bleach")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, `Recommendations for "Naruto":`)
		assert.Contains(t, res.stdout, `Recommendations for "Bleach":`)
	})

	t.Run("unknown title", func(t *testing.T) {
		res := run(t, "recommend", "--db", dbPath, "Non-existent Manga")
		require.Error(t, res.err)
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "no manga found matching")
	})

	t.Run("missing title", func(t *testing.T) {
		res := run(t, "recommend", "--db", dbPath)
		require.Error(t, res.err)
		assert.Equal(t, 2, res.code)
	})

	t.Run("export and recommend from file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "catalog.parquet")
		res := run(t, "export", "--db", dbPath, "--out", out)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Exported 5 items")

		res = run(t, "recommend", "--file", out, "--count", "1", "naruto")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "  1. One Piece")
	})

	t.Run("stats", func(t *testing.T) {
		res := run(t, "stats", "--db", dbPath)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Items:      5")
		assert.Contains(t, res.stdout, "Genres:     5")
		assert.Contains(t, res.stdout, "Top genres: Action (4), Adventure (2), Supernatural (2), Drama (1), Thriller (1)")
	})
}

func TestRecommendFromMissingFile(t *testing.T) {
	res := run(t, "recommend", "--file", filepath.Join(t.TempDir(), "missing.json"), "Naruto")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "corpus unavailable")
}

func TestStatsSmallCatalog(t *testing.T) {
	res := run(t, "stats", "--db", t.TempDir())
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Items:      0")
	assert.Contains(t, res.stdout, "Vocabulary: 0")
}

func TestRecommendFromConfiguredCorpusFile(t *testing.T) {
	catalog := writeCatalog(t)
	t.Setenv("MANGAREC_STORAGE_CORPUS_FILE", catalog)

	res := run(t, "recommend", "naruto")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "  1. One Piece")
	// Default count is 5 and the catalog has 5 other titles
	assert.Contains(t, res.stdout, "  5. ")
	assert.NotContains(t, res.stdout, "  6. ")
}

func TestRecommendDatabaseFlagOverridesCorpusFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db")
	res := run(t, "import", "--db", dbPath, "--file", writeCatalog(t))
	require.NoError(t, res.err)

	t.Setenv("MANGAREC_STORAGE_CORPUS_FILE", filepath.Join(t.TempDir(), "missing.json"))
	res = run(t, "recommend", "--db", dbPath, "--count", "1", "Naruto")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "  1. One Piece")
}
