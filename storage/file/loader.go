package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/storage"
)

// Format identifies a corpus file encoding.
type Format int

const (
	// FormatJSON is a JSON array of records.
	FormatJSON Format = iota + 1
	// FormatParquet is a Parquet file with one row per record.
	FormatParquet
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Loader reads the corpus from a single file on every call.
type Loader struct {
	path   string
	format Format
	logger *slog.Logger
}

var _ storage.CorpusLoader = (*Loader)(nil)

// NewLoader creates a loader for path. The format is chosen by extension.
func NewLoader(path string, logger *slog.Logger) (*Loader, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, format: format, logger: logger}, nil
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// LoadCorpus reads, normalizes and validates every record in the file.
// A missing or unreadable file, or an invalid record, is reported as
// storage.ErrCorpusUnavailable.
func (l *Loader) LoadCorpus(ctx context.Context) ([]*core.Item, error) {
	items, err := l.ReadItems(ctx)
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		if err := core.ValidateItem(item); err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", storage.ErrCorpusUnavailable, l.path, i, err)
		}
	}

	l.logger.Debug("loaded corpus file", "path", l.path, "items", len(items))
	return items, nil
}

// ReadItems reads every record in the file without validating it.
// Import uses this so bad records are reported one by one instead of
// failing the whole file.
func (l *Loader) ReadItems(ctx context.Context) ([]*core.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records []record
		err     error
	)
	switch l.format {
	case FormatJSON:
		records, err = readJSON(l.path)
	case FormatParquet:
		records, err = readParquet(l.path)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", storage.ErrCorpusUnavailable, l.path, err)
	}

	items := make([]*core.Item, len(records))
	for i := range records {
		items[i] = records[i].toItem()
	}
	return items, nil
}

func readJSON(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []record
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	return records, nil
}

func readParquet(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[record](pf)
	defer reader.Close()

	records := make([]record, 0, pf.NumRows())
	rows := make([]record, 128)
	for {
		n, err := reader.Read(rows)
		records = append(records, rows[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return records, nil
}
