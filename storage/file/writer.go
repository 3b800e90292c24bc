package file

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
	"github.com/poiesic/mangarec/core"
)

// WriteCorpus writes items to path in the format chosen by its extension.
// The file is replaced atomically via a temporary sibling.
func WriteCorpus(path string, items []*core.Item) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	records := make([]record, len(items))
	for i, item := range items {
		records[i] = fromItem(item)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		err = writeJSON(f, records)
	case FormatParquet:
		err = writeParquet(f, records)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return os.Rename(tmp, path)
}

func writeJSON(f *os.File, records []record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

func writeParquet(f *os.File, records []record) error {
	writer := parquet.NewGenericWriter[record](f)
	if _, err := writer.Write(records); err != nil {
		return err
	}
	return writer.Close()
}
