// Package output writes the cross-referenced, flattened site data to disk.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mbland/team-hub/internal/data"
	"github.com/mbland/team-hub/internal/fileutil"
)

// Writer emits one file per snapshot key into a fixed output directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Result counts what a write pass touched. Files whose bytes did not change
// are left alone and counted as reused.
type Result struct {
	Written []string
	Reused  []string
}

// WriteAll writes every entry of the serialized snapshot as <name>.<format>
// in the output directory, in sorted key order. JSON entries are indented
// documents; JSONL renders list-valued entries one record per line and falls
// back to a single-line document otherwise.
func (w *Writer) WriteAll(serialized map[string]any, format Format) (Result, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	names := make([]string, 0, len(serialized))
	for name := range serialized {
		names = append(names, name)
	}
	sort.Strings(names)

	var result Result
	for _, name := range names {
		data, err := encode(serialized[name], format)
		if err != nil {
			return result, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		path := filepath.Join(w.dir, fmt.Sprintf("%s.%s", name, format))
		changed, err := fileutil.WriteIfChangedTracked(path, data)
		if err != nil {
			return result, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if changed {
			result.Written = append(result.Written, path)
		} else {
			result.Reused = append(result.Reused, path)
		}
	}
	return result, nil
}

func encode(value any, format Format) ([]byte, error) {
	if format == FormatJSONL {
		switch v := value.(type) {
		case []data.Record:
			return fileutil.EncodeJSONL(v)
		case []any:
			return fileutil.EncodeJSONL(v)
		case []string:
			return fileutil.EncodeJSONL(v)
		default:
			return fileutil.EncodeJSONL([]any{value})
		}
	}

	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}
