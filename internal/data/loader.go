package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSnapshot reads a site data directory into a snapshot.
//
// Layout conventions:
//   - a top-level *.yml file holds a whole collection (a YAML list of
//     records) named after the file
//   - a subdirectory holds one record per *.yml file; the record gains a
//     "name" field from the filename when it has none
//   - the snippets/ subdirectory is special: each file is one batch, keyed
//     by its timestamp filename
//
// Directory entries come back in sorted name order, so collection order is
// deterministic. Non-YAML files and dotfiles are ignored.
func LoadSnapshot(dir string) (*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %q: %w", dir, err)
	}

	snapshot := NewSnapshot()
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			if name == SnippetsCollection {
				batches, err := loadSnippetBatches(filepath.Join(dir, name))
				if err != nil {
					return nil, err
				}
				if len(batches) > 0 {
					snapshot.SetSnippets(batches)
				}
				continue
			}
			records, err := loadRecordDir(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			snapshot.SetCollection(name, records)
			continue
		}

		collection, ok := collectionName(name)
		if !ok {
			continue
		}
		records, err := loadCollectionFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		snapshot.SetCollection(collection, records)
	}
	return snapshot, nil
}

// loadCollectionFile reads one YAML file holding a list of records. A file
// holding a single mapping becomes a one-record collection.
func loadCollectionFile(path string) ([]Record, error) {
	var value any
	if err := unmarshalFile(path, &value); err != nil {
		return nil, err
	}

	switch v := Normalize(value).(type) {
	case nil:
		return nil, nil
	case []any:
		records := make([]Record, 0, len(v))
		for i, item := range v {
			rec, ok := AsRecord(item)
			if !ok {
				return nil, fmt.Errorf("%s: entry %d is not a record", path, i)
			}
			records = append(records, rec)
		}
		return records, nil
	case Record:
		return []Record{v}, nil
	default:
		return nil, fmt.Errorf("%s: expected a list of records, got %T", path, value)
	}
}

// loadRecordDir reads a directory holding one record per file.
func loadRecordDir(dir string) ([]Record, error) {
	paths, names, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(paths))
	for i, path := range paths {
		var value any
		if err := unmarshalFile(path, &value); err != nil {
			return nil, err
		}
		rec, ok := AsRecord(Normalize(value))
		if !ok {
			return nil, fmt.Errorf("%s: expected a single record, got %T", path, value)
		}
		if !rec.Has("name") {
			rec["name"] = names[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadSnippetBatches reads the snippets directory, one batch per file keyed
// by the timestamp filename.
func loadSnippetBatches(dir string) (map[string][]Record, error) {
	paths, names, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}

	batches := make(map[string][]Record, len(paths))
	for i, path := range paths {
		records, err := loadCollectionFile(path)
		if err != nil {
			return nil, err
		}
		batches[names[i]] = records
	}
	return batches, nil
}

func yamlFiles(dir string) (paths, names []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read data directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name, ok := collectionName(entry.Name())
		if !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
		names = append(names, name)
	}
	return paths, names, nil
}

func unmarshalFile(path string, out *any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// collectionName strips a recognized YAML extension, reporting whether the
// filename named a data file at all.
func collectionName(filename string) (string, bool) {
	for _, ext := range []string{".yml", ".yaml"} {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext), true
		}
	}
	return "", false
}
