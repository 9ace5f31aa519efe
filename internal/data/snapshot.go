package data

import "sort"

const (
	// SnippetsCollection maps batch timestamps to lists of snippet Records
	// instead of holding a flat record list.
	SnippetsCollection = "snippets"
)

// Snapshot holds one in-memory copy of the site's data: named collections of
// Records plus derived values written by the cross-reference passes. All
// passes mutate the snapshot in place; a snapshot is built once per run.
type Snapshot struct {
	values map[string]any
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{values: make(map[string]any)}
}

// Set stores an arbitrary value under a name. Used for derived keys such as
// snippets_latest that are not record collections.
func (s *Snapshot) Set(name string, value any) {
	s.values[name] = value
}

// Value returns the raw stored value, or nil when absent.
func (s *Snapshot) Value(name string) any {
	return s.values[name]
}

// Has reports whether a name is present in the snapshot.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Collection returns the named record collection. Missing names and
// non-collection values yield nil.
func (s *Snapshot) Collection(name string) []Record {
	switch v := s.values[name].(type) {
	case []Record:
		return v
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			if rec, ok := AsRecord(item); ok {
				out = append(out, rec)
			}
		}
		return out
	default:
		return nil
	}
}

// SetCollection replaces the named record collection.
func (s *Snapshot) SetCollection(name string, records []Record) {
	s.values[name] = records
}

// Snippets returns the snippet batches keyed by timestamp, or nil when the
// snapshot has none.
func (s *Snapshot) Snippets() map[string][]Record {
	batches, _ := s.values[SnippetsCollection].(map[string][]Record)
	return batches
}

// SetSnippets replaces the snippet batches.
func (s *Snapshot) SetSnippets(batches map[string][]Record) {
	s.values[SnippetsCollection] = batches
}

// SnippetTimestamps returns the batch timestamps in chronological order.
// Timestamps sort lexically (date-prefixed batch names), so a plain string
// sort is the chronological order.
func (s *Snapshot) SnippetTimestamps() []string {
	batches := s.Snippets()
	out := make([]string, 0, len(batches))
	for timestamp := range batches {
		out = append(out, timestamp)
	}
	sort.Strings(out)
	return out
}

// Names returns the snapshot's stored names, sorted.
func (s *Snapshot) Names() []string {
	out := make([]string, 0, len(s.values))
	for name := range s.values {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
