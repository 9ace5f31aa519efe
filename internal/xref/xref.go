// Package xref turns one-directional name references between record
// collections into two-directional object links, and flattens the resulting
// cyclic graphs back into serializable identifier lists.
package xref

import (
	"errors"
	"fmt"

	"github.com/mbland/team-hub/internal/data"
)

// ErrTargetNotFound is returned by the strict resolver when an identifier
// names no record in the target index.
var ErrTargetNotFound = errors.New("referenced entity not found")

// Index maps a key value to a single record. Duplicate keys are
// last-write-wins.
type Index map[string]data.Record

// GroupedIndex maps a key value to every record sharing it, in original
// relative order.
type GroupedIndex map[string][]data.Record

// UniqueIndex indexes a collection by the string value of a field. Records
// missing the field, or holding an empty value, are dropped silently.
func UniqueIndex(collection []data.Record, key string) Index {
	index := make(Index)
	for _, record := range collection {
		if value := record.String(key); value != "" {
			index[value] = record
		}
	}
	return index
}

// GroupIndex groups a collection by the string value of a field, preserving
// each group's records in original relative order. Records missing the field
// never produce an entry.
func GroupIndex(collection []data.Record, key string) GroupedIndex {
	index := make(GroupedIndex)
	for _, record := range collection {
		if value := record.String(key); value != "" {
			index[value] = append(index[value], record)
		}
	}
	return index
}

// CreateXrefs resolves the identifier list under sourceKey on every source
// record against the target index, in one pass per source. Each resolved
// identifier is replaced in place by the target record itself, and the
// source is appended to the target's reciprocal list under targetKey
// (created on demand). Unresolved identifiers vanish from the source's list
// without error; sources missing sourceKey entirely are skipped.
//
// Calling this twice over the same data double-links the reciprocal lists;
// it is a single-pass transform, not an idempotent one.
func CreateXrefs(sources []data.Record, sourceKey string, targets Index, targetKey string) {
	// The silent resolver cannot fail.
	_ = createXrefs(sources, sourceKey, targets, targetKey, false)
}

// CreateXrefsStrict is CreateXrefs with fail-fast resolution: the first
// identifier that names no target aborts with an error identifying it.
func CreateXrefsStrict(sources []data.Record, sourceKey string, targets Index, targetKey string) error {
	return createXrefs(sources, sourceKey, targets, targetKey, true)
}

func createXrefs(sources []data.Record, sourceKey string, targets Index, targetKey string, strict bool) error {
	for _, source := range sources {
		if !source.Has(sourceKey) {
			continue
		}
		items := source.List(sourceKey)
		resolved := make([]any, 0, len(items))
		for _, item := range items {
			name, ok := identifier(item)
			if !ok {
				continue
			}
			target, ok := targets[name]
			if !ok {
				if strict {
					return fmt.Errorf("%w: %q in %q of %q", ErrTargetNotFound, name, sourceKey, source.Name())
				}
				continue
			}
			target.Append(targetKey, source)
			resolved = append(resolved, target)
		}
		source[sourceKey] = resolved
	}
	return nil
}

// identifier extracts the lookup name from a reference-list element. An
// already-resolved record resolves by its name field, which is what makes
// re-running CreateXrefs produce duplicate reciprocal links rather than
// silently clearing the list.
func identifier(item any) (string, bool) {
	if s, ok := item.(string); ok {
		return s, s != ""
	}
	if rec, ok := data.AsRecord(item); ok {
		name := rec.Name()
		return name, name != ""
	}
	return "", false
}

// FlattenProperty returns a shallow-copied collection where every record's
// list of record references under property is replaced by each referenced
// record's key value. Records without the property are copied unchanged; the
// original records and their reference graph are untouched.
func FlattenProperty(collection []data.Record, property, key string) []data.Record {
	out := make([]data.Record, 0, len(collection))
	for _, record := range collection {
		copied := record.Clone()
		if copied.Has(property) {
			copied[property] = flattenRefs(copied.List(property), key)
		}
		out = append(out, copied)
	}
	return out
}

// FlattenPropertyInPlace applies the FlattenProperty transform by mutating
// each record's property field directly, severing the cyclic references.
func FlattenPropertyInPlace(collection []data.Record, property, key string) {
	for _, record := range collection {
		if record.Has(property) {
			record[property] = flattenRefs(record.List(property), key)
		}
	}
}

// PropertyMap maps each record's primaryKey value to the flattened key list
// of its property references. Records without the property are omitted,
// which makes the result a compact, cycle-free view of the link structure.
func PropertyMap(collection []data.Record, primaryKey, property, key string) map[string][]string {
	out := make(map[string][]string)
	for _, record := range collection {
		if !record.Has(property) {
			continue
		}
		flattened := flattenRefs(record.List(property), key)
		values := make([]string, 0, len(flattened))
		for _, item := range flattened {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		out[record.String(primaryKey)] = values
	}
	return out
}

// flattenRefs maps record references to their key values; elements that are
// already plain values pass through unchanged.
func flattenRefs(items []any, key string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if rec, ok := data.AsRecord(item); ok {
			out = append(out, rec[key])
			continue
		}
		out = append(out, item)
	}
	return out
}
