package data

// Record is an open mapping from field name to value. All domain objects
// (team members, projects, working groups, locations, skill buckets,
// snippets) are Records; field sets vary per record and are extended at
// runtime by the cross-reference passes.
type Record map[string]any

// Has reports whether the field is present, regardless of its value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// String returns the field's string value, or "" when absent or non-string.
func (r Record) String(field string) string {
	value, _ := r[field].(string)
	return value
}

// Name returns the record's conventional identifier field.
func (r Record) Name() string {
	return r.String("name")
}

// List returns the field as a raw list, or nil when absent or non-list.
func (r Record) List(field string) []any {
	value, _ := r[field].([]any)
	return value
}

// Strings returns the string elements of a list-valued field, skipping
// elements that are not strings.
func (r Record) Strings(field string) []string {
	items := r.List(field)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Records returns the Record elements of a list-valued field, skipping
// elements that are not Records.
func (r Record) Records(field string) []Record {
	items := r.List(field)
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := AsRecord(item); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Append adds a value to a list-valued field, creating the list on demand.
func (r Record) Append(field string, value any) {
	list, _ := r[field].([]any)
	r[field] = append(list, value)
}

// Clone returns a shallow copy: field values are shared with the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// AsRecord converts a loosely-typed value into a Record. Plain
// map[string]any values (as produced by YAML decoding) are accepted
// alongside Record itself.
func AsRecord(value any) (Record, bool) {
	switch v := value.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	default:
		return nil, false
	}
}

// Normalize rewrites nested map[string]any values into Records so that the
// whole tree can be navigated with Record accessors. Lists are normalized
// elementwise; scalars pass through unchanged.
func Normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(Record, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case Record:
		for k, item := range v {
			v[k] = Normalize(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = Normalize(item)
		}
		return v
	default:
		return v
	}
}
