package data

// JoinByKey merges an update collection into an existing one, matching
// records by the string value of the given key field. Matched records are
// merged field-by-field with the update side winning on conflicts; unmatched
// updates are appended in order. Existing records are mutated in place and
// the (possibly extended) collection is returned.
func JoinByKey(existing, updates []Record, key string) []Record {
	positions := make(map[string]int, len(existing))
	for i, record := range existing {
		if value := record.String(key); value != "" {
			positions[value] = i
		}
	}

	out := existing
	for _, update := range updates {
		value := update.String(key)
		if i, ok := positions[value]; ok && value != "" {
			mergeRecord(out[i], update)
			continue
		}
		out = append(out, update)
		if value != "" {
			positions[value] = len(out) - 1
		}
	}
	return out
}

// mergeRecord folds src into dst. Nested records merge recursively; every
// other field, lists included, is replaced by the src value.
func mergeRecord(dst, src Record) {
	for field, value := range src {
		srcRec, srcOK := AsRecord(value)
		dstRec, dstOK := AsRecord(dst[field])
		if srcOK && dstOK {
			mergeRecord(dstRec, srcRec)
			continue
		}
		dst[field] = value
	}
}
