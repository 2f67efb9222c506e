package merge

// Discipline selects how an update is applied to an existing document.
type Discipline string

const (
	// Override discards the existing value entirely and takes the update as-is.
	Override Discipline = "override"
	// InPlace deep-merges the update into the existing value. Nested mappings
	// recurse; scalars and sequences are replaced wholesale by the update.
	InPlace Discipline = "in_place"
)

// IsValid reports whether d is a known discipline.
func (d Discipline) IsValid() bool {
	return d == Override || d == InPlace
}

// Apply computes the result of applying update to existing under the given
// discipline. Neither input is mutated; the result shares no mutable state
// with either argument.
func Apply(existing, update map[string]any, d Discipline) map[string]any {
	if d == Override {
		return cloneMap(update)
	}
	return deepMerge(existing, update)
}

// deepMerge returns a new mapping where every key of update wins at the leaf
// level. For keys whose update value is itself a mapping, the merge recurses
// into the existing value if that value is a mapping, and into an empty
// mapping otherwise. Keys present only in existing are carried over unchanged.
// An explicit nil in update collapses that branch to nil rather than deleting
// the key.
func deepMerge(existing, update map[string]any) map[string]any {
	result := cloneMap(existing)
	if result == nil {
		result = make(map[string]any, len(update))
	}

	for k, v := range update {
		if nested, ok := v.(map[string]any); ok {
			base, _ := result[k].(map[string]any)
			result[k] = deepMerge(base, nested)
			continue
		}
		result[k] = cloneValue(v)
	}

	return result
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
