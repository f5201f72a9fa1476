package console

// BuildIndex maps a collection by primary key for O(1) join lookups. The
// result is never nil, and duplicate keys resolve last-write-wins so a
// malformed upstream payload cannot fail a page render.
func BuildIndex[K comparable, E any](items []E, keyOf func(E) K) map[K]E {
	index := make(map[K]E, len(items))
	for _, item := range items {
		index[keyOf(item)] = item
	}
	return index
}

// BuildIndexAny indexes a loosely typed payload. Backends occasionally hand
// back something other than a list; in that case the index degrades to empty
// instead of failing.
func BuildIndexAny[K comparable](value any, keyOf func(map[string]any) (K, bool)) map[K]map[string]any {
	index := map[K]map[string]any{}
	items, ok := value.([]any)
	if !ok {
		return index
	}
	for _, raw := range items {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if key, ok := keyOf(entry); ok {
			index[key] = entry
		}
	}
	return index
}

// IndexLookup resolves a key against an index, reporting whether the
// reference exists. Absent keys never panic; callers substitute placeholders.
func IndexLookup[K comparable, E any](index map[K]E, key K) (E, bool) {
	entity, ok := index[key]
	return entity, ok
}
