package mapping

import (
	"sort"
	"strings"
)

// Filter excludes annotation types from participating in a mapping tree,
// e.g. marker or platform-only annotations irrelevant to merging. Filters
// partition the tree cache, so Key must identify the exclusion set.
type Filter interface {
	// Key identifies this filter for cache partitioning.
	Key() string
	// Excludes reports whether occurrences of the given type are skipped.
	Excludes(typeName string) bool
}

type typeFilter struct {
	key      string
	excluded map[string]struct{}
}

func (f *typeFilter) Key() string {
	return f.key
}

func (f *typeFilter) Excludes(typeName string) bool {
	_, ok := f.excluded[typeName]
	return ok
}

// ExcludeNone returns the filter that excludes nothing.
func ExcludeNone() Filter {
	return &typeFilter{key: "none"}
}

// ExcludeTypes returns a filter excluding exactly the named types.
// The key is order-independent.
func ExcludeTypes(names ...string) Filter {
	if len(names) == 0 {
		return ExcludeNone()
	}

	excluded := make(map[string]struct{}, len(names))
	for _, n := range names {
		excluded[n] = struct{}{}
	}

	sorted := make([]string, 0, len(excluded))
	for n := range excluded {
		sorted = append(sorted, n)
	}

	sort.Strings(sorted)

	return &typeFilter{
		key:      "exclude:" + strings.Join(sorted, ","),
		excluded: excluded,
	}
}
