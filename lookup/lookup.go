package lookup

import (
	"sort"

	"annotation-merger/descriptor"
	"annotation-merger/internal/common"
	"annotation-merger/mapping"
	"annotation-merger/merged"
)

// Hierarchy is the ordered set of aggregate levels of declared annotation
// occurrences for one annotated element. Level order is the order the
// external scanner supplied them in; it defines the aggregate index.
type Hierarchy struct {
	levels [][]descriptor.Occurrence
}

// NewHierarchy creates a hierarchy from aggregate levels in scanner order.
func NewHierarchy(levels ...[]descriptor.Occurrence) *Hierarchy {
	return &Hierarchy{levels: levels}
}

// Levels returns the aggregate levels in order.
func (h *Hierarchy) Levels() [][]descriptor.Occurrence {
	return h.levels
}

// Lookup answers annotation queries over one hierarchy, resolving mapping
// trees through a shared cache.
type Lookup struct {
	builder   *mapping.Builder
	cache     *mapping.Cache
	hierarchy *Hierarchy
}

// New creates a Lookup. The cache may be shared across lookups; a nil
// cache builds trees per query.
func New(builder *mapping.Builder, cache *mapping.Cache, hierarchy *Hierarchy) *Lookup {
	return &Lookup{builder: builder, cache: cache, hierarchy: hierarchy}
}

// candidate is one reachable node of the queried type.
type candidate struct {
	aggregate int
	position  int
	node      *mapping.Node
	source    descriptor.AttributeSource
}

// Present reports whether any declared occurrence's mapping tree contains a
// node of the given annotation type.
func (l *Lookup) Present(typeName string) (bool, error) {
	candidates, err := l.collect(typeName, true)
	if err != nil {
		return false, err
	}

	return !common.IsEmpty(candidates), nil
}

// Nearest returns a merged view for the node of the given type with the
// lowest depth; ties are broken by aggregate order, then by occurrence
// order within a level.
func (l *Lookup) Nearest(typeName string) (*merged.View, bool, error) {
	candidates, err := l.collect(typeName, false)
	if err != nil {
		return nil, false, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].node.Depth() != candidates[j].node.Depth() {
			return candidates[i].node.Depth() < candidates[j].node.Depth()
		}

		if candidates[i].aggregate != candidates[j].aggregate {
			return candidates[i].aggregate < candidates[j].aggregate
		}

		return candidates[i].position < candidates[j].position
	})

	best, ok := common.First(candidates)
	if !ok {
		return nil, false, nil
	}

	return merged.NewView(best.node, best.source), true, nil
}

// All returns merged views for every node of the given type, ordered first
// by aggregate index, then by depth.
func (l *Lookup) All(typeName string) ([]*merged.View, error) {
	candidates, err := l.collect(typeName, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].aggregate != candidates[j].aggregate {
			return candidates[i].aggregate < candidates[j].aggregate
		}

		if candidates[i].position != candidates[j].position {
			return candidates[i].position < candidates[j].position
		}

		return candidates[i].node.Depth() < candidates[j].node.Depth()
	})

	views := make([]*merged.View, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, merged.NewView(c.node, c.source))
	}

	return views, nil
}

// collect gathers every node of the queried type reachable from the
// declared hierarchy. With firstOnly set it stops at the first hit.
func (l *Lookup) collect(typeName string, firstOnly bool) ([]candidate, error) {
	var out []candidate

	for aggregate, level := range l.hierarchy.Levels() {
		for position, occ := range level {
			tree, err := l.resolveTree(occ.Type)
			if err != nil {
				return nil, err
			}

			// Tree nodes are in breadth-first order, so matches within one
			// occurrence arrive shallowest first.
			for _, node := range tree.Nodes() {
				if node.Type().Name() != typeName {
					continue
				}

				out = append(out, candidate{
					aggregate: aggregate,
					position:  position,
					node:      node,
					source:    occ.Source,
				})

				if firstOnly {
					return out, nil
				}
			}
		}
	}

	return out, nil
}

func (l *Lookup) resolveTree(rootType string) (*mapping.Tree, error) {
	if l.cache == nil {
		return l.builder.Build(rootType)
	}

	return l.cache.Resolve(l.builder, rootType)
}
