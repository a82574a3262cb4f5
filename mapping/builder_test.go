package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annotation-merger/descriptor"
	"annotation-merger/internal/diagnostic"
)

type stubResolver map[string]*descriptor.Type

func (r stubResolver) ResolveType(name string) (*descriptor.Type, bool) {
	t, ok := r[name]
	return t, ok
}

type stubSupplier map[string][]descriptor.Occurrence

func (s stubSupplier) MetaAnnotations(name string) []descriptor.Occurrence {
	return s[name]
}

func routeType() *descriptor.Type {
	return descriptor.NewType("Route", false, []descriptor.Attribute{
		{Name: "value", Kind: descriptor.KindScalarArray, Default: []any{}, Alias: &descriptor.AliasRef{Attribute: "path"}},
		{Name: "path", Kind: descriptor.KindScalarArray, Default: []any{}, Alias: &descriptor.AliasRef{Attribute: "value"}},
		{Name: "method", Kind: descriptor.KindScalar, Default: "ANY"},
		{Name: "name", Kind: descriptor.KindScalar},
	})
}

func getType() *descriptor.Type {
	return descriptor.NewType("Get", false, []descriptor.Attribute{
		{Name: "path", Kind: descriptor.KindScalarArray, Default: []any{}, Alias: &descriptor.AliasRef{Type: "Route", Attribute: "path"}},
		{Name: "name", Kind: descriptor.KindScalar},
	})
}

// webFixture models a shortcut annotation Get whose path aliases the path
// of its meta-annotation Route; Route mirrors value and path.
func webFixture() (stubResolver, stubSupplier) {
	resolver := stubResolver{"Route": routeType(), "Get": getType()}
	supplier := stubSupplier{
		"Get": {{Type: "Route", Source: descriptor.MapSource{"method": "GET"}}},
	}

	return resolver, supplier
}

func diagCodes(t *testing.T, err error) []string {
	t.Helper()

	var cfg *ConfigError
	require.ErrorAs(t, err, &cfg)

	codes := make([]string, 0, len(cfg.Diags.Errors))
	for _, d := range cfg.Diags.Errors {
		codes = append(codes, d.Code)
	}

	return codes
}

func TestBuildWebFixture(t *testing.T) {
	resolver, supplier := webFixture()

	tree, err := NewBuilder(resolver, supplier, nil).Build("Get")
	require.NoError(t, err)

	require.Len(t, tree.Nodes(), 2)

	root := tree.Root()
	assert.Equal(t, "Get", root.Type().Name())
	assert.Equal(t, 0, root.Depth())
	assert.True(t, root.IsRoot())

	route, ok := tree.NodeOf("Route")
	require.True(t, ok)
	assert.Equal(t, 1, route.Depth())
	assert.Same(t, root, route.Parent())
	assert.True(t, tree.Contains("Route"))
	assert.False(t, tree.Contains("Post"))
}

func TestBuildRootAliasClaimsMirrorPair(t *testing.T) {
	resolver, supplier := webFixture()

	tree, err := NewBuilder(resolver, supplier, nil).Build("Get")
	require.NoError(t, err)

	route, ok := tree.NodeOf("Route")
	require.True(t, ok)

	// Get.path (index 0) claims Route.path and, through the mirror edge,
	// Route.value as well.
	assert.Equal(t, 0, route.RootMapping(1))
	assert.Equal(t, 0, route.RootMapping(0))
	assert.Equal(t, -1, route.RootMapping(2))
	assert.Equal(t, -1, route.RootMapping(3))

	sets := route.MirrorSets()
	require.Len(t, sets, 1)
	assert.Equal(t, []int{0, 1}, sets[0].Members())
}

func TestBuildResolvedAliasEdges(t *testing.T) {
	resolver, supplier := webFixture()

	tree, err := NewBuilder(resolver, supplier, nil).Build("Get")
	require.NoError(t, err)

	target, idx, ok := tree.Root().Alias(0)
	require.True(t, ok)
	assert.Equal(t, "Route", target)
	assert.Equal(t, 1, idx)

	route, _ := tree.NodeOf("Route")

	// The mirror pair resolves to reciprocal same-type edges.
	target, idx, ok = route.Alias(0)
	require.True(t, ok)
	assert.Equal(t, "Route", target)
	assert.Equal(t, 1, idx)

	target, idx, ok = route.Alias(1)
	require.True(t, ok)
	assert.Equal(t, "Route", target)
	assert.Equal(t, 0, idx)

	_, _, ok = route.Alias(2)
	assert.False(t, ok)

	_, _, ok = route.Alias(99)
	assert.False(t, ok)
}

func TestBuildConventionMapping(t *testing.T) {
	resolver, supplier := webFixture()

	tree, err := NewBuilder(resolver, supplier, nil).Build("Get")
	require.NoError(t, err)

	route, _ := tree.NodeOf("Route")

	// Route.name maps to Get.name by same-name convention; method has no
	// counterpart on the root.
	assert.Equal(t, 1, route.ConventionMapping(3))
	assert.Equal(t, -1, route.ConventionMapping(2))

	// Aliased attributes never fall back to the convention.
	assert.Equal(t, -1, route.ConventionMapping(1))

	assert.Equal(t, -1, tree.Root().ConventionMapping(1))
}

func TestBuildReservedValueNameSkipsConvention(t *testing.T) {
	root := descriptor.NewType("R", false, []descriptor.Attribute{
		{Name: "value", Kind: descriptor.KindScalar},
	})
	meta := descriptor.NewType("M", false, []descriptor.Attribute{
		{Name: "value", Kind: descriptor.KindScalar},
	})

	resolver := stubResolver{"R": root, "M": meta}
	supplier := stubSupplier{"R": {{Type: "M"}}}

	tree, err := NewBuilder(resolver, supplier, nil).Build("R")
	require.NoError(t, err)

	m, ok := tree.NodeOf("M")
	require.True(t, ok)
	assert.Equal(t, -1, m.ConventionMapping(0))
}

func TestBuildRecursiveMetaPruned(t *testing.T) {
	a := descriptor.NewType("A", false, nil)
	b := descriptor.NewType("B", false, nil)

	resolver := stubResolver{"A": a, "B": b}
	supplier := stubSupplier{
		"A": {{Type: "B"}},
		"B": {{Type: "A"}},
	}

	tree, err := NewBuilder(resolver, supplier, nil).Build("A")
	require.NoError(t, err)

	require.Len(t, tree.Nodes(), 2)
	assert.Equal(t, "A", tree.Nodes()[0].Type().Name())
	assert.Equal(t, "B", tree.Nodes()[1].Type().Name())
}

func TestBuildFilterExcludesType(t *testing.T) {
	resolver, supplier := webFixture()

	tree, err := NewBuilder(resolver, supplier, ExcludeTypes("Route")).Build("Get")
	require.NoError(t, err)

	assert.Len(t, tree.Nodes(), 1)
	assert.False(t, tree.Contains("Route"))
	assert.Equal(t, "exclude:Route", tree.FilterKey())
}

func TestBuildRootTypeUnknown(t *testing.T) {
	resolver, supplier := webFixture()

	_, err := NewBuilder(resolver, supplier, nil).Build("Delete")
	assert.Contains(t, diagCodes(t, err), "root_type_unknown")
}

func TestBuildMetaTypeUnknown(t *testing.T) {
	root := descriptor.NewType("R", false, nil)

	resolver := stubResolver{"R": root}
	supplier := stubSupplier{"R": {{Type: "Ghost"}}}

	_, err := NewBuilder(resolver, supplier, nil).Build("R")
	assert.Contains(t, diagCodes(t, err), "meta_type_unknown")
}

func TestBuildContainerExpansion(t *testing.T) {
	cached := descriptor.NewType("Cached", true, []descriptor.Attribute{
		{Name: "region", Kind: descriptor.KindScalar, Default: "default"},
		{Name: "ttl", Kind: descriptor.KindScalar, Default: 60},
	})
	group := descriptor.NewType("CachedGroup", false, []descriptor.Attribute{
		{Name: "value", Kind: descriptor.KindAnnotationArray, Elem: "Cached", Default: []any{}},
	})
	archived := descriptor.NewType("Archived", false, []descriptor.Attribute{
		{Name: "region", Kind: descriptor.KindScalar},
	})

	resolver := stubResolver{"Cached": cached, "CachedGroup": group, "Archived": archived}
	supplier := stubSupplier{
		"Archived": {{Type: "CachedGroup", Source: descriptor.MapSource{
			"value": []any{
				map[string]any{"region": "orders", "ttl": 300},
				map[string]any{"region": "audit"},
			},
		}}},
	}

	tree, err := NewBuilder(resolver, supplier, nil).Build("Archived")
	require.NoError(t, err)

	// The container itself never becomes a node; its elements do.
	require.Len(t, tree.Nodes(), 3)
	assert.False(t, tree.Contains("CachedGroup"))

	first := tree.Nodes()[1]
	second := tree.Nodes()[2]

	assert.Equal(t, "Cached", first.Type().Name())
	assert.Equal(t, "Cached", second.Type().Name())
	assert.Equal(t, 1, first.Depth())
	assert.Equal(t, 1, second.Depth())

	v, ok := first.Source().Get("region")
	require.True(t, ok)
	assert.Equal(t, "orders", v)

	_, ok = second.Source().Get("ttl")
	assert.False(t, ok)

	// Both element nodes map region onto the root by convention.
	assert.Equal(t, 0, first.ConventionMapping(0))
	assert.Equal(t, 0, second.ConventionMapping(0))
}

func TestBuildContainerValueShapeWarning(t *testing.T) {
	cached := descriptor.NewType("Cached", true, []descriptor.Attribute{
		{Name: "region", Kind: descriptor.KindScalar, Default: "default"},
	})
	group := descriptor.NewType("CachedGroup", false, []descriptor.Attribute{
		{Name: "value", Kind: descriptor.KindAnnotationArray, Elem: "Cached", Default: []any{}},
	})
	root := descriptor.NewType("R", false, nil)

	resolver := stubResolver{"Cached": cached, "CachedGroup": group, "R": root}
	supplier := stubSupplier{
		"R": {{Type: "CachedGroup", Source: descriptor.MapSource{"value": "oops"}}},
	}

	tree, err := NewBuilder(resolver, supplier, nil).Build("R")
	require.NoError(t, err)
	assert.Len(t, tree.Nodes(), 1)
}

func TestBuildAliasDiagnostics(t *testing.T) {
	cases := []struct {
		name  string
		alias *descriptor.AliasRef
		code  string
	}{
		{"target type unknown", &descriptor.AliasRef{Type: "Ghost", Attribute: "x"}, "alias_target_type_unknown"},
		{"target attribute missing", &descriptor.AliasRef{Type: "Route", Attribute: "verb"}, "alias_target_missing"},
		{"self alias", &descriptor.AliasRef{Attribute: "a"}, "alias_self"},
		{"kind mismatch", &descriptor.AliasRef{Type: "Route", Attribute: "method"}, "alias_kind_mismatch"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root := descriptor.NewType("X", false, []descriptor.Attribute{
				{Name: "a", Kind: descriptor.KindScalarArray, Default: []any{}, Alias: c.alias},
			})

			resolver := stubResolver{"X": root, "Route": routeType()}
			supplier := stubSupplier{"X": {{Type: "Route"}}}

			_, err := NewBuilder(resolver, supplier, nil).Build("X")
			assert.Contains(t, diagCodes(t, err), c.code)
		})
	}
}

func TestBuildAliasNotMetaPresent(t *testing.T) {
	root := descriptor.NewType("X", false, []descriptor.Attribute{
		{Name: "a", Kind: descriptor.KindScalarArray, Default: []any{}, Alias: &descriptor.AliasRef{Type: "Route", Attribute: "path"}},
	})

	resolver := stubResolver{"X": root, "Route": routeType()}

	// Route resolves but is never declared on X, so the alias dangles.
	_, err := NewBuilder(resolver, stubSupplier{}, nil).Build("X")
	assert.Contains(t, diagCodes(t, err), "alias_not_meta_present")
}

func TestBuildAliasCycleAcrossTypes(t *testing.T) {
	root := descriptor.NewType("R", false, nil)
	a := descriptor.NewType("A", false, []descriptor.Attribute{
		{Name: "x", Kind: descriptor.KindScalar, Alias: &descriptor.AliasRef{Type: "B", Attribute: "y"}},
	})
	b := descriptor.NewType("B", false, []descriptor.Attribute{
		{Name: "y", Kind: descriptor.KindScalar, Alias: &descriptor.AliasRef{Type: "A", Attribute: "x"}},
	})

	resolver := stubResolver{"R": root, "A": a, "B": b}
	supplier := stubSupplier{"R": {{Type: "A"}, {Type: "B"}}}

	_, err := NewBuilder(resolver, supplier, nil).Build("R")
	assert.Contains(t, diagCodes(t, err), "alias_cycle")
}

func TestBuildAliasAmbiguous(t *testing.T) {
	root := descriptor.NewType("R", false, []descriptor.Attribute{
		{Name: "a", Kind: descriptor.KindScalar, Alias: &descriptor.AliasRef{Type: "M", Attribute: "x"}},
		{Name: "b", Kind: descriptor.KindScalar, Alias: &descriptor.AliasRef{Type: "M", Attribute: "x"}},
	})
	meta := descriptor.NewType("M", false, []descriptor.Attribute{
		{Name: "x", Kind: descriptor.KindScalar},
	})

	resolver := stubResolver{"R": root, "M": meta}
	supplier := stubSupplier{"R": {{Type: "M"}}}

	_, err := NewBuilder(resolver, supplier, nil).Build("R")
	assert.Contains(t, diagCodes(t, err), "alias_ambiguous")
}

func TestBuildMirrorDefaults(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		root := descriptor.NewType("R", false, []descriptor.Attribute{
			{Name: "value", Kind: descriptor.KindScalar, Alias: &descriptor.AliasRef{Attribute: "path"}},
			{Name: "path", Kind: descriptor.KindScalar, Alias: &descriptor.AliasRef{Attribute: "value"}},
		})

		_, err := NewBuilder(stubResolver{"R": root}, stubSupplier{}, nil).Build("R")
		assert.Contains(t, diagCodes(t, err), "mirror_default_missing")
	})

	t.Run("mismatch", func(t *testing.T) {
		root := descriptor.NewType("R", false, []descriptor.Attribute{
			{Name: "value", Kind: descriptor.KindScalar, Default: "a", Alias: &descriptor.AliasRef{Attribute: "path"}},
			{Name: "path", Kind: descriptor.KindScalar, Default: "b", Alias: &descriptor.AliasRef{Attribute: "value"}},
		})

		_, err := NewBuilder(stubResolver{"R": root}, stubSupplier{}, nil).Build("R")
		assert.Contains(t, diagCodes(t, err), "mirror_default_mismatch")
	})

	t.Run("agreeing", func(t *testing.T) {
		tree, err := NewBuilder(stubResolver{"Route": routeType()}, stubSupplier{}, nil).Build("Route")
		require.NoError(t, err)
		require.Len(t, tree.Root().MirrorSets(), 1)
	})
}

func TestConfigErrorRendering(t *testing.T) {
	var diags diagnostic.Diagnostics
	diags.AddError("alias_self", "attribute \"a\" must not alias itself", "X", "a")

	err := &ConfigError{Root: "X", Diags: diags}
	assert.Contains(t, err.Error(), "invalid annotation configuration")
	assert.Contains(t, err.Error(), "alias_self")
}
