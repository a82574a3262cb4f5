package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annotation-merger/descriptor"
)

func routeMirrorSet(t *testing.T) *MirrorSet {
	t.Helper()

	tree, err := NewBuilder(stubResolver{"Route": routeType()}, stubSupplier{}, nil).Build("Route")
	require.NoError(t, err)

	sets := tree.Root().MirrorSets()
	require.Len(t, sets, 1)

	return sets[0]
}

func TestMirrorSetMembership(t *testing.T) {
	set := routeMirrorSet(t)

	assert.Equal(t, "Route", set.Type().Name())
	assert.Equal(t, []int{0, 1}, set.Members())
	assert.True(t, set.Contains(0))
	assert.True(t, set.Contains(1))
	assert.False(t, set.Contains(2))
}

func TestMirrorSetResolve(t *testing.T) {
	set := routeMirrorSet(t)

	cases := []struct {
		name string
		src  descriptor.MapSource
		want int
	}{
		{"nothing declared", nil, 0},
		{"value declared", descriptor.MapSource{"value": []any{"/a"}}, 0},
		{"path declared", descriptor.MapSource{"path": []any{"/a"}}, 1},
		{"both agree", descriptor.MapSource{"value": []any{"/a"}, "path": []any{"/a"}}, 0},
		{"default-valued member ignored", descriptor.MapSource{"value": []any{}, "path": []any{"/a"}}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := set.Resolve(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestMirrorSetResolveConflict(t *testing.T) {
	set := routeMirrorSet(t)

	_, err := set.Resolve(descriptor.MapSource{
		"value": []any{"/a"},
		"path":  []any{"/b"},
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	assert.Equal(t, "Route", conflict.Type)
	assert.Equal(t, "value", conflict.AttrA)
	assert.Equal(t, "path", conflict.AttrB)
	assert.Equal(t, []any{"/a"}, conflict.ValueA)
	assert.Equal(t, []any{"/b"}, conflict.ValueB)
	assert.Contains(t, conflict.Error(), "different values")
}
