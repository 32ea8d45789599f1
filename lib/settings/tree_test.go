package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestBuildTreeGroupsByPath(t *testing.T) {
	root := BuildTree([]Setting{
		{Name: "system/site/name", Value: "Catalogue", DataType: TypeString},
		{Name: "system/server/port", Value: "8080", DataType: TypeInt},
		{Name: "system/site/siteId", Value: "abc", DataType: TypeString},
		{Name: "ui/config", Value: "{}", DataType: TypeJSON},
	})

	assert.Equal(t, []string{"system", "ui"}, names(root.Children))
	system, ok := root.Child("system")
	require.True(t, ok)
	assert.Equal(t, []string{"server", "site"}, names(system.Children))

	leaf, ok := root.Find("system/site/siteId")
	require.True(t, ok)
	require.NotNil(t, leaf.Value)
	assert.Equal(t, "abc", *leaf.Value)
	assert.Equal(t, "system/site/siteId", leaf.Path)
	assert.Equal(t, TypeString, leaf.DataType)

	inner, ok := root.Find("system/site")
	require.True(t, ok)
	assert.Nil(t, inner.Value)
}

func TestBuildTreeSameSegmentUnderDifferentParents(t *testing.T) {
	root := BuildTree([]Setting{
		{Name: "a/name", Value: "1"},
		{Name: "b/name", Value: "2"},
	})

	a, ok := root.Find("a/name")
	require.True(t, ok)
	b, ok := root.Find("b/name")
	require.True(t, ok)
	assert.Equal(t, "1", *a.Value)
	assert.Equal(t, "2", *b.Value)
	assert.NotSame(t, a, b)
}

func TestBuildTreeNullLeaf(t *testing.T) {
	root := BuildTree([]Setting{{Name: "system/proxy/host", Null: true, DataType: TypeString}})
	leaf, ok := root.Find("system/proxy/host")
	require.True(t, ok)
	assert.Nil(t, leaf.Value)
}

func TestGetAllAsTree(t *testing.T) {
	s := openStore(t)
	root, err := s.GetAllAsTree()
	require.NoError(t, err)

	name, ok := root.Find(KeySiteName)
	require.True(t, ok)
	assert.Equal(t, "My GeoNetwork catalogue", *name.Value)
	_, ok = root.Find("system/nothing")
	assert.False(t, ok)
}

func TestDataTypeValidate(t *testing.T) {
	assert.NoError(t, TypeInt.Validate(""))
	assert.NoError(t, TypeInt.Validate(" 42 "))
	assert.NoError(t, TypeBoolean.Validate("false"))
	assert.NoError(t, TypeJSON.Validate(`{"a":[1,2]}`))
	assert.NoError(t, TypePassword.Validate("s3cret"))
	assert.ErrorIs(t, DataType("DATE").Validate("x"), ErrInvalidSettingValue)
}
