package tree

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/ccpanel/pkg/models"
)

func item(base string, rel string, isDir bool) models.ConfigItem {
	return models.ConfigItem{
		Name:        filepath.Base(rel),
		Path:        filepath.Join(base, filepath.FromSlash(rel)),
		Kind:        models.KindCommand,
		IsDirectory: isDir,
	}
}

func TestBuildSynthesizesFolders(t *testing.T) {
	base := filepath.FromSlash("/cfg/commands")
	items := []models.ConfigItem{
		item(base, "frontend/deploy.md", false),
		item(base, "frontend/rollback.md", false),
		item(base, "release.md", false),
	}

	root := Build(items, base)
	require.Len(t, root.Children, 2)

	frontend := root.Children[0]
	assert.Equal(t, "frontend", frontend.Name)
	assert.True(t, frontend.IsDir)
	assert.Nil(t, frontend.Item, "synthesized folder has no item")
	require.Len(t, frontend.Children, 2)
	assert.Equal(t, "deploy.md", frontend.Children[0].Name)

	assert.Equal(t, "release.md", root.Children[1].Name)
}

func TestBuildDirectoryItemClaimsSynthesizedNode(t *testing.T) {
	base := filepath.FromSlash("/cfg/commands")
	items := []models.ConfigItem{
		item(base, "frontend/deploy.md", false),
		item(base, "frontend", true),
	}

	root := Build(items, base)
	require.Len(t, root.Children, 1)
	frontend := root.Children[0]
	assert.True(t, frontend.IsDir)
	require.NotNil(t, frontend.Item)
	assert.Equal(t, "frontend", frontend.Item.Name)
	require.Len(t, frontend.Children, 1)
}

func TestEveryNodeIsDescendantOfParent(t *testing.T) {
	base := filepath.FromSlash("/cfg/commands")
	items := []models.ConfigItem{
		item(base, "a/b/c.md", false),
		item(base, "a/d.md", false),
		item(base, "e.md", false),
	}

	Build(items, base).Walk(func(n *Node, depth int) {
		if n.Parent == nil {
			return
		}
		rel, err := filepath.Rel(n.Parent.Path, n.Path)
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(rel, ".."), "%s not under %s", n.Path, n.Parent.Path)
	})
}

func TestOutsideItemsAttachToRoot(t *testing.T) {
	base := filepath.FromSlash("/cfg/commands")
	items := []models.ConfigItem{
		item(filepath.FromSlash("/elsewhere"), "stray.md", false),
	}

	root := Build(items, base)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "stray.md", root.Children[0].Name)
	assert.Equal(t, root, root.Children[0].Parent)
}

func TestSortDirsFirstThenName(t *testing.T) {
	base := filepath.FromSlash("/cfg/commands")
	items := []models.ConfigItem{
		item(base, "zz.md", false),
		item(base, "aa.md", false),
		item(base, "sub/x.md", false),
	}

	root := Build(items, base)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "sub", root.Children[0].Name)
	assert.Equal(t, "aa.md", root.Children[1].Name)
	assert.Equal(t, "zz.md", root.Children[2].Name)
}

func TestWalkDepths(t *testing.T) {
	base := filepath.FromSlash("/cfg/commands")
	items := []models.ConfigItem{
		item(base, "a/b.md", false),
	}

	depths := map[string]int{}
	Build(items, base).Walk(func(n *Node, depth int) {
		depths[n.Name] = depth
	})
	assert.Equal(t, 0, depths["commands"])
	assert.Equal(t, 1, depths["a"])
	assert.Equal(t, 2, depths["b.md"])
}
