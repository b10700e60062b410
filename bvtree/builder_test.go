package bvtree

import (
	"testing"

	"go.viam.com/test"

	"github.com/geomworks/modtree/spatialmath"
)

func buildCache(triangles []*spatialmath.Triangle) []spatialmath.AABB {
	cache := make([]spatialmath.AABB, len(triangles))
	for i, tri := range triangles {
		cache[i] = spatialmath.NewAABBFromTriangle(tri)
	}
	return cache
}

func iota32(n int) []int32 {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	return ids
}

func TestBuildTree(t *testing.T) {
	t.Run("no ids yields empty tree", func(t *testing.T) {
		tree := buildTree(nil, []spatialmath.AABB{}, DefaultConfig())
		test.That(t, tree.Empty(), test.ShouldBeTrue)
		test.That(t, tree.NumNodes(), test.ShouldEqual, 0)
	})

	t.Run("few primitives make a single leaf", func(t *testing.T) {
		triangles := gridTriangles(3)
		tree := buildTree(iota32(3), buildCache(triangles), DefaultConfig())
		test.That(t, tree.NumNodes(), test.ShouldEqual, 1)
		test.That(t, tree.nodes[0].isLeaf(), test.ShouldBeTrue)
		test.That(t, tree.nodes[0].count, test.ShouldEqual, 3)
	})

	t.Run("many primitives make internal nodes", func(t *testing.T) {
		triangles := gridTriangles(50)
		tree := buildTree(iota32(50), buildCache(triangles), DefaultConfig())
		test.That(t, tree.NumNodes(), test.ShouldBeGreaterThan, 1)
		test.That(t, tree.nodes[0].isLeaf(), test.ShouldBeFalse)
	})

	t.Run("every id lands in exactly one leaf", func(t *testing.T) {
		triangles := gridTriangles(100)
		tree := buildTree(iota32(100), buildCache(triangles), DefaultConfig())
		live := sortedCopy(tree.LiveIDs(nil))
		test.That(t, live, test.ShouldResemble, iota32(100))
	})

	t.Run("leaves respect max leaf size", func(t *testing.T) {
		triangles := gridTriangles(100)
		cfg := Config{MaxLeafSize: 2, SplitQuality: 4}
		tree := buildTree(iota32(100), buildCache(triangles), cfg)
		for i := range tree.nodes {
			n := &tree.nodes[i]
			if n.isLeaf() {
				test.That(t, n.count, test.ShouldBeLessThanOrEqualTo, 2)
				test.That(t, n.count, test.ShouldBeGreaterThan, 0)
			}
		}
	})

	t.Run("node volumes contain their children", func(t *testing.T) {
		triangles := gridTriangles(64)
		tree := buildTree(iota32(64), buildCache(triangles), DefaultConfig())
		for i := range tree.nodes {
			n := &tree.nodes[i]
			if n.isLeaf() {
				continue
			}
			test.That(t, n.vol.Contains(tree.nodes[n.left].vol), test.ShouldBeTrue)
			test.That(t, n.vol.Contains(tree.nodes[n.right].vol), test.ShouldBeTrue)
		}
	})

	t.Run("external id order is honored", func(t *testing.T) {
		triangles := gridTriangles(20)
		cache := buildCache(triangles)
		ids := []int32{17, 3, 9, 12, 5, 1}
		tree := buildTree(ids, cache, DefaultConfig())
		live := sortedCopy(tree.LiveIDs(nil))
		test.That(t, live, test.ShouldResemble, []int32{1, 3, 5, 9, 12, 17})
	})

	t.Run("coincident centers still terminate", func(t *testing.T) {
		tri := gridTriangles(1)[0]
		triangles := []*spatialmath.Triangle{tri, tri, tri, tri, tri, tri, tri, tri}
		cfg := Config{MaxLeafSize: 2, SplitQuality: 4}
		tree := buildTree(iota32(8), buildCache(triangles), cfg)
		live := sortedCopy(tree.LiveIDs(nil))
		test.That(t, live, test.ShouldResemble, iota32(8))
	})

	t.Run("zero config is normalized", func(t *testing.T) {
		triangles := gridTriangles(30)
		tree := buildTree(iota32(30), buildCache(triangles), Config{})
		live := sortedCopy(tree.LiveIDs(nil))
		test.That(t, live, test.ShouldResemble, iota32(30))
	})

	t.Run("pure median splitting at quality zero", func(t *testing.T) {
		triangles := gridTriangles(32)
		cfg := Config{MaxLeafSize: 4, SplitQuality: 0}
		tree := buildTree(iota32(32), buildCache(triangles), cfg)
		live := sortedCopy(tree.LiveIDs(nil))
		test.That(t, live, test.ShouldResemble, iota32(32))
	})
}

func TestConfigValidate(t *testing.T) {
	test.That(t, DefaultConfig().Validate(), test.ShouldBeNil)
	test.That(t, Config{MaxLeafSize: 0, SplitQuality: 4}.Validate(), test.ShouldNotBeNil)
	test.That(t, Config{MaxLeafSize: 4, SplitQuality: -1}.Validate(), test.ShouldNotBeNil)
}
