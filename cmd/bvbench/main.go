// Package main is a command that builds an incremental bounding-volume index
// over a triangle set and reports build, update, and query timings.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/geomworks/modtree/bvtree"
	"github.com/geomworks/modtree/spatialmath"
)

var logger = golog.NewDebugLogger("bvbench")

func main() {
	numTriangles := flag.Int("n", 10000, "number of grid triangles when no mesh file is given")
	plyPath := flag.String("ply", "", "PLY mesh to index instead of the synthetic grid")
	numUpdates := flag.Int("updates", 20, "number of incremental updates to run")
	touchShare := flag.Float64("touch", 0.01, "share of primitives touched per update")
	numQueries := flag.Int("queries", 1000, "number of nearest-neighbor queries per phase")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	triangles, err := loadTriangles(*plyPath, *numTriangles)
	if err != nil {
		logger.Errorw("cannot load mesh", "error", err)
		os.Exit(1)
	}
	logger.Infow("indexing", "triangles", len(triangles))

	rng := rand.New(rand.NewSource(*seed))
	idx := bvtree.NewIndex[spatialmath.AABB](logger)
	cfg := bvtree.DefaultConfig()

	start := time.Now()
	idx.Build(bvtree.TriangleAABBs(triangles), cfg)
	buildTime := time.Since(start)

	queryTime := runQueries(idx, triangles, rng, *numQueries)

	touchCount := int(float64(len(triangles)) * *touchShare)
	if touchCount < 1 {
		touchCount = 1
	}
	var updateTotal time.Duration
	for u := 0; u < *numUpdates; u++ {
		touched := make([]int32, 0, touchCount)
		inBatch := make(map[int32]bool, touchCount)
		for len(touched) < touchCount {
			id := int32(rng.Intn(len(triangles)))
			if inBatch[id] {
				continue
			}
			inBatch[id] = true
			touched = append(touched, id)
		}
		offset := r3.Vector{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5, Z: rng.Float64() - 0.5}
		for _, id := range touched {
			triangles[id] = triangles[id].Translate(offset)
		}

		start = time.Now()
		idx.RefreshVolumes(bvtree.TriangleAABBs(triangles), touched)
		idx.Update(bvtree.TriangleAABBs(triangles), touched,
			func(id int32) bool { return !inBatch[id] }, cfg)
		updateTotal += time.Since(start)
	}
	queryAfterTime := runQueries(idx, triangles, rng, *numQueries)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"phase", "total", "per op"})
	tw.AppendRows([]table.Row{
		{"build", buildTime, buildTime},
		{"queries (fresh)", queryTime, queryTime / time.Duration(*numQueries)},
		{"updates", updateTotal, updateTotal / time.Duration(*numUpdates)},
		{"queries (after updates)", queryAfterTime, queryAfterTime / time.Duration(*numQueries)},
	})
	tw.AppendFooter(table.Row{"delta ids", len(idx.DeltaIDs()), ""})
	tw.Render()
}

func loadTriangles(plyPath string, n int) ([]*spatialmath.Triangle, error) {
	if plyPath != "" {
		mesh, err := spatialmath.NewMeshFromPLYFile(plyPath)
		if err != nil {
			return nil, err
		}
		return mesh.Triangles(), nil
	}

	side := 1
	for side*side < n {
		side++
	}
	triangles := make([]*spatialmath.Triangle, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i % side)
		y := float64(i / side)
		triangles = append(triangles, spatialmath.NewTriangle(
			r3.Vector{X: x, Y: y, Z: 0},
			r3.Vector{X: x + 1, Y: y, Z: 0},
			r3.Vector{X: x, Y: y + 1, Z: 0},
		))
	}
	return triangles, nil
}

func runQueries(idx *bvtree.Index[spatialmath.AABB], triangles []*spatialmath.Triangle, rng *rand.Rand, n int) time.Duration {
	distTo := func(id int32, pt r3.Vector) float64 {
		return triangles[id].DistanceToPoint(pt)
	}
	box := spatialmath.NewMesh(triangles).AABB()
	span := box.Max.Sub(box.Min)

	start := time.Now()
	for i := 0; i < n; i++ {
		pt := r3.Vector{
			X: box.Min.X + rng.Float64()*span.X,
			Y: box.Min.Y + rng.Float64()*span.Y,
			Z: box.Min.Z + rng.Float64()*span.Z + 1,
		}
		bvtree.NearestNeighbor(idx, pt, distTo)
	}
	return time.Since(start)
}
