package geometry

import (
	"gonum.org/v1/gonum/stat"
)

// BVHStats summarizes the shape of a built hierarchy
type BVHStats struct {
	Primitives    int
	TotalNodes    int
	LeafNodes     int
	MaxDepth      int
	AvgLeafDepth  float64
	LeafDepthStd  float64
	MaxLeafPrims  int
	AvgLeafPrims  float64
	SAHCost       float64 // expected node visits per ray, relative to the root box
	NodesCapacity int
}

// Stats walks the tree and collects statistics about it
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{
		Primitives:    len(b.PrimIdx),
		NodesCapacity: len(b.Nodes),
	}
	if len(b.PrimIdx) == 0 {
		return stats
	}

	var depths, leafSizes []float64
	rootArea := b.Nodes[0].Bounds().Area()
	b.collectStats(0, 0, rootArea, &stats, &depths, &leafSizes)

	stats.AvgLeafDepth, stats.LeafDepthStd = stat.MeanStdDev(depths, nil)
	stats.AvgLeafPrims = stat.Mean(leafSizes, nil)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (b *BVH) collectStats(nodeIdx, depth int, rootArea float64, stats *BVHStats, depths, leafSizes *[]float64) {
	node := &b.Nodes[nodeIdx]
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	relArea := 1.0
	if rootArea > 0 {
		relArea = node.Bounds().Area() / rootArea
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.SAHCost += relArea * float64(node.PrimCount)
		if node.PrimCount > stats.MaxLeafPrims {
			stats.MaxLeafPrims = node.PrimCount
		}
		*depths = append(*depths, float64(depth))
		*leafSizes = append(*leafSizes, float64(node.PrimCount))
		return
	}

	stats.SAHCost += relArea
	b.collectStats(node.LeftChild, depth+1, rootArea, stats, depths, leafSizes)
	b.collectStats(node.LeftChild+1, depth+1, rootArea, stats, depths, leafSizes)
}
