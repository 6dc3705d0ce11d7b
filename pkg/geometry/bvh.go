package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// leafMaxPrims is the node size at or below which subdivision stops
const leafMaxPrims = 2

// BVHNode is one entry of the flat node array. A node with PrimCount > 0
// is a leaf covering PrimIdx[FirstPrim:FirstPrim+PrimCount]; any other
// node has children at LeftChild and LeftChild+1.
type BVHNode struct {
	AABBMin, AABBMax core.Vec3
	LeftChild        int
	FirstPrim        int
	PrimCount        int
}

// IsLeaf reports whether the node stores primitives
func (n *BVHNode) IsLeaf() bool {
	return n.PrimCount > 0
}

// Bounds returns the node box
func (n *BVHNode) Bounds() core.AABB {
	return core.NewAABB(n.AABBMin, n.AABBMax)
}

// SplitPolicy selects how a node is divided
type SplitPolicy int

const (
	// SplitMidpoint halves the longest axis of the node box
	SplitMidpoint SplitPolicy = iota
	// SplitSAH picks the candidate with the lowest surface area cost
	SplitSAH
)

// ErrUnknownSplitPolicy is returned for an unrecognized policy name
var ErrUnknownSplitPolicy = errors.New("unknown split policy")

func (s SplitPolicy) String() string {
	switch s {
	case SplitMidpoint:
		return "midpoint"
	case SplitSAH:
		return "sah"
	}
	return fmt.Sprintf("SplitPolicy(%d)", int(s))
}

// ParseSplitPolicy converts "midpoint" or "sah" to a SplitPolicy
func ParseSplitPolicy(name string) (SplitPolicy, error) {
	switch strings.ToLower(name) {
	case "midpoint", "mid":
		return SplitMidpoint, nil
	case "sah":
		return SplitSAH, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSplitPolicy, name)
}

// BVH is a bounding volume hierarchy over a primitive slice it does not
// own. Nodes has a fixed capacity of 2N-1; index 0 is the root.
type BVH struct {
	Nodes     []BVHNode
	PrimIdx   []int
	NodesUsed int

	prims     []Primitive
	positions []core.Vec3
	bounds    []core.AABB
	policy    SplitPolicy
	logger    *zap.Logger
}

// BVHOption configures BuildBVH
type BVHOption func(*BVH)

// WithLogger makes the BVH report build statistics at debug level
func WithLogger(logger *zap.Logger) BVHOption {
	return func(b *BVH) {
		b.logger = logger
	}
}

// BuildBVH allocates the node array and permutation for prims and builds
// the hierarchy. The primitives are read again by Rebuild, so transforms
// may change between rebuilds.
func BuildBVH(prims []Primitive, policy SplitPolicy, opts ...BVHOption) *BVH {
	n := len(prims)
	b := &BVH{
		Nodes:     make([]BVHNode, max(1, 2*n-1)),
		PrimIdx:   make([]int, n),
		prims:     prims,
		positions: make([]core.Vec3, n),
		bounds:    make([]core.AABB, n),
		policy:    policy,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Rebuild()
	return b
}

// Policy returns the split policy used by the build
func (b *BVH) Policy() SplitPolicy {
	return b.policy
}

// Rebuild rebuilds the hierarchy in place over the same primitives
func (b *BVH) Rebuild() {
	start := time.Now()

	for i := range b.prims {
		b.PrimIdx[i] = i
		b.positions[i] = b.prims[i].Position()
		b.bounds[i] = b.prims[i].Bounds()
	}

	b.NodesUsed = 1
	root := &b.Nodes[0]
	*root = BVHNode{FirstPrim: 0, PrimCount: len(b.prims)}
	if len(b.prims) == 0 {
		empty := core.EmptyAABB()
		root.AABBMin, root.AABBMax = empty.Min, empty.Max
		return
	}

	b.updateNodeBounds(0)
	b.subdivide(0)

	b.logger.Debug("built bvh",
		zap.Stringer("policy", b.policy),
		zap.Int("primitives", len(b.prims)),
		zap.Int("nodes", b.NodesUsed),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (b *BVH) updateNodeBounds(nodeIdx int) {
	node := &b.Nodes[nodeIdx]
	box := core.EmptyAABB()
	for i := node.FirstPrim; i < node.FirstPrim+node.PrimCount; i++ {
		box = box.Union(b.bounds[b.PrimIdx[i]])
	}
	node.AABBMin, node.AABBMax = box.Min, box.Max
}

func (b *BVH) subdivide(nodeIdx int) {
	node := &b.Nodes[nodeIdx]
	if node.PrimCount <= leafMaxPrims {
		return
	}

	var axis int
	var splitPos float64
	var ok bool
	switch b.policy {
	case SplitSAH:
		axis, splitPos, ok = b.findSAHSplit(nodeIdx)
	default:
		axis, splitPos, ok = b.findMidpointSplit(nodeIdx)
	}
	if !ok {
		return
	}

	// Two-pointer partition of the permutation around splitPos
	i := node.FirstPrim
	j := i + node.PrimCount - 1
	for i <= j {
		if b.positions[b.PrimIdx[i]].Component(axis) < splitPos {
			i++
		} else {
			b.PrimIdx[i], b.PrimIdx[j] = b.PrimIdx[j], b.PrimIdx[i]
			j--
		}
	}

	leftCount := i - node.FirstPrim
	if leftCount == 0 || leftCount == node.PrimCount {
		return
	}

	left := b.NodesUsed
	b.NodesUsed += 2
	b.Nodes[left] = BVHNode{FirstPrim: node.FirstPrim, PrimCount: leftCount}
	b.Nodes[left+1] = BVHNode{FirstPrim: i, PrimCount: node.PrimCount - leftCount}
	node.LeftChild = left
	node.PrimCount = 0

	b.updateNodeBounds(left)
	b.updateNodeBounds(left + 1)
	b.subdivide(left)
	b.subdivide(left + 1)
}

func (b *BVH) findMidpointSplit(nodeIdx int) (int, float64, bool) {
	box := b.Nodes[nodeIdx].Bounds()
	axis := box.LongestAxis()
	lo, hi := box.Min.Component(axis), box.Max.Component(axis)
	if !(hi > lo) {
		return 0, 0, false
	}
	return axis, lo + (hi-lo)*0.5, true
}

func (b *BVH) findSAHSplit(nodeIdx int) (int, float64, bool) {
	node := &b.Nodes[nodeIdx]
	bestAxis, bestPos, bestCost := -1, 0.0, math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		for i := node.FirstPrim; i < node.FirstPrim+node.PrimCount; i++ {
			candidate := b.positions[b.PrimIdx[i]].Component(axis)
			cost := b.EvaluateSAH(nodeIdx, axis, candidate)
			if cost < bestCost {
				bestAxis, bestPos, bestCost = axis, candidate, cost
			}
		}
	}

	if bestAxis < 0 || bestCost >= b.LeafCost(nodeIdx) {
		return 0, 0, false
	}
	return bestAxis, bestPos, true
}

// EvaluateSAH returns the surface area cost of splitting a node at pos on
// axis. A split leaving one side empty costs +Inf.
func (b *BVH) EvaluateSAH(nodeIdx, axis int, pos float64) float64 {
	node := &b.Nodes[nodeIdx]
	leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
	leftCount, rightCount := 0, 0

	for i := node.FirstPrim; i < node.FirstPrim+node.PrimCount; i++ {
		idx := b.PrimIdx[i]
		if b.positions[idx].Component(axis) < pos {
			leftCount++
			leftBox = leftBox.Union(b.bounds[idx])
		} else {
			rightCount++
			rightBox = rightBox.Union(b.bounds[idx])
		}
	}

	if leftCount == 0 || rightCount == 0 {
		return math.Inf(1)
	}
	return float64(leftCount)*leftBox.Area() + float64(rightCount)*rightBox.Area()
}

// LeafCost is the cost of keeping a node as a single leaf
func (b *BVH) LeafCost(nodeIdx int) float64 {
	node := &b.Nodes[nodeIdx]
	return float64(node.PrimCount) * node.Bounds().Area()
}

// Bounds returns the box of the whole hierarchy
func (b *BVH) Bounds() core.AABB {
	return b.Nodes[0].Bounds()
}

type stackEntry struct {
	node int
	t    float64
}

// FindNearest records the closest hit over all primitives in ray
func (b *BVH) FindNearest(ray *core.Ray) {
	b.traverse(ray, false, core.NoHit)
}

// IsOccluded reports whether any primitive is hit closer than ray.T
func (b *BVH) IsOccluded(ray core.Ray) bool {
	return b.traverse(&ray, true, core.NoHit)
}

// IsOccludedExcept is IsOccluded ignoring the primitive whose object id
// is skip
func (b *BVH) IsOccludedExcept(ray core.Ray, skip int) bool {
	return b.traverse(&ray, true, skip)
}

// traverse walks the tree with an explicit stack, visiting the nearer
// child first. With anyHit set it stops at the first hit. Primitives
// with object id skip are never tested.
func (b *BVH) traverse(ray *core.Ray, anyHit bool, skip int) bool {
	if len(b.PrimIdx) == 0 {
		return false
	}
	limit := ray.T
	if b.Nodes[0].Bounds().IntersectRay(ray) == core.MaxDistance {
		return false
	}

	stack := make([]stackEntry, 0, 64)
	nodeIdx := 0
	for {
		node := &b.Nodes[nodeIdx]
		if node.IsLeaf() {
			for i := node.FirstPrim; i < node.FirstPrim+node.PrimCount; i++ {
				p := &b.prims[b.PrimIdx[i]]
				if p.ObjIdx == skip {
					continue
				}
				p.Intersect(ray)
				if anyHit && ray.T < limit {
					return true
				}
			}
		} else {
			near, far := node.LeftChild, node.LeftChild+1
			dNear := b.Nodes[near].Bounds().IntersectRay(ray)
			dFar := b.Nodes[far].Bounds().IntersectRay(ray)
			if dNear > dFar {
				near, far = far, near
				dNear, dFar = dFar, dNear
			}
			if dNear != core.MaxDistance {
				if dFar != core.MaxDistance {
					stack = append(stack, stackEntry{node: far, t: dFar})
				}
				nodeIdx = near
				continue
			}
		}

		// Pop the next subtree that can still hold a closer hit
		found := false
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.t < ray.T {
				nodeIdx = top.node
				found = true
				break
			}
		}
		if !found {
			return ray.T < limit
		}
	}
}
