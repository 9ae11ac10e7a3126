package forest

import (
	"math/rand"
	"sort"
)

type node struct {
	feature     int
	threshold   float64
	value       float64
	left, right *node
}

func (n *node) predict(v []float64) float64 {
	for n.left != nil {
		if v[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type builder struct {
	cols        [][]float64
	y           []float64
	maxFeatures int
	minLeaf     int
	maxDepth    int
	rng         *rand.Rand
	imp         []float64
}

type split struct {
	feature   int
	threshold float64
	gain      float64
}

// grow builds a CART subtree minimising squared error over samples idx
func (b *builder) grow(idx []int, depth int) *node {
	n := float64(len(idx))
	var sum, sumsq float64
	lo, hi := b.y[idx[0]], b.y[idx[0]]
	for _, i := range idx {
		v := b.y[i]
		sum += v
		sumsq += v * v
		if v < lo {
			lo = v
		} else if v > hi {
			hi = v
		}
	}
	leaf := &node{value: sum / n}
	if len(idx) < 2*b.minLeaf || lo == hi || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return leaf
	}

	sse := sumsq - sum*sum/n
	best := split{feature: -1}
	sorted := make([]int, len(idx))
	for _, f := range b.rng.Perm(len(b.cols))[:b.maxFeatures] {
		col := b.cols[f]
		copy(sorted, idx)
		sort.Slice(sorted, func(i, j int) bool { return col[sorted[i]] < col[sorted[j]] })
		var ls, lss float64
		for i := 0; i < len(sorted)-1; i++ {
			v := b.y[sorted[i]]
			ls += v
			lss += v * v
			nl := i + 1
			nr := len(sorted) - nl
			if nr < b.minLeaf {
				break
			}
			xv, xn := col[sorted[i]], col[sorted[i+1]]
			if nl < b.minLeaf || xv == xn {
				continue
			}
			rs, rss := sum-ls, sumsq-lss
			gain := sse - (lss - ls*ls/float64(nl)) - (rss - rs*rs/float64(nr))
			if gain > best.gain {
				t := xv/2 + xn/2
				if t == xn {
					t = xv
				}
				best = split{feature: f, threshold: t, gain: gain}
			}
		}
	}
	if best.feature < 0 {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if b.cols[best.feature][i] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}
	b.imp[best.feature] += best.gain
	return &node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      b.grow(left, depth+1),
		right:     b.grow(right, depth+1),
	}
}
