package fusion

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
)

// foldString normalizes a string for case-insensitive comparison. A fresh
// caser per call because cases.Caser is stateful and not goroutine-safe.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// Cluster is a group of candidates judged equal under a tolerance rule.
// Weight is the sum of confidence × source weight over the members.
type Cluster struct {
	Members []Candidate
	Weight  float64
}

// Size returns the number of members.
func (c Cluster) Size() int {
	return len(c.Members)
}

// Representative returns the member with the highest source weight; among
// equal weights the earliest-seen member wins.
func (c Cluster) Representative(opts Options) Candidate {
	rep := c.Members[0]
	best := opts.weightOf(rep)
	for _, m := range c.Members[1:] {
		if w := opts.weightOf(m); w > best {
			rep, best = m, w
		}
	}
	return rep
}

// Partition groups candidates into equivalence classes under the tolerance
// rule from opts: numeric values cluster when their relative distance is
// within opts.Tolerance, strings when they match case-insensitively.
// Membership is the transitive closure of pairwise equality, so two members
// of one cluster may themselves differ by more than the tolerance. Clusters
// appear in first-seen member order.
func Partition(candidates []Candidate, opts Options) []Cluster {
	opts = opts.withDefaults()
	tolerance := opts.Tolerance
	n := len(candidates)
	if n == 0 {
		return nil
	}

	// Union-find over candidate indices.
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			if rj < ri {
				ri, rj = rj, ri
			}
			parent[rj] = ri
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if valuesEqual(candidates[i].Value, candidates[j].Value, tolerance) {
				union(i, j)
			}
		}
	}

	// Collect clusters in first-seen order.
	byRoot := make(map[int]int, n)
	var clusters []Cluster
	for i := 0; i < n; i++ {
		root := find(i)
		idx, ok := byRoot[root]
		if !ok {
			idx = len(clusters)
			byRoot[root] = idx
			clusters = append(clusters, Cluster{})
		}
		clusters[idx].Members = append(clusters[idx].Members, candidates[i])
		clusters[idx].Weight += candidates[i].Confidence * opts.weightOf(candidates[i])
	}

	return clusters
}

// valuesEqual reports whether two candidate values are equal enough to
// share a cluster. Numeric values use relative distance, strings fold case,
// everything else requires exact printed equality. A numeric value never
// equals a non-numeric one.
func valuesEqual(a, b any, tolerance float64) bool {
	na, aNum := numericValue(a)
	nb, bNum := numericValue(b)
	if aNum != bNum {
		return false
	}
	if aNum {
		return relativeDistance(na, nb) <= tolerance
	}

	sa, aStr := a.(string)
	sb, bStr := b.(string)
	if aStr && bStr {
		return foldString(sa) == foldString(sb)
	}
	if aStr != bStr {
		return false
	}

	return fmt.Sprint(a) == fmt.Sprint(b)
}

// relativeDistance computes |a-b| / max(|a|,|b|,1).
func relativeDistance(a, b float64) float64 {
	denom := math.Max(math.Max(math.Abs(a), math.Abs(b)), 1)
	return math.Abs(a-b) / denom
}
