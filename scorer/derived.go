package scorer

import "github.com/nlplab-oss/ccgchart/supercat"

// SumLeafInitialScore sums LogPScore over every leaf reachable from node,
// used by training/diagnostics tooling.
func SumLeafInitialScore(node *supercat.SuperCategory) float64 {
	if node == nil {
		return 0
	}
	if node.IsLeaf() {
		return node.LogPScore
	}
	total := SumLeafInitialScore(node.Left)
	if node.Right != nil {
		total += SumLeafInitialScore(node.Right)
	}
	return total
}

// AverageSumDepNN returns the total LogDepNNScore of the subtree rooted at
// node divided by the number of nodes in that subtree. Nodes
// that were scored without a DepNN attached contribute zero to the sum but
// still count towards the node total.
func AverageSumDepNN(node *supercat.SuperCategory) float64 {
	if node == nil {
		return 0
	}
	sum, count := sumDepNN(node)
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func sumDepNN(node *supercat.SuperCategory) (sum float64, count int) {
	if node == nil {
		return 0, 0
	}
	sum = node.LogDepNNScore
	count = 1
	ls, lc := sumDepNN(node.Left)
	rs, rc := sumDepNN(node.Right)
	return sum + ls + rs, count + lc + rc
}
