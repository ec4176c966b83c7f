package autoinsert

import (
	"container/heap"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
)

// ActivityInput is one not-yet-inserted activity's search input, already
// reordered into its final position (§4.8 "Representation").
// IncompatibleItemIndexes refers only to other positions in Items: a
// candidate's conflicts with already-inserted activities were already
// removed by the insertion-cost kernel (§4.6), so Candidates only ever
// needs to be re-checked against beginnings chosen earlier in the same node.
type ActivityInput struct {
	ActivityID              domain.ActivityID
	DurationMinutes         int
	IncompatibleItemIndexes []int
	Candidates              []domain.InsertionCost
}

// Input is one auto-insertion run's full search space.
type Input struct {
	Items []ActivityInput
}

// Result is what a search run (or a cancelled one) produced.
type Result struct {
	// Beginnings holds one entry per Items position that was decided,
	// in minutes. Its length equals len(Items) iff Solved.
	Beginnings []int
	Solved     bool
	Cancelled  bool
}

// node is a partial or complete assignment: Beginnings[i] is the chosen
// beginning, in minutes, for Input.Items[i] (§4.8: "a node is a vector
// of beginnings of length m").
type node struct {
	cost       uint64
	beginnings []int
}

type frontier []node

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(node)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Search runs the best-first branch-and-bound search of §4.8.
// cancel, if non-nil, is polled between node expansions; a receive from it
// stops the search and returns the best partial node found so far.
func Search(input Input, cancel <-chan struct{}) Result {
	if len(input.Items) == 0 {
		return Result{Beginnings: []int{}, Solved: true}
	}

	fr := &frontier{{cost: 0, beginnings: []int{}}}
	heap.Init(fr)

	var bestPartial node
	havePartial := false

	for fr.Len() > 0 {
		if cancel != nil {
			select {
			case <-cancel:
				return Result{Beginnings: bestPartial.beginnings, Cancelled: true}
			default:
			}
		}

		current := heap.Pop(fr).(node)
		if len(current.beginnings) == len(input.Items) {
			return Result{Beginnings: current.beginnings, Solved: true}
		}
		if !havePartial || len(current.beginnings) > len(bestPartial.beginnings) {
			bestPartial = current
			havePartial = true
		}

		m := len(current.beginnings)
		item := input.Items[m]
		for _, candidate := range item.Candidates {
			beginning := candidate.Beginning.TotalMinutes()
			if conflictsWithNode(item, current.beginnings, input.Items, beginning) {
				continue
			}
			child := make([]int, m+1)
			copy(child, current.beginnings)
			child[m] = beginning
			heap.Push(fr, node{cost: current.cost + candidate.Cost, beginnings: child})
		}
	}

	return Result{Beginnings: bestPartial.beginnings, Solved: false}
}

// conflictsWithNode reports whether placing item at beginning would overlap
// any incompatible item already decided in beginnings (§4.8's overlap
// test, same rule as §4.6.1: half-open intervals, adjacency is not overlap).
func conflictsWithNode(item ActivityInput, beginnings []int, items []ActivityInput, beginning int) bool {
	end := beginning + item.DurationMinutes
	for _, k := range item.IncompatibleItemIndexes {
		if k >= len(beginnings) {
			continue
		}
		otherBegin := beginnings[k]
		otherEnd := otherBegin + items[k].DurationMinutes
		if beginning < otherEnd && otherBegin < end {
			return true
		}
	}
	return false
}
