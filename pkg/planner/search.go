// Package planner implements budget-bounded best-first searches over
// the simulators in pkg/sim. Every planner stores its search tree in
// flat state and transition arenas with parent back-pointers, so a plan
// is reconstructed by walking from a leaf to the root and reversing.
// Searches are deterministic for a fixed snapshot, budget and RNG seed.
package planner

import (
	"container/heap"
)

// searchNode ranks a state for expansion. Seq is a creation counter;
// equal scores pop newest first, which keeps tie-breaking explicit and
// reproducible.
type searchNode struct {
	score int
	seq   int
	state int
}

type searchHeap []searchNode

func (h searchHeap) Len() int { return len(h) }

func (h searchHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].seq > h[j].seq
}

func (h searchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *searchHeap) Push(x any) { *h = append(*h, x.(searchNode)) }

func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

type frontier struct {
	heap searchHeap
	seq  int
}

func (f *frontier) push(score, state int) {
	heap.Push(&f.heap, searchNode{score: score, seq: f.seq, state: state})
	f.seq++
}

func (f *frontier) pop() (searchNode, bool) {
	if len(f.heap) == 0 {
		return searchNode{}, false
	}
	return heap.Pop(&f.heap).(searchNode), true
}
