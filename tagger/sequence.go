package tagger

import "math"

// Sequence is one partial tag assignment tracked by the beam search.
type Sequence struct {
	Score    float64
	Outcomes []string
	Probs    []float64
}

func (seq *Sequence) ExpandFrom(src Sequence, out string, score float64) {
	seq.Outcomes = make([]string, len(src.Outcomes)+1)
	copy(seq.Outcomes, src.Outcomes)
	seq.Outcomes[len(seq.Outcomes)-1] = out

	seq.Probs = make([]float64, len(src.Probs)+1)
	copy(seq.Probs, src.Probs)
	seq.Probs[len(seq.Probs)-1] = score

	seq.Score = src.Score + math.Log(score)
}

// sequenceQueue is a max-heap of sequences by score.
type sequenceQueue []Sequence

func (q sequenceQueue) Len() int            { return len(q) }
func (q sequenceQueue) Less(i, j int) bool  { return q[i].Score > q[j].Score }
func (q sequenceQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *sequenceQueue) Push(x interface{}) { *q = append(*q, x.(Sequence)) }

func (q *sequenceQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
