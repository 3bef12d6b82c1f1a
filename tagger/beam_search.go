package tagger

import (
	"container/heap"
	"sort"
)

const minSequenceScore = -100000

// NewBeamSearch returns a search over tag sequences that keeps the `size`
// best partial assignments at every position.
func NewBeamSearch(model Model, size int) func(tokens []string, contextGen ContextGenerator, sequenceValidator SequenceValidator) (Sequence, bool) {

	return func(tokens []string, contextGen ContextGenerator, sequenceValidator SequenceValidator) (Sequence, bool) {
		prev := make(sequenceQueue, 0, size)
		heap.Init(&prev)
		next := make(sequenceQueue, 0, size)
		heap.Init(&next)
		heap.Push(&prev, Sequence{})

		for i := 0; i < len(tokens); i++ {
			sz := len(prev)
			if size < sz {
				sz = size
			}

			for sc := 0; len(prev) > 0 && sc < sz; sc++ {
				top := heap.Pop(&prev).(Sequence)

				contexts := contextGen.GetContext(i, tokens, top.Outcomes)
				scores := model.Eval(contexts)

				tempScores := make([]float64, len(scores))
				copy(tempScores, scores)
				sort.Float64s(tempScores)

				idx := len(scores) - size
				if idx < 0 {
					idx = 0
				}
				min := tempScores[idx]

				for p := 0; p < len(scores); p++ {
					if scores[p] < min {
						continue
					}

					out := model.Outcomes[p]
					if sequenceValidator.ValidSequence(i, tokens, out) {
						var ns Sequence
						ns.ExpandFrom(top, out, scores[p])
						if ns.Score > minSequenceScore {
							heap.Push(&next, ns)
						}
					}
				}

				// if the beam cutoff left nothing, admit every valid outcome
				if len(next) == 0 {
					for p := 0; p < len(scores); p++ {
						out := model.Outcomes[p]
						if sequenceValidator.ValidSequence(i, tokens, out) {
							var ns Sequence
							ns.ExpandFrom(top, out, scores[p])
							if ns.Score > minSequenceScore {
								heap.Push(&next, ns)
							}
						}
					}
				}
			}

			prev = sequenceQueue{}
			heap.Init(&prev)
			prev, next = next, prev
		}

		var topSequence Sequence
		isOk := false

		if len(prev) > 0 {
			topSequence = heap.Pop(&prev).(Sequence)
			isOk = true
		}

		return topSequence, isOk
	}
}
