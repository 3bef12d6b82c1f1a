package rater

import (
	"fmt"

	"github.com/rs/zerolog"

	"cognitionmetrics.com/idr/logger"
	"cognitionmetrics.com/idr/types"
)

// Tagger supplies part-of-speech tagged tokens for a text.
type Tagger interface {
	TagText(text string) ([]types.TaggedToken, error)
}

// Rater computes the propositional idea density of a text: the number of
// expressed propositions divided by the number of words.
type Rater struct {
	tagger Tagger
	engine *Engine
	logger zerolog.Logger
}

func New(tagger Tagger, rules *types.RuleSet) *Rater {
	return &Rater{
		tagger: tagger,
		engine: NewEngine(rules),
		logger: logger.NewLogger("rater"),
	}
}

// Rate tags the text and counts its words and propositions. A tagger failure
// is returned as an error. A failure inside the counting rules is recovered
// and degrades to a zero Result with nil Words so one bad text cannot take
// down a batch.
func (r *Rater) Rate(text string, speechMode bool) (types.Result, error) {
	if text == "" {
		return types.Result{Words: []types.WordReport{}}, nil
	}

	tagged, err := r.tagger.TagText(text)
	if err != nil {
		return types.Result{}, fmt.Errorf("failed to tag text: %w", err)
	}

	return r.RateTagged(tagged, speechMode), nil
}

// RateTagged counts words and propositions over already-tagged tokens.
func (r *Rater) RateTagged(tagged []types.TaggedToken, speechMode bool) (result types.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Msgf("rule pass failed: %v", rec)
			result = types.Result{}
		}
	}()

	list := types.NewWordList(tagged)
	r.engine.Apply(list, speechMode)

	result.Words = list.Report()
	for _, word := range result.Words {
		if word.IsWord {
			result.WordCount++
		}
		if word.IsProposition {
			result.PropositionCount++
		}
	}
	if result.WordCount > 0 {
		result.Density = float64(result.PropositionCount) / float64(result.WordCount)
	}
	return result
}
