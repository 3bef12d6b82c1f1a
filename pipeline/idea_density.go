package pipeline

import (
	"encoding/json"

	"cognitionmetrics.com/idr/logger"
	"cognitionmetrics.com/idr/rater"
	"cognitionmetrics.com/idr/tagger"
	"cognitionmetrics.com/idr/tokenizer"
	"cognitionmetrics.com/idr/types"
)

type IdeaDensityParams struct {
	POSModelPath string `json:"pos_model_path"`
	RuleSetPath  string `json:"rule_set_path"`
}

// NewIdeaDensity builds the rating pipeline: sentence splitting, concurrent
// per-sentence tagging, then the single-threaded rule pass and counter.
// Construction fails fast if the model or rule-set file cannot be loaded.
func NewIdeaDensity(params IdeaDensityParams) (Pipeline, error) {
	pplnLogger := logger.NewLogger("idea-density pipeline")
	errLogger := pplnLogger.With().Caller().Logger()
	pplnLogger.Info().
		Interface("params", params).
		Msg("Starting idea density pipeline (see parameters in 'params' field)")

	rules := types.DefaultRuleSet()
	if params.RuleSetPath != "" {
		var err error
		rules, err = types.LoadRuleSet(params.RuleSetPath)
		if err != nil {
			errLogger.Err(err).
				Str("rule_set_path", params.RuleSetPath).
				Msg("Failed to load rule set")
			return nil, err
		}
	}

	posTagger, err := tagger.New(params.POSModelPath)
	if err != nil {
		errLogger.Err(err).
			Str("pos_model_path", params.POSModelPath).
			Msg("Failed to load POS model")
		return nil, err
	}

	idrRater := rater.New(posTagger, rules)
	splitter := newSentenceSplitter(tokenizer.New())
	tagStage := newSentenceTagger(posTagger)

	return func(request Request) <-chan string {
		responseChan := make(chan string)
		reqLog := pplnLogger.With().Str("tid", request.Tid).Logger()
		reqLog.Info().Msg("Started idea density pipeline")

		go func() {
			in := make(chan string)

			sentences := splitter(in)
			tagged := tagStage(sentences)

			in <- request.Text
			close(in)

			tokens := collectTagged(tagged)
			result := idrRater.RateTagged(tokens, request.SpeechMode)

			buf, err := json.Marshal(result)
			if err != nil {
				reqLog.Err(err).Msg("Failed to marshall response")
			}
			reqLog.Info().
				Int("word_count", result.WordCount).
				Int("proposition_count", result.PropositionCount).
				Msg("Finished idea density pipeline")
			responseChan <- string(buf)
		}()

		return responseChan
	}, nil
}
