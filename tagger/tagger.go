package tagger

import (
	"github.com/rs/zerolog"

	"cognitionmetrics.com/idr/logger"
	"cognitionmetrics.com/idr/tokenizer"
	"cognitionmetrics.com/idr/types"
)

const beamSize = 3

// MaxentTagger tags text with Penn Treebank part-of-speech tags using a
// maximum-entropy model and beam search. It is safe for concurrent use: the
// model is read-only after New and every call gets its own search state.
type MaxentTagger struct {
	tokenizer *tokenizer.Tokenizer
	search    func(tokens []string, contextGen ContextGenerator, sequenceValidator SequenceValidator) (Sequence, bool)
	contexts  ContextGenerator
	validator SequenceValidator
	logger    zerolog.Logger
}

// New loads the model file and builds a ready-to-use tagger.
func New(modelPath string) (*MaxentTagger, error) {
	model, err := LoadModelFromFile(modelPath)
	if err != nil {
		return nil, err
	}

	return &MaxentTagger{
		tokenizer: tokenizer.New(),
		search:    NewBeamSearch(model, beamSize),
		contexts:  NewContextGenerator(),
		validator: NewSequenceValidator(),
		logger:    logger.NewLogger("pos-tagger"),
	}, nil
}

// TagText tokenizes the text and tags it sentence by sentence.
func (t *MaxentTagger) TagText(text string) ([]types.TaggedToken, error) {
	var tagged []types.TaggedToken
	for _, sentence := range t.tokenizer.Sentences(text) {
		tags := t.TagSentence(sentence)
		for i, token := range sentence {
			tagged = append(tagged, types.TaggedToken{Token: token, Tag: tags[i]})
		}
	}
	return tagged, nil
}

// TagSentence returns one tag per token. If the beam search fails to produce
// a full assignment the remaining tokens get empty tags, which the counting
// rules treat as inert.
func (t *MaxentTagger) TagSentence(tokens []string) []string {
	tags := make([]string, len(tokens))
	seq, isOk := t.search(tokens, t.contexts, t.validator)
	if !isOk || len(seq.Outcomes) < len(tokens) {
		t.logger.Warn().Msgf("beam search returned %d tags for %d tokens", len(seq.Outcomes), len(tokens))
	}
	copy(tags, seq.Outcomes)
	return tags
}
