package pipeline

import (
	"sort"
	"sync"

	"cognitionmetrics.com/idr/tokenizer"
	"cognitionmetrics.com/idr/types"
)

// sentenceTokens is the unit flowing between stages: one sentence with its
// position in the text, so concurrent stages can restore document order.
type sentenceTokens struct {
	index  int
	tokens []string
	tags   []string
}

// SentenceTagger assigns one tag per token of a single sentence.
type SentenceTagger interface {
	TagSentence(tokens []string) []string
}

func newSentenceSplitter(tok *tokenizer.Tokenizer) func(in <-chan string) <-chan sentenceTokens {
	return func(in <-chan string) <-chan sentenceTokens {
		out := make(chan sentenceTokens)
		go func() {
			defer close(out)
			index := 0
			for text := range in {
				for _, tokens := range tok.Sentences(text) {
					out <- sentenceTokens{index: index, tokens: tokens}
					index++
				}
			}
		}()
		return out
	}
}

// newSentenceTagger tags sentences concurrently; order is restored by the
// collector.
func newSentenceTagger(tagger SentenceTagger) func(in <-chan sentenceTokens) <-chan sentenceTokens {
	return func(in <-chan sentenceTokens) <-chan sentenceTokens {
		out := make(chan sentenceTokens)
		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {
				wg.Add(1)
				go func(sent sentenceTokens) {
					defer wg.Done()
					sent.tags = tagger.TagSentence(sent.tokens)
					out <- sent
				}(sent)
			}
			wg.Wait()
		}()
		return out
	}
}

// collectTagged drains the stage output and flattens it back into document
// order.
func collectTagged(in <-chan sentenceTokens) []types.TaggedToken {
	var sentences []sentenceTokens
	for sent := range in {
		sentences = append(sentences, sent)
	}
	sort.Slice(sentences, func(i, j int) bool {
		return sentences[i].index < sentences[j].index
	})

	var tagged []types.TaggedToken
	for _, sent := range sentences {
		for i, token := range sent.tokens {
			tag := ""
			if i < len(sent.tags) {
				tag = sent.tags[i]
			}
			tagged = append(tagged, types.TaggedToken{Token: token, Tag: tag})
		}
	}
	return tagged
}
