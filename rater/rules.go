package rater

import (
	"strings"

	"cognitionmetrics.com/idr/types"
)

// Rule numbers recorded on word items for audit. The numbering follows the
// CPIDR rule catalog; only the word-identification rules get names because
// tests and reports refer to them frequently.
const (
	RuleSentenceEndMarker             = 1
	RuleAlphanumericWord              = 2
	RuleCombineConsecutiveCardinals   = 3
	RuleCombineCardinalsWithSeparator = 4
	RuleMovedAuxiliary                = 101
)

// Engine applies the idea-counting rules to a WordList. The rule sets it
// consults are injected so alternate tag vocabularies can be swapped in.
type Engine struct {
	rules *types.RuleSet
}

func NewEngine(rules *types.RuleSet) *Engine {
	if rules == nil {
		rules = types.DefaultRuleSet()
	}
	return &Engine{rules: rules}
}

type ruleGroup func(list *types.WordList, i int, speechMode bool) int

// Apply runs the seven rule groups over every live item, left to right.
// The groups look back toward the beginning of the list from the current
// item; the sentinel prefix guarantees they never index past the start.
// Groups read the output of earlier groups within the same iteration, so
// when a merge steps the cursor back the later groups see the merged item.
// Structural edits always happen at or after the cursor, never before it.
func (e *Engine) Apply(list *types.WordList, speechMode bool) {
	groups := []ruleGroup{
		e.identifyWordsAndAdjustTags,
		e.adjustWordOrder,
		e.identifyPotentialPropositions,
		e.handleLinkingVerbs,
		e.handleAuxiliaryVerbs,
		e.handleConstructionsInvolvingTo,
		e.handleFillers,
	}

	for i := 0; i < list.Len(); i++ {
		if list.Items[i].Token == "" {
			continue
		}
		for _, group := range groups {
			i = group(list, i, speechMode)
		}
	}
}

// identifyWordsAndAdjustTags is the word-identification and tag-normalization
// group: rules 001-004 (markers, words, cardinal merges), 020-023 (speech
// repetitions), 050 (negations) and 054 (that/this as pronoun).
func (e *Engine) identifyWordsAndAdjustTags(list *types.WordList, i int, speechMode bool) int {
	items := list.Items
	word := items[i]
	previous := items[i-1]
	twoBack := items[i-2]

	// 001
	// The symbol ^ used to mark broken-off spoken sentences is an
	// end-of-sentence marker.
	if word.Token == "^" {
		word.Tag = e.rules.SentenceEnd
		word.RuleNumber = RuleSentenceEndMarker
	}

	// 002
	// The item is a word if its token starts with a letter or digit and its
	// tag is not SYM.
	if startsAlphanumeric(word.Token) && word.Tag != "SYM" {
		word.IsWord = true
		word.RuleNumber = RuleAlphanumericWord
	}

	// 003
	// Two cardinal numbers in immediate succession are combined into one.
	// (Uncommon; the next rule is much more common.)
	if word.Tag == "CD" && previous.Tag == "CD" {
		previous.SetToken(previous.Token + " " + word.Token)
		previous.RuleNumber = RuleCombineConsecutiveCardinals
		i--
		word = items[i]
		previous = items[i-1]
		twoBack = items[i-2]
		list.Remove(i+1, 1)
		items = list.Items
	}

	// 004
	// Cardinal + nonalphanumeric + cardinal are combined into one token,
	// for handling fractions, decimals, etc.
	if word.Tag == "CD" &&
		len(previous.Token) > 0 &&
		!startsAlphanumeric(previous.Token) &&
		twoBack.Tag == "CD" {
		twoBack.SetToken(twoBack.Token + previous.Token + word.Token)
		twoBack.RuleNumber = RuleCombineCardinalsWithSeparator
		i -= 2
		word = items[i]
		previous = items[i-1]
		twoBack = items[i-2]
		list.Remove(i+1, 2)
		items = list.Items
	}

	// 020
	// Repetition of the form "A A" is simplified to "A". The first A can be
	// an initial substring of the second one. The blanked item drops out of
	// the word count.
	if speechMode {
		if isRepetition(previous.Token, word.Token) {
			previous.Blank(20)
		}
	}

	// 021, 022
	// Repetition of the form "A Punct A" is simplified to "A".
	// Repetition of the form "A B A" is simplified to "A B".
	if speechMode {
		if isRepetition(twoBack.Token, word.Token) && !e.rules.Punctuation.Contains(word.Tag) {
			twoBack.Blank(22)
			if e.rules.Punctuation.Contains(previous.Tag) {
				previous.Blank(21)
			}
		}
	}

	// 023
	// Repetition of the form "A B Punct A B" is simplified to "A B".
	if speechMode {
		if isRepetition(items[i-3].Token, word.Token) &&
			isRepetition(items[i-4].Token, previous.Token) &&
			e.rules.Punctuation.Contains(items[i-2].Tag) {
			items[i-4].Blank(23)
			items[i-3].Blank(23)
			items[i-2].Blank(23)
		}
	}

	// 050
	// 'not' and any word ending in "n't" are assumed to be propositions and
	// their tag is changed to NOT.
	if word.LowercaseToken == "not" ||
		strings.HasSuffix(word.LowercaseToken, "n't") ||
		e.rules.NegationContractions.Contains(word.LowercaseToken) {
		word.IsProposition = true
		word.Tag = "NOT"
		word.RuleNumber = 50
	}

	// 054
	// 'that/DT' or 'this/DT' is a pronoun, not a determiner, if the word
	// following it is any kind of verb or adverb. Disabled by default so the
	// counts match the reference implementation, where the determiner stays a
	// proposition.
	if e.rules.ReclassifyDeterminers &&
		(previous.LowercaseToken == "that" || previous.LowercaseToken == "this") &&
		previous.Tag == "DT" &&
		(e.rules.Verbs.Contains(word.Tag) || e.rules.Adverbs.Contains(word.Tag)) {
		previous.Tag = "PRP"
		previous.IsProposition = false
		previous.RuleNumber = 54
	}

	return i
}

// adjustWordOrder undoes subject-aux inversion (rule 101). If the current
// word is an aux and either starts its sentence or follows a sentence-initial
// interrogative, a counted copy is inserted in front of the first verb (or at
// the sentence end) and the original is neutralized in place. In some cases
// this moves a word too far right, but the effect on proposition counting is
// benign.
func (e *Engine) adjustWordOrder(list *types.WordList, i int, speechMode bool) int {
	items := list.Items
	word := items[i]

	if !e.rules.AuxiliaryVerbs.Contains(word.LowercaseToken) {
		return i
	}

	sentenceStart := beginningOfSentence(items, i, e.rules.SentenceEnd)
	if sentenceStart != i && !e.rules.Interrogatives.Contains(items[sentenceStart].Tag) {
		return i
	}

	targetPosition := i + 1
	for targetPosition < len(items) {
		if items[targetPosition].Tag == e.rules.SentenceEnd || e.rules.Verbs.Contains(items[targetPosition].Tag) {
			break
		}
		targetPosition++
	}

	if targetPosition > i+1 {
		list.Insert(targetPosition, types.NewWordItem(word.Token, word.Tag, true, true, RuleMovedAuxiliary))
		// mark the old item as to be ignored
		word.Tag = ""
		word.IsProposition = false
		word.IsWord = false
		word.SetToken(word.Token + "/moved")
	}

	return i
}

// identifyPotentialPropositions is the classification group: the default
// rule 200 plus the 20x/21x/22x/230 overrides. Later checks may re-override
// earlier ones within the same iteration.
func (e *Engine) identifyPotentialPropositions(list *types.WordList, i int, speechMode bool) int {
	items := list.Items
	word := items[i]
	previous := items[i-1]
	twoBack := items[i-2]

	// 200
	if e.rules.DefaultPropositions.Contains(word.Tag) {
		word.IsProposition = true
		word.RuleNumber = 200
	}

	// 201
	// Articles are not propositions.
	if word.LowercaseToken == "the" || word.LowercaseToken == "an" || word.LowercaseToken == "a" {
		word.IsProposition = false
		word.RuleNumber = 201
	}

	// 203
	// The first word in a correlating conjunction such as "either...or",
	// "neither...nor", "both...and" is not a proposition. The second word is
	// tagged CC; the first may have been tagged CC or DT.
	if word.Tag == "CC" && !e.rules.CorrelatingConjunctions.Contains(word.LowercaseToken) {
		target := searchBackwards(items, i, e.rules.SentenceEnd, func(w *types.WordItem) bool {
			return e.rules.CorrelatingConjunctions.Contains(w.LowercaseToken)
		})
		if target != nil {
			target.IsProposition = false
			target.RuleNumber = 203
		}
	}

	// 204
	// "And then" and "or else" are each a single proposition.
	if (previous.LowercaseToken == "and" && word.LowercaseToken == "then") ||
		(previous.LowercaseToken == "or" && word.LowercaseToken == "else") {
		word.IsProposition = false
		word.RuleNumber = 204
	}

	// 206
	// "To" is not a proposition when it is the last word in a sentence.
	if word.Tag == e.rules.SentenceEnd && previous.Tag == "TO" {
		previous.IsProposition = false
		previous.RuleNumber = 206
	}

	// 207
	// A modal is a proposition when it is the last word in a sentence.
	if word.Tag == e.rules.SentenceEnd && previous.Tag == "MD" {
		previous.IsProposition = true
		previous.RuleNumber = 207
	}

	// 210
	// A cardinal number is a proposition only if there is a noun within 5
	// words after it, not crossing a sentence boundary. "in 3 parts" is 2
	// props but "in 1941" is only one.
	if word.Tag == "CD" {
		word.IsProposition = false
		word.RuleNumber = 210
		for j := i + 1; j < len(items) && j <= i+maxLookahead; j++ {
			next := items[j]
			if next.Tag == e.rules.SentenceEnd {
				break
			}
			if e.rules.Nouns.Contains(next.Tag) {
				word.IsProposition = true
				break
			}
		}
	}

	// 211
	// 'Not...unless' and similar pairs count as one proposition; the second
	// word is the one counted.
	if e.rules.NegativePolarity2.Contains(word.LowercaseToken) {
		target := searchBackwards(items, i, e.rules.SentenceEnd, func(w *types.WordItem) bool {
			return w.Tag == "NOT"
		})
		if target != nil {
			target.IsProposition = false
			target.RuleNumber = 211
		}
	}

	// 212
	// 'Not...any' and similar pairs count as one proposition; the first
	// word is the one counted.
	if e.rules.NegativePolarity1.Contains(word.LowercaseToken) {
		target := searchBackwards(items, i, e.rules.SentenceEnd, func(w *types.WordItem) bool {
			return w.Tag == "NOT"
		})
		if target != nil {
			word.IsProposition = false
			word.RuleNumber = 212
		}
	}

	// 213
	// "Going to" is not a proposition when immediately preceding a verb.
	if e.rules.Verbs.Contains(word.Tag) &&
		previous.LowercaseToken == "to" &&
		twoBack.LowercaseToken == "going" {
		previous.IsProposition = false
		previous.RuleNumber = 213
		twoBack.IsProposition = false
		twoBack.RuleNumber = 213
	}

	// 214
	// "If ... then" is one conjunction, not two. Actually checking for
	// "if ... then (word)" because "then" as the last word of a sentence is
	// more likely to be an adverb.
	if word.IsWord && previous.LowercaseToken == "then" {
		target := searchBackwards(items, i, e.rules.SentenceEnd, func(w *types.WordItem) bool {
			return w.LowercaseToken == "if"
		})
		if target != nil {
			previous.IsProposition = false
			previous.RuleNumber = 214
		}
	}

	// 225
	// "each other" is a pronoun.
	if word.LowercaseToken == "other" && previous.LowercaseToken == "each" {
		word.Tag = "PRP"
		previous.Tag = "PRP"
		word.IsProposition = false
		previous.IsProposition = false
		word.RuleNumber = 225
		previous.RuleNumber = 225
	}

	// 230
	// "how come" and "how many" are each one proposition, not two.
	if (word.LowercaseToken == "come" || word.LowercaseToken == "many") &&
		previous.LowercaseToken == "how" {
		word.IsProposition = false
		word.Tag = previous.Tag
		word.RuleNumber = 230
	}

	return i
}

// handleLinkingVerbs covers rules 301-311.
func (e *Engine) handleLinkingVerbs(list *types.WordList, i int, speechMode bool) int {
	items := list.Items
	word := items[i]
	previous := items[i-1]
	twoBack := items[i-2]

	// 301
	// A linking verb is not a proposition if followed by an adjective or
	// adverb. (Adverbs are frequent tagging mistakes for adjectives.)
	if (e.rules.Adjectives.Contains(word.Tag) || e.rules.Adverbs.Contains(word.Tag)) &&
		e.rules.LinkingVerbs.Contains(previous.LowercaseToken) {
		previous.IsProposition = false
		previous.RuleNumber = 301
	}

	// 302
	// "Be" is not a proposition when followed by a preposition.
	if word.Tag == "IN" && e.rules.Be.Contains(previous.LowercaseToken) {
		previous.IsProposition = false
		previous.RuleNumber = 302
	}

	// 310
	// Linking verb + Adverb + { PDT, DT } is 2 propositions (e.g., "he is
	// now the president"); would otherwise be undercounted because of 201.
	if word.Tag == "DT" || word.Tag == "PDT" {
		if e.rules.Adverbs.Contains(previous.Tag) &&
			e.rules.LinkingVerbs.Contains(twoBack.LowercaseToken) {
			previous.IsProposition = true
			previous.RuleNumber = 310
			twoBack.IsProposition = true
			twoBack.RuleNumber = 310
		}
	}

	// 311
	// An adjective after a causative linking verb is not a new proposition:
	// "make it better" and similar phrases.
	if e.rules.Adjectives.Contains(word.Tag) {
		target := searchBackwards(items, i, e.rules.SentenceEnd, func(w *types.WordItem) bool {
			return e.rules.CausativeLinkingVerbs.Contains(w.LowercaseToken)
		})
		if target != nil {
			word.IsProposition = false
			word.RuleNumber = 311
		}
	}

	return i
}

// handleAuxiliaryVerbs covers the 400 group. Note that Verbs is a set of
// tags but the auxiliaries are a set of tokens, and Verbs includes all aux.
func (e *Engine) handleAuxiliaryVerbs(list *types.WordList, i int, speechMode bool) int {
	items := list.Items
	word := items[i]
	previous := items[i-1]
	twoBack := items[i-2]

	// 401
	// Aux not is one proposition, not two.
	if word.LowercaseToken == "not" && e.rules.AuxiliaryVerbs.Contains(previous.LowercaseToken) {
		previous.IsProposition = false
		previous.RuleNumber = 401
	}

	// 402
	// Aux Verb is one proposition, not two.
	if e.rules.Verbs.Contains(word.Tag) && e.rules.AuxiliaryVerbs.Contains(previous.LowercaseToken) {
		previous.IsProposition = false
		previous.RuleNumber = 402
	}

	// 405
	// Aux NOT Verb: NOT and the second verb are the propositions.
	// Also Aux Adverb Verb, e.g. "had always sung", "would rather go".
	if e.rules.Verbs.Contains(word.Tag) &&
		(previous.Tag == "NOT" || e.rules.Adverbs.Contains(previous.Tag)) &&
		e.rules.AuxiliaryVerbs.Contains(twoBack.LowercaseToken) {
		twoBack.IsProposition = false
		twoBack.RuleNumber = 405
	}

	return i
}

// handleConstructionsInvolvingTo covers the 500 group.
func (e *Engine) handleConstructionsInvolvingTo(list *types.WordList, i int, speechMode bool) int {
	items := list.Items
	word := items[i]
	previous := items[i-1]

	// 510
	// TO VB is one proposition, not two.
	if word.Tag == "VB" && previous.Tag == "TO" {
		previous.IsProposition = false
		previous.RuleNumber = 510
	}

	// 511
	// "for ... TO VB": "for" is not a proposition.
	if word.Tag == "VB" && previous.Tag == "TO" {
		target := searchBackwards(items, i, e.rules.SentenceEnd, func(w *types.WordItem) bool {
			return w.LowercaseToken == "for"
		})
		if target != nil {
			target.IsProposition = false
			target.RuleNumber = 511
		}
	}

	return i
}

// handleFillers covers the 600 group, which only applies to speech.
func (e *Engine) handleFillers(list *types.WordList, i int, speechMode bool) int {
	if !speechMode {
		return i
	}

	items := list.Items
	word := items[i]
	previous := items[i-1]

	// 610
	// A sentence consisting entirely of probable filler words is
	// propositionless. The words still count as words.
	if word.Tag == e.rules.SentenceEnd {
		sentenceStart := beginningOfSentence(items, i, e.rules.SentenceEnd)
		content := 0
		for j := sentenceStart; j < i; j++ {
			if items[j].Tag != "UH" && !e.rules.Fillers.Contains(items[j].LowercaseToken) {
				content++
			}
		}
		if content == 0 {
			for j := sentenceStart; j < i; j++ {
				items[j].Tag = ""
				items[j].IsProposition = false
				items[j].RuleNumber = 610
			}
		}
	}

	// 632
	// "like" is a filler when not immediately preceded by a form of "be".
	if word.LowercaseToken == "like" && !e.rules.Be.Contains(previous.LowercaseToken) {
		word.Tag = ""
		word.IsProposition = false
		word.RuleNumber = 632
	}

	// 634
	// "you know" is a filler and counts as one word, not two.
	if previous.LowercaseToken == "you" && word.LowercaseToken == "know" {
		i--
		word = items[i]
		list.Remove(i+1, 1)
		word.SetToken("you_know")
		word.Tag = ""
		word.IsProposition = false
		word.IsWord = true
		word.RuleNumber = 634
	}

	return i
}
