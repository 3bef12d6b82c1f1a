package tagger

// SequenceValidator can veto an outcome for a position, e.g. from a tag
// dictionary restricting known words to their attested tags.
type SequenceValidator interface {
	ValidSequence(i int, tokens []string, outcome string) bool
}

type defaultSequenceValidator struct {
	tagDictionary map[string]map[string]bool
}

func (g defaultSequenceValidator) ValidSequence(i int, tokens []string, outcome string) bool {
	if g.tagDictionary != nil {
		tags, res := g.tagDictionary[tokens[i]]
		if !res {
			return true
		}

		return tags[outcome]
	}

	return true
}

func NewSequenceValidator() SequenceValidator {
	return defaultSequenceValidator{}
}
