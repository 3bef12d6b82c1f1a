package types

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// StringSet is a membership set over tokens or tags.
type StringSet map[string]bool

func NewStringSet(members ...string) StringSet {
	set := make(StringSet, len(members))
	for _, m := range members {
		set[m] = true
	}
	return set
}

func (set StringSet) Contains(s string) bool {
	return set[s]
}

// RuleSet is the configuration surface of the counting rules: every tag set
// and word list the rules consult. The defaults follow the Penn Treebank tag
// vocabulary used by CPIDR; a YAML rule-set file can replace any subset of
// them so a different tagger's vocabulary can be substituted without code
// changes.
type RuleSet struct {
	SentenceEnd string

	Punctuation    StringSet
	Adjectives     StringSet
	Adverbs        StringSet
	Verbs          StringSet
	Nouns          StringSet
	Interrogatives StringSet

	// All the tags that, by default, are taken to be propositions.
	DefaultPropositions StringSet

	// Words that are often non-propositional fillers.
	Fillers StringSet

	// All forms of 'be'.
	Be StringSet

	// Common negative contractions that may slip through the tagger,
	// especially if typed without the apostrophe.
	NegationContractions StringSet

	AuxiliaryVerbs        StringSet
	LinkingVerbs          StringSet
	CausativeLinkingVerbs StringSet

	CorrelatingConjunctions StringSet

	// Negative-polarity items where the earlier negative, rather than this
	// word, counts as the proposition; e.g., "not...yet" = "not".
	NegativePolarity1 StringSet

	// Negative-polarity items where this word, rather than the earlier
	// negative, counts as the proposition; e.g., "not...unless" = "(n)unless".
	NegativePolarity2 StringSet

	// ReclassifyDeterminers turns "that"/"this" tagged DT into a
	// non-propositional pronoun when a verb or adverb follows. Off by
	// default: the reference implementation's counts leave the determiner
	// as a counted proposition.
	ReclassifyDeterminers bool
}

func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		SentenceEnd: ".",

		Punctuation:    NewStringSet(":", ",", "."),
		Adjectives:     NewStringSet("JJ", "JJR", "JJS"),
		Adverbs:        NewStringSet("RB", "RBR", "RBS", "WRB"),
		Verbs:          NewStringSet("VB", "VBD", "VBG", "VBN", "VBP", "VBZ"),
		Nouns:          NewStringSet("NN", "NNS", "NNP", "NNPS"),
		Interrogatives: NewStringSet("WDT", "WP", "WPS", "WRB"),

		DefaultPropositions: NewStringSet(
			"CC",   // coordinating conjunction
			"CD",   // cardinal numeral
			"DT",   // determiner
			"IN",   // preposition/subordinating conjunction
			"JJ", "JJR", "JJS", // adjectives
			"PDT",  // predeterminer
			"POS",  // possessive "'s" (which is not counted as a word)
			"PRP$", // possessive pronoun
			"PP$",  // possessive pronoun
			"RB", "RBR", "RBS", // adverbs
			"TO", // "to" whether preposition or infinitival
			"VB", "VBD", "VBG", "VBN", "VBP", "VBZ", // verbs
			"WDT", "WP", "WPS", "WRB", // interrogatives/relatives
		),

		Fillers: NewStringSet("and", "or", "but", "if", "that", "just", "you", "know"),

		Be: NewStringSet("am", "is", "are", "was", "were", "being", "been"),

		NegationContractions: NewStringSet(
			"didn't", "didnt",
			"don't", "dont",
			"can't", "cant",
			"couldn't", "couldnt",
			"won't", "wont",
			"wouldn't", "wouldnt",
		),

		AuxiliaryVerbs: NewStringSet(
			"be", "am", "is", "are", "was", "were", "being", "been",
			"have", "has", "had", "having",
			"do", "does", "did", // "doing" and "done" are not aux forms
			"need", // "needs" is not an aux
			"dare", // "dares" is not an aux
			// modals are omitted because the tagger does not tag them as verbs
		),

		// All forms of all verbs that take an adjective after them.
		LinkingVerbs: NewStringSet(
			"be", "am", "is", "are", "was", "were", "been", "being",
			"become", "becomes", "became", "becoming",
			"get", "gets", "got", "gotten", "getting",
			"look", "looks", "looked", "looking",
			"seem", "seems", "seemed", "seeming",
			"appear", "appears", "appeared", "appearing",
			"sound", "sounds", "sounded", "sounding",
			"feel", "feels", "felt", "feeling",
			"smell", "smells", "smelled", "smelling",
			"taste", "tastes", "tasted", "tasting",
		),

		// All forms of all verbs that take noun phrase + adjective after
		// them, such as "make it better" or "turn it green".
		CausativeLinkingVerbs: NewStringSet(
			"make", "makes", "made", "making",
			"turn", "turns", "turned", "turning",
			"paint", "paints", "painted", "painting",
		),

		CorrelatingConjunctions: NewStringSet("both", "either", "neither"),

		NegativePolarity1: NewStringSet("yet", "much", "many", "any", "anymore"),
		NegativePolarity2: NewStringSet("unless"),
	}
}

// ruleSetFile is the YAML shape of a rule-set override. Absent keys keep
// their default values.
type ruleSetFile struct {
	SentenceEnd             *string  `yaml:"sentence_end"`
	Punctuation             []string `yaml:"punctuation"`
	Adjectives              []string `yaml:"adjectives"`
	Adverbs                 []string `yaml:"adverbs"`
	Verbs                   []string `yaml:"verbs"`
	Nouns                   []string `yaml:"nouns"`
	Interrogatives          []string `yaml:"interrogatives"`
	DefaultPropositions     []string `yaml:"default_propositions"`
	Fillers                 []string `yaml:"fillers"`
	Be                      []string `yaml:"be"`
	NegationContractions    []string `yaml:"negation_contractions"`
	AuxiliaryVerbs          []string `yaml:"auxiliary_verbs"`
	LinkingVerbs            []string `yaml:"linking_verbs"`
	CausativeLinkingVerbs   []string `yaml:"causative_linking_verbs"`
	CorrelatingConjunctions []string `yaml:"correlating_conjunctions"`
	NegativePolarity1       []string `yaml:"negative_polarity_1"`
	NegativePolarity2       []string `yaml:"negative_polarity_2"`
	ReclassifyDeterminers   *bool    `yaml:"reclassify_determiners"`
}

// LoadRuleSet reads a YAML rule-set file and merges it over the defaults.
func LoadRuleSet(filePath string) (*RuleSet, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set file %q: %w", filePath, err)
	}

	var file ruleSetFile
	if err := yaml.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rule set file %q: %w", filePath, err)
	}

	rs := DefaultRuleSet()
	if file.SentenceEnd != nil {
		rs.SentenceEnd = *file.SentenceEnd
	}
	if file.ReclassifyDeterminers != nil {
		rs.ReclassifyDeterminers = *file.ReclassifyDeterminers
	}
	for _, override := range []struct {
		members []string
		target  *StringSet
	}{
		{file.Punctuation, &rs.Punctuation},
		{file.Adjectives, &rs.Adjectives},
		{file.Adverbs, &rs.Adverbs},
		{file.Verbs, &rs.Verbs},
		{file.Nouns, &rs.Nouns},
		{file.Interrogatives, &rs.Interrogatives},
		{file.DefaultPropositions, &rs.DefaultPropositions},
		{file.Fillers, &rs.Fillers},
		{file.Be, &rs.Be},
		{file.NegationContractions, &rs.NegationContractions},
		{file.AuxiliaryVerbs, &rs.AuxiliaryVerbs},
		{file.LinkingVerbs, &rs.LinkingVerbs},
		{file.CausativeLinkingVerbs, &rs.CausativeLinkingVerbs},
		{file.CorrelatingConjunctions, &rs.CorrelatingConjunctions},
		{file.NegativePolarity1, &rs.NegativePolarity1},
		{file.NegativePolarity2, &rs.NegativePolarity2},
	} {
		if override.members != nil {
			*override.target = NewStringSet(override.members...)
		}
	}
	return rs, nil
}
