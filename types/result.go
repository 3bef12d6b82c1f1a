package types

// WordReport is the annotated trace of one surviving word list item.
type WordReport struct {
	Token         string `json:"token"`
	Tag           string `json:"tag"`
	IsWord        bool   `json:"is_word"`
	IsProposition bool   `json:"is_prop"`
	RuleNumber    int    `json:"rule_number"`
}

// Result is the outcome of rating one text. Words is nil when processing
// failed, empty when the text contained no tokens; callers distinguish the
// two by presence, not length.
type Result struct {
	WordCount        int          `json:"word_count"`
	PropositionCount int          `json:"proposition_count"`
	Density          float64      `json:"density"`
	Words            []WordReport `json:"words"`
}

// Report flattens the non-sentinel items of a finished word list.
func (list *WordList) Report() []WordReport {
	words := make([]WordReport, 0, len(list.Items)-SentinelCount)
	for _, item := range list.Items[SentinelCount:] {
		words = append(words, WordReport{
			Token:         item.Token,
			Tag:           item.Tag,
			IsWord:        item.IsWord,
			IsProposition: item.IsProposition,
			RuleNumber:    item.RuleNumber,
		})
	}
	return words
}
