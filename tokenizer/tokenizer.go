package tokenizer

import (
	"strings"
	"unicode"
)

const (
	period            = '.'
	hyphenOrMinusSign = '-'
	ellipsis          = "..."
)

// Tokenizer splits plain text into sentences of PTB-style tokens: edge
// punctuation becomes separate tokens, contractions split into their parts
// ("don't" -> "do" + "n't"), decimals and hyphenated or broken-off tokens
// ("hesi-") stay whole.
type Tokenizer struct {
	contractionEndings []string
	multiTokenWords    map[string][]int
}

func New() *Tokenizer {
	return &Tokenizer{
		// n't must be tried before 't would ever match as part of a word
		contractionEndings: []string{"n't", "'ve", "'re", "'ll", "'s", "'d", "'m"},
		multiTokenWords: map[string][]int{
			"cannot": {3, 3},
			"gonna":  {3, 2},
			"gotta":  {3, 2},
			"lemme":  {3, 2},
			"wanna":  {3, 2},
		},
	}
}

// Tokenize flattens the whole text into one token slice.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		tokens = append(tokens, t.splitChunk([]rune(field))...)
	}
	return tokens
}

// Sentences groups tokens into sentences. Sentence-final punctuation and the
// broken-off-speech marker close a sentence and stay as its last token; a
// trailing fragment without a terminator is kept as a sentence of its own.
func (t *Tokenizer) Sentences(text string) [][]string {
	var sentences [][]string
	var current []string
	for _, token := range t.Tokenize(text) {
		current = append(current, token)
		switch token {
		case ".", "!", "?", "^":
			sentences = append(sentences, current)
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}

func (t *Tokenizer) splitChunk(chunk []rune) []string {
	if len(chunk) == 0 {
		return nil
	}

	if strings.HasPrefix(string(chunk), ellipsis) {
		return append([]string{ellipsis}, t.splitChunk(chunk[3:])...)
	}

	first := chunk[0]
	if len(chunk) > 1 && !isAlphanumeric(first) {
		// .5 is a number, not a period token
		if !(first == period && unicode.IsDigit(chunk[1])) {
			return append([]string{string(first)}, t.splitChunk(chunk[1:])...)
		}
	}

	last := chunk[len(chunk)-1]
	if len(chunk) > 1 && !isAlphanumeric(last) {
		previous := chunk[len(chunk)-2]
		brokenOff := last == hyphenOrMinusSign && isAlphanumeric(previous)
		if !brokenOff && !(last == period && isAbbreviation(chunk)) {
			if strings.HasSuffix(string(chunk), ellipsis) {
				return append(t.splitChunk(chunk[:len(chunk)-3]), ellipsis)
			}
			return append(t.splitChunk(chunk[:len(chunk)-1]), string(last))
		}
	}

	lower := strings.ToLower(string(chunk))
	if lens, ok := t.multiTokenWords[lower]; ok {
		tokens := make([]string, 0, len(lens))
		pos := 0
		for _, n := range lens {
			tokens = append(tokens, string(chunk[pos:pos+n]))
			pos += n
		}
		return tokens
	}

	for _, ending := range t.contractionEndings {
		if strings.HasSuffix(lower, ending) && len([]rune(lower)) > len(ending) {
			cut := len(chunk) - len(ending)
			return []string{string(chunk[:cut]), string(chunk[cut:])}
		}
	}

	return []string{string(chunk)}
}

func isAlphanumeric(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// isAbbreviation reports whether the chunk is a letter-period sequence like
// "U.S." whose final period belongs to the token, not to the sentence.
func isAbbreviation(chunk []rune) bool {
	periods := 0
	expectLetter := true
	for _, ch := range chunk {
		switch {
		case ch == period:
			if expectLetter {
				return false
			}
			periods++
			expectLetter = true
		case unicode.IsLetter(ch):
			expectLetter = false
		default:
			return false
		}
	}
	return periods >= 2 && chunk[len(chunk)-1] == period
}
