package rater

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"cognitionmetrics.com/idr/types"
)

const (
	// maxLookback bounds every backward search; it must never exceed
	// types.SentinelCount.
	maxLookback = 10

	// maxLookahead bounds the forward scan of the cardinal-number rule.
	maxLookahead = 5
)

// beginningOfSentence returns the index of the first item of the sentence
// containing position i. Blank tags and the sentence-end tag both act as
// boundaries, so a moved or blanked item never leaks into a neighboring
// sentence.
func beginningOfSentence(items []*types.WordItem, i int, sentenceEnd string) int {
	j := i - 1
	for j > 0 && items[j].Tag != sentenceEnd && items[j].Tag != "" {
		j--
	}
	return j + 1
}

// searchBackwards walks back from i-1 looking for an item that satisfies
// match. The search gives up after maxLookback items and never crosses a
// sentence end.
func searchBackwards(items []*types.WordItem, i int, sentenceEnd string, match func(*types.WordItem) bool) *types.WordItem {
	for j := i - 1; j > i-maxLookback && j >= 0; j-- {
		prev := items[j]
		if prev.Tag == sentenceEnd {
			break
		}
		if match(prev) {
			return prev
		}
	}
	return nil
}

// isRepetition reports whether second is likely a repetition of first.
// The first word may be broken off, e.g. "hesi- hesitation", so after
// dropping a trailing hyphen a strict prefix also counts, except for words
// too short or common to be reliable.
func isRepetition(first string, second string) bool {
	if first == "" || second == "" {
		return false
	}
	if first == second {
		return true
	}
	first = strings.TrimSuffix(first, "-")
	if utf8.RuneCountInString(second) > 3 && first != "a" && first != "an" && strings.HasPrefix(second, first) {
		return true
	}
	return false
}

func startsAlphanumeric(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
