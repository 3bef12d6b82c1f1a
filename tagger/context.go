package tagger

import (
	"strings"
	"unicode"
)

const (
	prefixLength = 4
	suffixLength = 4

	sentenceBeginMarker = "*SB*"
	sentenceEndMarker   = "*SE*"
)

type ContextGenerator interface {
	GetContext(index int, tokens []string, priorDecisions []string) []string
}

type defaultContextGenerator struct {
	dict map[string]bool
}

// GetContext builds the feature set for one token: surface form, affixes and
// shape hints for unknown words, plus a two-token window of neighbors and
// previously decided tags.
func (g *defaultContextGenerator) GetContext(index int, tokens []string, tags []string) []string {
	next := sentenceEndMarker
	prev := sentenceBeginMarker
	var nextnext, prevprev string
	var tagprev, tagprevprev string

	lex := tokens[index]
	if len(tokens) > index+1 {
		next = tokens[index+1]
		nextnext = sentenceEndMarker
		if len(tokens) > index+2 {
			nextnext = tokens[index+2]
		}
	}

	if index > 0 {
		prev = tokens[index-1]
		prevprev = sentenceBeginMarker
		tagprev = tags[index-1]

		if index >= 2 {
			prevprev = tokens[index-2]
			tagprevprev = tags[index-2]
		}
	}

	var contexts []string
	contexts = append(contexts, "default", "w="+lex)

	if isOk := g.dict[lex]; !isOk {
		for _, suf := range getSuffixes(lex) {
			contexts = append(contexts, "suf="+suf)
		}
		for _, pref := range getPrefixes(lex) {
			contexts = append(contexts, "pre="+pref)
		}

		if strings.ContainsRune(lex, '-') {
			contexts = append(contexts, "h")
		}
		if containsUpper(lex) {
			contexts = append(contexts, "c")
		}
		if containsDigit(lex) {
			contexts = append(contexts, "d")
		}
	}

	contexts = append(contexts, "p="+prev)

	if len(tagprev) > 0 {
		contexts = append(contexts, "t="+tagprev)
	}

	if prevprev != "" {
		contexts = append(contexts, "pp="+prevprev)

		if len(tagprevprev) > 0 {
			contexts = append(contexts, "t2="+tagprevprev+","+tagprev)
		}
	}

	contexts = append(contexts, "n="+next)
	if nextnext != "" {
		contexts = append(contexts, "nn="+nextnext)
	}

	return contexts
}

func getPrefixes(lex string) []string {
	prefs := make([]string, prefixLength)
	for li := 0; li < prefixLength; li++ {
		idx := len(lex)
		if idx > li+1 {
			idx = li + 1
		}
		prefs[li] = lex[:idx]
	}
	return prefs
}

func getSuffixes(lex string) []string {
	suffs := make([]string, suffixLength)
	for li := 0; li < suffixLength; li++ {
		idx := len(lex) - li - 1
		if idx < 0 {
			idx = 0
		}
		suffs[li] = lex[idx:]
	}
	return suffs
}

func containsUpper(lex string) bool {
	for _, r := range lex {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func containsDigit(lex string) bool {
	for _, r := range lex {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func NewContextGenerator() ContextGenerator {
	return &defaultContextGenerator{}
}
