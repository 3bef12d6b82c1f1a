package types

import "strings"

// TaggedToken is one unit of tagger output.
type TaggedToken struct {
	Token string `json:"token"`
	Tag   string `json:"tag"`
}

// WordItem is one slot in a WordList. An item with an empty token is a
// sentinel; an item with an empty tag is ignored by the counting rules.
type WordItem struct {
	Token          string
	Tag            string
	IsWord         bool
	IsProposition  bool
	RuleNumber     int
	LowercaseToken string
}

func NewWordItem(token string, tag string, isWord bool, isProposition bool, ruleNumber int) *WordItem {
	return &WordItem{
		Token:          token,
		Tag:            tag,
		IsWord:         isWord,
		IsProposition:  isProposition,
		RuleNumber:     ruleNumber,
		LowercaseToken: strings.ToLower(token),
	}
}

// SetToken replaces the token text and keeps the lowercase view in sync.
// All token mutations must go through here.
func (item *WordItem) SetToken(token string) {
	item.Token = token
	item.LowercaseToken = strings.ToLower(token)
}

// Blank makes the item inert for later rules and for counting.
func (item *WordItem) Blank(ruleNumber int) {
	item.Tag = ""
	item.IsWord = false
	item.IsProposition = false
	item.RuleNumber = ruleNumber
}

// SentinelCount is the number of blank items padding the head of every
// WordList. It must stay >= the deepest backward reference any rule makes,
// so rules never index past the beginning of the list.
const SentinelCount = 10

// WordList is the mutable sequence the counting rules operate on. The first
// SentinelCount items are sentinels: they are never removed and never
// receive a token.
type WordList struct {
	Items []*WordItem
}

func NewWordList(tagged []TaggedToken) *WordList {
	items := make([]*WordItem, 0, SentinelCount+len(tagged))
	for i := 0; i < SentinelCount; i++ {
		items = append(items, NewWordItem("", "", false, false, 0))
	}
	for _, tok := range tagged {
		items = append(items, NewWordItem(tok.Token, tok.Tag, false, false, 0))
	}
	return &WordList{Items: items}
}

func (list *WordList) Len() int {
	return len(list.Items)
}

// Insert places item at index i, shifting the tail right.
func (list *WordList) Insert(i int, item *WordItem) {
	list.Items = append(list.Items, nil)
	copy(list.Items[i+1:], list.Items[i:])
	list.Items[i] = item
}

// Remove splices out n items starting at index i.
func (list *WordList) Remove(i int, n int) {
	list.Items = append(list.Items[:i], list.Items[i+n:]...)
}
