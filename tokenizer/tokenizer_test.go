package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tok := New()

	cases := []struct {
		text string
		want []string
	}{
		{"They met Charlie there.", []string{"They", "met", "Charlie", "there", "."}},
		{"Don't go.", []string{"Do", "n't", "go", "."}},
		{"They'll win", []string{"They", "'ll", "win"}},
		{"Australia's sheep", []string{"Australia", "'s", "sheep"}},
		{"It costs 10.5 now.", []string{"It", "costs", "10.5", "now", "."}},
		{"about .5 more", []string{"about", ".5", "more"}},
		{"hesi- hesitation", []string{"hesi-", "hesitation"}},
		{"cannot", []string{"can", "not"}},
		{"I wanna go", []string{"I", "wan", "na", "go"}},
		{"...I unbolted the door.", []string{"...", "I", "unbolted", "the", "door", "."}},
		{"fine-quality wool", []string{"fine-quality", "wool"}},
		{"(the parlor was closed).", []string{"(", "the", "parlor", "was", "closed", ")", "."}},
		{"the U.S. maybe", []string{"the", "U.S.", "maybe"}},
		{"worth 1,000 dollars", []string{"worth", "1,000", "dollars"}},
		{"she said ^", []string{"she", "said", "^"}},
		{"", nil},
	}

	for _, c := range cases {
		require.Equal(t, c.want, tok.Tokenize(c.text), c.text)
	}
}

func TestSentences(t *testing.T) {
	tok := New()

	sentences := tok.Sentences("First one. Second one! A third? And a fragment")
	require.Equal(t, [][]string{
		{"First", "one", "."},
		{"Second", "one", "!"},
		{"A", "third", "?"},
		{"And", "a", "fragment"},
	}, sentences)

	require.Empty(t, tok.Sentences(""))

	// the broken-off-speech marker closes a sentence
	sentences = tok.Sentences("I was ^ I was going")
	require.Equal(t, [][]string{
		{"I", "was", "^"},
		{"I", "was", "going"},
	}, sentences)
}
