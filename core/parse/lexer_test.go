package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexerTokens(t *testing.T) {
	lex := NewLexer("cat <in | sort >>out.txt ; ( wc ) & tail")

	want := []Token{
		{Kind: Word, Text: "cat"},
		{Kind: RedirIn},
		{Kind: Word, Text: "in"},
		{Kind: Pipe},
		{Kind: Word, Text: "sort"},
		{Kind: RedirAppend},
		{Kind: Word, Text: "out.txt"},
		{Kind: Semi},
		{Kind: LParen},
		{Kind: Word, Text: "wc"},
		{Kind: RParen},
		{Kind: Amp},
		{Kind: Word, Text: "tail"},
		{Kind: EOF},
	}

	for _, w := range want {
		assert.Equal(t, w, lex.Next())
	}
	// EOF is sticky.
	assert.Equal(t, Token{Kind: EOF}, lex.Next())
}

func TestLexerGreedyAppend(t *testing.T) {
	lex := NewLexer(">>>")
	assert.Equal(t, Token{Kind: RedirAppend}, lex.Next())
	assert.Equal(t, Token{Kind: RedirOut}, lex.Next())
	assert.Equal(t, Token{Kind: EOF}, lex.Next())
}

func TestLexerWordBoundaries(t *testing.T) {
	// Words end at whitespace or any symbol character, with no separator
	// required.
	lex := NewLexer("a&b")
	assert.Equal(t, Token{Kind: Word, Text: "a"}, lex.Next())
	assert.Equal(t, Token{Kind: Amp}, lex.Next())
	assert.Equal(t, Token{Kind: Word, Text: "b"}, lex.Next())
}

func TestLexerWhitespace(t *testing.T) {
	// Space, tab, CR, LF and vertical tab all separate tokens.
	lex := NewLexer(" \t\r\n\va \t b\v")
	assert.Equal(t, Token{Kind: Word, Text: "a"}, lex.Next())
	assert.Equal(t, Token{Kind: Word, Text: "b"}, lex.Next())
	assert.Equal(t, Token{Kind: EOF}, lex.Next())
}

func TestLexerPeek(t *testing.T) {
	lex := NewLexer("  | rest")
	assert.True(t, lex.Peek("|&"))
	assert.False(t, lex.Peek(";"))
	assert.False(t, lex.Peek(""))

	// Peek consumes nothing.
	assert.Equal(t, Token{Kind: Pipe}, lex.Next())
	assert.Equal(t, "rest", lex.Rest())
}
