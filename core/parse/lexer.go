package parse

import "strings"

const (
	whitespace = " \t\r\n\v"
	symbols    = "<|>&;()"
)

// Lexer scans a single input line. It owns nothing but a cursor; tokens are
// produced on demand and never buffered.
type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) && strings.IndexByte(whitespace, l.input[l.pos]) >= 0 {
		l.pos++
	}
}

// Next consumes and returns the next token. Trailing whitespace is skipped
// too, so every call starts at significant content.
func (l *Lexer) Next() Token {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return Token{Kind: EOF}
	}

	var tok Token
	switch c := l.input[l.pos]; c {
	case '|':
		tok.Kind = Pipe
		l.pos++
	case '(':
		tok.Kind = LParen
		l.pos++
	case ')':
		tok.Kind = RParen
		l.pos++
	case ';':
		tok.Kind = Semi
		l.pos++
	case '&':
		tok.Kind = Amp
		l.pos++
	case '<':
		tok.Kind = RedirIn
		l.pos++
	case '>':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '>' {
			tok.Kind = RedirAppend
			l.pos++
		} else {
			tok.Kind = RedirOut
		}
	default:
		start := l.pos
		for l.pos < len(l.input) &&
			strings.IndexByte(whitespace, l.input[l.pos]) < 0 &&
			strings.IndexByte(symbols, l.input[l.pos]) < 0 {
			l.pos++
		}
		tok = Token{Kind: Word, Text: l.input[start:l.pos]}
	}

	l.skipSpace()
	return tok
}

// Peek reports whether the next significant character is one of set, without
// consuming anything. An empty set never matches; end of input never matches.
func (l *Lexer) Peek(set string) bool {
	l.skipSpace()
	return l.pos < len(l.input) && strings.IndexByte(set, l.input[l.pos]) >= 0
}

// Rest returns the unconsumed remainder of the line, with leading whitespace
// stripped. A non-empty result after a full parse means trailing garbage.
func (l *Lexer) Rest() string {
	l.skipSpace()
	return l.input[l.pos:]
}
