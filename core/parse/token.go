package parse

// Kind classifies a lexical token.
type Kind int

const (
	// EOF marks the end of the input range.
	EOF Kind = iota
	// Word is a run of characters that isn't whitespace or a symbol.
	Word
	Pipe
	RedirIn
	RedirOut
	RedirAppend
	Semi
	Amp
	LParen
	RParen
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Word:
		return "word"
	case Pipe:
		return "'|'"
	case RedirIn:
		return "'<'"
	case RedirOut:
		return "'>'"
	case RedirAppend:
		return "'>>'"
	case Semi:
		return "';'"
	case Amp:
		return "'&'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	}
	return "unknown token"
}

// Token is one lexical unit of an input line. Text is set for Word tokens
// only; the lexer copies it out of the line so it stays valid independently
// of the input buffer.
type Token struct {
	Kind Kind
	Text string
}
