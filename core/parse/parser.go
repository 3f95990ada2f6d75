package parse

import (
	"errors"
	"fmt"
	"os"
)

// MaxArgs bounds the argument count of a single command. Exceeding it is a
// parse failure, not a runtime one.
const MaxArgs = 10

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("syntax error")

// Parse turns one input line into a command tree. An empty or all-whitespace
// line parses to an ExecCmd with no arguments, which executes as a no-op.
func Parse(line string) (Cmd, error) {
	p := &parser{lex: NewLexer(line)}
	cmd, err := p.parseLine()
	if err != nil {
		return nil, err
	}
	if rest := p.lex.Rest(); rest != "" {
		return nil, fmt.Errorf("%w: leftovers: %s", ErrSyntax, rest)
	}
	return cmd, nil
}

// parser is a predictive recursive-descent parser with one character of
// lookahead, provided by Lexer.Peek.
type parser struct {
	lex *Lexer
}

// parseLine handles the lowest-precedence operators: postfix '&' and the
// right-recursive ';'.
func (p *parser) parseLine() (Cmd, error) {
	cmd, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	for p.lex.Peek("&") {
		p.lex.Next()
		cmd = &BackCmd{Cmd: cmd}
	}
	if p.lex.Peek(";") {
		p.lex.Next()
		right, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		cmd = &ListCmd{Left: cmd, Right: right}
	}
	return cmd, nil
}

// parsePipe is right-recursive: a | b | c parses as Pipe(a, Pipe(b, c)).
func (p *parser) parsePipe() (Cmd, error) {
	cmd, err := p.parseExec()
	if err != nil {
		return nil, err
	}
	if p.lex.Peek("|") {
		p.lex.Next()
		right, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		cmd = &PipeCmd{Left: cmd, Right: right}
	}
	return cmd, nil
}

// parseRedirs wraps cmd in one RedirCmd per redirection at the cursor.
// Redirections bind to the nearest enclosing command, so they may appear
// interleaved with arguments.
func (p *parser) parseRedirs(cmd Cmd) (Cmd, error) {
	for p.lex.Peek("<>") {
		op := p.lex.Next()
		file := p.lex.Next()
		if file.Kind != Word {
			return nil, fmt.Errorf("%w: missing file for redirection", ErrSyntax)
		}
		switch op.Kind {
		case RedirIn:
			cmd = &RedirCmd{Cmd: cmd, File: file.Text, Flag: os.O_RDONLY, FD: 0}
		case RedirOut:
			cmd = &RedirCmd{Cmd: cmd, File: file.Text, Flag: os.O_WRONLY | os.O_CREATE | os.O_TRUNC, FD: 1}
		case RedirAppend:
			cmd = &RedirCmd{Cmd: cmd, File: file.Text, Flag: os.O_WRONLY | os.O_CREATE | os.O_APPEND, FD: 1}
		}
	}
	return cmd, nil
}

// parseBlock parses a parenthesized group. Redirections after ')' apply to
// the whole grouped subtree.
func (p *parser) parseBlock() (Cmd, error) {
	if !p.lex.Peek("(") {
		return nil, fmt.Errorf("%w: expected '('", ErrSyntax)
	}
	p.lex.Next()
	cmd, err := p.parseLine()
	if err != nil {
		return nil, err
	}
	if !p.lex.Peek(")") {
		return nil, fmt.Errorf("%w: missing ')'", ErrSyntax)
	}
	p.lex.Next()
	return p.parseRedirs(cmd)
}

// parseExec accumulates words into an ExecCmd, stopping at an operator or
// end of input. Redirections wrap the command as they are seen.
func (p *parser) parseExec() (Cmd, error) {
	if p.lex.Peek("(") {
		return p.parseBlock()
	}

	exec := &ExecCmd{}
	var ret Cmd = exec

	ret, err := p.parseRedirs(ret)
	if err != nil {
		return nil, err
	}
	for !p.lex.Peek("|)&;") {
		tok := p.lex.Next()
		if tok.Kind == EOF {
			break
		}
		if tok.Kind != Word {
			return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, tok.Kind)
		}
		exec.Argv = append(exec.Argv, tok.Text)
		if len(exec.Argv) >= MaxArgs {
			return nil, fmt.Errorf("%w: too many arguments", ErrSyntax)
		}
		ret, err = p.parseRedirs(ret)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}
