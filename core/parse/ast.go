package parse

// Cmd is the parsed representation of one input line. The variant set is
// closed: ExecCmd, RedirCmd, PipeCmd, ListCmd and BackCmd. Parenthesized
// groups have no node of their own; grouping only affects parse precedence.
type Cmd interface {
	// String renders the command back to shell source. The result parses to
	// an equivalent tree, which lets a compound pipeline branch be handed to
	// a subshell verbatim.
	String() string

	isCmd()
}

// ExecCmd is a simple invocation: a program name and its arguments.
type ExecCmd struct {
	Argv []string

	// Background is set by an enclosing BackCmd just before execution.
	Background bool
}

// RedirCmd wraps a command so that file descriptor FD points at File while
// the inner command runs.
type RedirCmd struct {
	Cmd  Cmd
	File string
	// Flag holds os.O_* open flags: O_RDONLY for '<',
	// O_WRONLY|O_CREATE|O_TRUNC for '>' and O_WRONLY|O_CREATE|O_APPEND
	// for '>>'.
	Flag int
	// FD is 0 for input redirection, 1 for output.
	FD int
}

// PipeCmd runs both sides concurrently with the left's stdout feeding the
// right's stdin.
type PipeCmd struct {
	Left  Cmd
	Right Cmd
}

// ListCmd runs Left to completion before starting Right.
type ListCmd struct {
	Left  Cmd
	Right Cmd
}

// BackCmd marks the wrapped command to run in the background. It carries no
// runtime behavior of its own: before execution the interpreter transfers
// the mark onto the Exec leaves it can reach and recurses into Cmd.
type BackCmd struct {
	Cmd Cmd
}

func (*ExecCmd) isCmd()  {}
func (*RedirCmd) isCmd() {}
func (*PipeCmd) isCmd()  {}
func (*ListCmd) isCmd()  {}
func (*BackCmd) isCmd()  {}
