package parse

import (
	"fmt"
	"os"
	"strings"
)

func redirOp(flag int) string {
	switch {
	case flag == os.O_RDONLY:
		return "<"
	case flag&os.O_APPEND != 0:
		return ">>"
	default:
		return ">"
	}
}

// parenthesize wraps source in parens when the node would otherwise bind
// differently on re-parse. Exec and Redir nodes never need it.
func parenthesize(c Cmd) string {
	s := c.String()
	switch c.(type) {
	case *PipeCmd, *ListCmd, *BackCmd:
		return "(" + s + ")"
	}
	return s
}

func (c *ExecCmd) String() string {
	return strings.Join(c.Argv, " ")
}

func (c *RedirCmd) String() string {
	return parenthesize(c.Cmd) + " " + redirOp(c.Flag) + " " + c.File
}

func (c *PipeCmd) String() string {
	return pipeOperand(c.Left) + " | " + pipeOperand(c.Right)
}

// pipeOperand parenthesizes pipeline branches that would not survive a
// re-parse bare. Nested pipes associate freely so they stay unwrapped.
func pipeOperand(c Cmd) string {
	s := c.String()
	switch c.(type) {
	case *ListCmd, *BackCmd:
		return "(" + s + ")"
	}
	return s
}

func (c *ListCmd) String() string {
	return c.Left.String() + "; " + c.Right.String()
}

func (c *BackCmd) String() string {
	s := c.Cmd.String()
	// '&' binds tighter than ';': a bare sequence under it would hand the
	// mark to the last command on re-parse.
	if _, ok := c.Cmd.(*ListCmd); ok {
		s = "(" + s + ")"
	}
	return s + " &"
}

// Dump renders the tree one node per line, children indented, for debugging
// and golden tests.
func Dump(cmd Cmd) string {
	var b strings.Builder
	dump(&b, cmd, 0)
	return b.String()
}

func dump(b *strings.Builder, cmd Cmd, depth int) {
	indent := strings.Repeat("  ", depth)
	switch c := cmd.(type) {
	case *ExecCmd:
		if c.Background {
			fmt.Fprintf(b, "%sexec %q background\n", indent, c.Argv)
		} else {
			fmt.Fprintf(b, "%sexec %q\n", indent, c.Argv)
		}
	case *RedirCmd:
		fmt.Fprintf(b, "%sredir %s %q fd=%d\n", indent, redirOp(c.Flag), c.File, c.FD)
		dump(b, c.Cmd, depth+1)
	case *PipeCmd:
		fmt.Fprintf(b, "%spipe\n", indent)
		dump(b, c.Left, depth+1)
		dump(b, c.Right, depth+1)
	case *ListCmd:
		fmt.Fprintf(b, "%slist\n", indent)
		dump(b, c.Left, depth+1)
		dump(b, c.Right, depth+1)
	case *BackCmd:
		fmt.Fprintf(b, "%sback\n", indent)
		dump(b, c.Cmd, depth+1)
	}
}
