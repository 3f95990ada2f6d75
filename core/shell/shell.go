// Package shell is the read-eval loop that feeds lines to the parser and
// executor. It makes no assumptions about where lines come from: an
// interactive terminal goes through readline, scripts and -c strings go
// through a plain scanner, and both share one execution path.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/subsh/subsh/core/config"
	"github.com/subsh/subsh/core/interp"
	"github.com/subsh/subsh/core/logger"
	"github.com/subsh/subsh/core/parse"
)

var promptColor = color.New(color.FgGreen, color.Bold)

type Shell struct {
	Interp   *interp.Interp
	Readline *readline.Instance

	cfg    *config.Configuration
	log    *logger.Logger
	stdin  *os.File
	stdout *os.File
	stderr *os.File
}

func New(cfg *config.Configuration, eventLog *logger.Logger, stdin, stdout, stderr *os.File) (*Shell, error) {
	rlCfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(stdin),
		Stdout:      stdout,
		Stderr:      stderr,
		HistoryFile: cfg.HistoryPath,
		FuncGetWidth: func() int {
			width, _, err := term.GetSize(int(stdout.Fd()))
			if err != nil {
				return 80
			}
			return width
		},
		FuncIsTerminal: func() bool {
			return term.IsTerminal(int(stdin.Fd()))
		},
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	return &Shell{
		Interp:   interp.New(eventLog, cfg.MaxJobs, cfg.Dir, stdin, stdout, stderr),
		Readline: rl,
		cfg:      cfg,
		log:      eventLog,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

func (s *Shell) Close() error {
	return s.Readline.Close()
}

func (s *Shell) prompt() string {
	if term.IsTerminal(int(s.stdout.Fd())) {
		return promptColor.Sprint(s.cfg.Prompt)
	}
	return s.cfg.Prompt
}

// RunInteractive reads lines until end of input or exit. Parse errors end
// the session with the error; command failures are reported by the executor
// and the loop continues.
func (s *Shell) RunInteractive() error {
	if s.cfg.Motd != "" {
		fmt.Fprintln(s.stdout, s.cfg.Motd)
	}

	for {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue
		}

		if err := s.RunLine(line); err != nil {
			if err == interp.ErrExit {
				return nil
			}
			return err
		}

		// Collect whatever background work finished while the line ran, so
		// completion notices land before the next prompt.
		s.Interp.ReapZombies()
	}
}

// RunBatch executes lines from r in order: script files, -c strings, and
// piped stdin all land here.
func (s *Shell) RunBatch(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := s.RunLine(scanner.Text()); err != nil {
			if err == interp.ErrExit {
				return nil
			}
			return err
		}
	}
	return scanner.Err()
}

// RunLine parses and executes one line. An empty or all-whitespace line is
// a no-op. The returned error is fatal to the session: a parse failure, a
// failed process or pipe creation, or ErrExit.
func (s *Shell) RunLine(line string) error {
	cmd, err := parse.Parse(line)
	if err != nil {
		s.log.ParseError(line, err)
		return err
	}

	s.log.LineExecuted(line)
	return s.Interp.Run(cmd)
}
