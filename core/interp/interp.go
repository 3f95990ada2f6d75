// Package interp walks a parsed command tree and turns it into process
// topology: spawned children, pipes, redirected descriptors, and the
// wait/reap bookkeeping for background jobs.
package interp

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/subsh/subsh/core/logger"
	"github.com/subsh/subsh/core/parse"
)

// stdio is the descriptor context a command runs under. Redirections swap
// slots in a copy of it on the way down the tree; the interpreter's own
// descriptors are never touched.
type stdio struct {
	in  *os.File
	out *os.File
	err *os.File
}

// Interp executes command trees for one interpreter session. It is not safe
// for concurrent use; the session is single-threaded by design and all
// concurrency lives in the spawned children.
type Interp struct {
	jobs *JobTable
	log  *logger.Logger

	stdin  *os.File
	stdout *os.File
	stderr *os.File

	// selfPath is this binary, re-executed to run compound pipeline
	// branches as real subshell children. configDir is passed along so
	// those children read the same configuration.
	selfPath  string
	configDir string
}

// New creates an interpreter session with an empty job table bounded by
// maxJobs. configDir is the directory the session's configuration came
// from; empty means the default. The three files are the session's default
// descriptors and the ones children inherit absent redirection.
func New(log *logger.Logger, maxJobs int, configDir string, stdin, stdout, stderr *os.File) *Interp {
	selfPath, err := os.Executable()
	if err != nil {
		selfPath = os.Args[0]
	}
	return &Interp{
		jobs:      NewJobTable(maxJobs),
		log:       log,
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		selfPath:  selfPath,
		configDir: configDir,
	}
}

// Jobs exposes the session's job table.
func (i *Interp) Jobs() *JobTable {
	return i.jobs
}

// Run executes one fully parsed command tree. A returned error is fatal to
// the session (or ErrExit); recoverable failures are reported to the
// session's streams and swallowed.
func (i *Interp) Run(cmd parse.Cmd) error {
	return i.run(cmd, stdio{in: i.stdin, out: i.stdout, err: i.stderr})
}

func (i *Interp) run(cmd parse.Cmd, sio stdio) error {
	switch c := cmd.(type) {
	case *parse.ExecCmd:
		return i.runExec(c, sio)

	case *parse.RedirCmd:
		f, err := os.OpenFile(c.File, c.Flag, 0666)
		if err != nil {
			// The failed redirection turns the whole subtree into a no-op.
			fmt.Fprintf(sio.err, "open %s failed\n", c.File)
			return nil
		}
		defer f.Close()
		switch c.FD {
		case 0:
			sio.in = f
		case 1:
			sio.out = f
		}
		return i.run(c.Cmd, sio)

	case *parse.ListCmd:
		// Left's foreground portion completes inside this call; its
		// background jobs keep running while Right executes.
		if err := i.run(c.Left, sio); err != nil {
			return err
		}
		return i.run(c.Right, sio)

	case *parse.PipeCmd:
		return i.runPipe(c, sio)

	case *parse.BackCmd:
		markBackground(c.Cmd)
		return i.run(c.Cmd, sio)
	}
	return nil
}

// markBackground transfers a BackCmd's mark onto the Exec leaves reachable
// without crossing anything but a single Pipe: an Exec directly, or the two
// sides of a directly wrapped Pipe. Deeper shapes (a redirect or sequence
// under the '&') are deliberately not marked; this mirrors the historic
// shallow pass and callers treat such trees as foreground.
func markBackground(cmd parse.Cmd) {
	switch c := cmd.(type) {
	case *parse.ExecCmd:
		c.Background = true
	case *parse.PipeCmd:
		if e, ok := c.Left.(*parse.ExecCmd); ok {
			e.Background = true
		}
		if e, ok := c.Right.(*parse.ExecCmd); ok {
			e.Background = true
		}
	case *parse.BackCmd:
		// cmd & & marks the same leaves twice; the effect is idempotent.
		markBackground(c.Cmd)
	}
}

func (i *Interp) runExec(c *parse.ExecCmd, sio stdio) error {
	if len(c.Argv) == 0 {
		return nil
	}

	// Builtins run in the interpreter's own process, before any forking.
	if fn, ok := builtins[c.Argv[0]]; ok {
		return fn(i, sio, c.Argv)
	}

	pid, err := i.spawn(c.Argv, sio)
	if err != nil {
		return err
	}
	if pid < 0 {
		// Image lookup failed; already reported. The command is abandoned,
		// the session continues.
		return nil
	}

	if c.Background {
		i.dispatchBackground(pid, sio)
		return nil
	}
	i.waitForeground(pid)
	return nil
}

// spawn starts argv as a child process wired to sio. A missing or
// non-executable image reports `exec <name> failed` and returns pid -1: the
// equivalent of the child that failed to replace its image. An actual
// process-creation failure is fatal and returned as an error.
func (i *Interp) spawn(argv []string, sio stdio) (int, error) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		fmt.Fprintf(sio.err, "exec %s failed\n", argv[0])
		return -1, nil
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{sio.in, sio.out, sio.err},
	})
	if err != nil {
		return -1, fmt.Errorf("fork %s: %w", argv[0], err)
	}

	// The child is reaped through wait4, never through the handle.
	_ = proc.Release()

	i.log.CommandStarted(argv, proc.Pid)
	return proc.Pid, nil
}

// dispatchBackground records a freshly spawned background pid and reports it
// without waiting. The notice follows the active redirection context, the
// same descriptor the command's own output goes to.
func (i *Interp) dispatchBackground(pid int, sio stdio) {
	if !i.jobs.Add(pid) {
		i.log.JobTableFull(pid)
	}
	i.log.BackgroundStarted(pid)
	fmt.Fprintf(sio.out, "[%d]\n", pid)
}

func (i *Interp) runPipe(c *parse.PipeCmd, sio stdio) error {
	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("pipe: %w", err)
	}

	leftIO := sio
	leftIO.out = w
	leftPids, lerr := i.startBranch(c.Left, leftIO)

	rightIO := sio
	rightIO.in = r
	rightPids, rerr := i.startBranch(c.Right, rightIO)

	// Drop the parent's ends before waiting so the reader sees EOF once the
	// writers are gone.
	r.Close()
	w.Close()

	if lerr != nil {
		return lerr
	}
	if rerr != nil {
		return rerr
	}

	pids := append(leftPids, rightPids...)

	// Background status is read off the Exec leaves only. A branch hidden
	// behind a redirect is never detected; see DESIGN.md.
	background := false
	if e, ok := c.Left.(*parse.ExecCmd); ok && e.Background {
		background = true
	} else if e, ok := c.Right.(*parse.ExecCmd); ok && e.Background {
		background = true
	}

	if background {
		for _, pid := range pids {
			if !i.jobs.Add(pid) {
				i.log.JobTableFull(pid)
			}
			i.log.BackgroundStarted(pid)
		}
		if len(pids) > 0 {
			// Only the first pid is reported as "the" job.
			fmt.Fprintf(sio.out, "[%d]\n", pids[0])
		}
		return nil
	}

	for _, pid := range pids {
		i.waitForeground(pid)
	}
	return nil
}

// startBranch launches one side of a pipeline without waiting and returns
// the pids it created. Simple commands and their redirect wrappers start
// directly; compound branches (sequences, grouped backgrounds) become one
// real subshell child so their internal ordering runs concurrently with the
// other side, exactly as a forked shell would.
func (i *Interp) startBranch(cmd parse.Cmd, sio stdio) ([]int, error) {
	switch c := cmd.(type) {
	case *parse.ExecCmd:
		if len(c.Argv) == 0 {
			return nil, nil
		}
		if fn, ok := builtins[c.Argv[0]]; ok {
			return nil, fn(i, sio, c.Argv)
		}
		pid, err := i.spawn(c.Argv, sio)
		if err != nil || pid < 0 {
			return nil, err
		}
		return []int{pid}, nil

	case *parse.RedirCmd:
		f, err := os.OpenFile(c.File, c.Flag, 0666)
		if err != nil {
			fmt.Fprintf(sio.err, "open %s failed\n", c.File)
			return nil, nil
		}
		defer f.Close()
		switch c.FD {
		case 0:
			sio.in = f
		case 1:
			sio.out = f
		}
		return i.startBranch(c.Cmd, sio)

	case *parse.PipeCmd:
		r, w, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("pipe: %w", err)
		}
		leftIO := sio
		leftIO.out = w
		leftPids, lerr := i.startBranch(c.Left, leftIO)

		rightIO := sio
		rightIO.in = r
		rightPids, rerr := i.startBranch(c.Right, rightIO)

		r.Close()
		w.Close()

		pids := append(leftPids, rightPids...)
		if lerr != nil {
			return pids, lerr
		}
		return pids, rerr

	default:
		return i.startSubshell(cmd, sio)
	}
}

// subshellArgv builds the re-exec argument vector for running src in a
// child session, carrying the parent's config directory when it has one.
func (i *Interp) subshellArgv(src string) []string {
	argv := []string{"subsh"}
	if i.configDir != "" {
		argv = append(argv, "--config", i.configDir)
	}
	return append(argv, "run", "-c", src)
}

// startSubshell re-executes this binary to run a compound subtree as a
// single child process.
func (i *Interp) startSubshell(cmd parse.Cmd, sio stdio) ([]int, error) {
	argv := i.subshellArgv(cmd.String())
	proc, err := os.StartProcess(i.selfPath, argv, &os.ProcAttr{
		Files: []*os.File{sio.in, sio.out, sio.err},
	})
	if err != nil {
		return nil, fmt.Errorf("fork subshell: %w", err)
	}
	_ = proc.Release()

	i.log.CommandStarted(argv, proc.Pid)
	return []int{proc.Pid}, nil
}

// waitForeground blocks until the given child exits. Because background
// children are siblings of foreground ones, wait-for-any can hand back the
// wrong pid; those are treated as asynchronous background completions and
// the wait continues.
func (i *Interp) waitForeground(pid int) {
	for {
		var ws unix.WaitStatus
		reaped, err := unix.Wait4(-1, &ws, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil || reaped <= 0 {
			// No children left; the foreground child was already collected
			// by an earlier over-eager wait.
			return
		}
		if reaped == pid {
			return
		}
		i.reapBackground(reaped, ws)
	}
}

// reapBackground processes an already-collected child that wasn't the one
// being awaited. Untracked pids are dropped silently.
func (i *Interp) reapBackground(pid int, ws unix.WaitStatus) {
	if !i.jobs.Remove(pid) {
		return
	}
	status := ws.ExitStatus()
	i.log.BackgroundReaped(pid, status)
	fmt.Fprintf(i.stdout, "[bg %d] exited with status %d\n", pid, status)
}

// ReapZombies drains every already-exited child without blocking and
// reports each tracked background completion exactly once.
func (i *Interp) ReapZombies() {
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil || pid <= 0 {
			return
		}
		i.reapBackground(pid, ws)
	}
}
