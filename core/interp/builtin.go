package interp

import (
	"errors"
	"fmt"
	"os"
)

// ErrExit is returned by the exit builtin. The read-eval loop treats it as a
// clean end of session rather than a failure.
var ErrExit = errors.New("exit")

// builtinFunc runs inside the interpreter's own process, before any forking.
// sio carries the redirection context so a builtin inside a pipeline or
// redirect writes to the right place.
type builtinFunc func(i *Interp, sio stdio, argv []string) error

var builtins = map[string]builtinFunc{
	"cd":   builtinCd,
	"jobs": builtinJobs,
	"exit": builtinExit,
}

// builtinCd changes the interpreter's working directory. Failure is reported
// and the session continues.
func builtinCd(i *Interp, sio stdio, argv []string) error {
	target := ""
	if len(argv) > 1 {
		target = argv[1]
	}
	if target == "" || os.Chdir(target) != nil {
		fmt.Fprintf(sio.err, "cannot cd %s\n", target)
	}
	return nil
}

// builtinJobs prints each tracked background pid, one per line.
func builtinJobs(i *Interp, sio stdio, argv []string) error {
	for _, pid := range i.jobs.Pids() {
		fmt.Fprintf(sio.out, "%d\n", pid)
	}
	return nil
}

func builtinExit(i *Interp, sio stdio, argv []string) error {
	return ErrExit
}
