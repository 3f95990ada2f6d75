package shell

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsh/subsh/core/config"
	"github.com/subsh/subsh/core/logger"
	"github.com/subsh/subsh/core/parse"
)

func newTestShell(t *testing.T) (*Shell, func() string) {
	t.Helper()

	stdin, err := os.Open(os.DevNull)
	require.NoError(t, err)
	t.Cleanup(func() { stdin.Close() })

	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		outR.Close()
		outW.Close()
		errR.Close()
		errW.Close()
	})

	sh, err := New(config.Default(), logger.NewNopLogger(), stdin, outW, errW)
	require.NoError(t, err)
	t.Cleanup(func() { sh.Close() })

	stdout := func() string {
		require.NoError(t, outW.Close())
		data, err := io.ReadAll(outR)
		require.NoError(t, err)
		return string(data)
	}
	return sh, stdout
}

func requireTool(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available", name)
		}
	}
}

func TestRunLineEmpty(t *testing.T) {
	sh, stdout := newTestShell(t)

	require.NoError(t, sh.RunLine(""))
	require.NoError(t, sh.RunLine("  \t "))
	assert.Empty(t, stdout())
}

func TestRunBatchExecutesInOrder(t *testing.T) {
	requireTool(t, "echo")
	sh, _ := newTestShell(t)

	out := filepath.Join(t.TempDir(), "out.txt")
	script := strings.Join([]string{
		"echo one > " + out,
		"echo two >> " + out,
		"echo three >> " + out,
	}, "\n")

	require.NoError(t, sh.RunBatch(strings.NewReader(script)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", string(data))
}

func TestRunBatchParseErrorIsFatal(t *testing.T) {
	sh, _ := newTestShell(t)

	out := filepath.Join(t.TempDir(), "out.txt")
	script := "echo hi )\necho after > " + out

	err := sh.RunBatch(strings.NewReader(script))
	assert.ErrorIs(t, err, parse.ErrSyntax)

	// The session aborted: no partial tree ran and later lines never
	// started.
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunBatchExitEndsSession(t *testing.T) {
	sh, _ := newTestShell(t)

	out := filepath.Join(t.TempDir(), "out.txt")
	script := "exit\necho after > " + out

	require.NoError(t, sh.RunBatch(strings.NewReader(script)))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunBatchRecoverableErrorContinues(t *testing.T) {
	requireTool(t, "echo")
	sh, _ := newTestShell(t)

	out := filepath.Join(t.TempDir(), "out.txt")
	script := "cd /does/not/exist\necho after > " + out

	require.NoError(t, sh.RunBatch(strings.NewReader(script)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "after\n", string(data))
}
